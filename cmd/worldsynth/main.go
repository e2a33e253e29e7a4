// Package main is the entry point for worldsynth.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/worldsynth/internal/atlas"
	"github.com/samdwyer/worldsynth/internal/config"
	"github.com/samdwyer/worldsynth/internal/telemetry"
	"github.com/samdwyer/worldsynth/internal/world"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code.
func realMain() int {
	// Load .env file for local development
	// This makes HONEYCOMB_WORLDSYNTH_API_KEY available
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	seed := flag.Int64("seed", cfg.Seed, "world seed (0 picks one from the clock)")
	width := flag.Int("width", cfg.Width, "map width in cells")
	height := flag.Int("height", cfg.Height, "map height in cells")
	land := flag.Float64("land", cfg.LandModifier, "land modifier, 0 derives it from the seed")
	heat := flag.Float64("heat", cfg.HeatModifier, "heat modifier, 0 derives it from the seed")
	detail := flag.Float64("detail", cfg.Detail, "octave multiplier")
	noiseKind := flag.String("noise", cfg.Noise, "noise backend: simplex or perlin")
	projection := flag.String("projection", cfg.Projection, "map surface: torus or sphere")
	workers := flag.Int("workers", cfg.Workers, "classification workers, 0 for GOMAXPROCS")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level")
	var opts runOptions
	flag.IntVar(&opts.zoom, "zoom", 0, "zoom steps after generation, negative zooms out")
	flag.IntVar(&opts.cx, "cx", -1, "zoom center column, -1 for the map center")
	flag.IntVar(&opts.cy, "cy", -1, "zoom center row, -1 for the map center")
	flag.StringVar(&opts.region, "region", "", "resample source region x,y,width,height instead of zooming")
	flag.IntVar(&opts.rerolls, "rerolls", 0, "derive this many new seeds after the first world")
	flag.BoolVar(&opts.dump, "dump", false, "print the biome glyph map to stdout")
	flag.Parse()

	cfg.Seed = *seed
	cfg.Width = *width
	cfg.Height = *height
	cfg.LandModifier = *land
	cfg.HeatModifier = *heat
	cfg.Detail = *detail
	cfg.Noise = *noiseKind
	cfg.Projection = *projection
	cfg.Workers = *workers
	cfg.LogLevel = *logLevel
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if envErr != nil {
		// Not fatal - env vars might be set directly
		logger.Debug(".env file not loaded", "error", envErr)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without observability", "error", err)
		shutdown = nil
	}

	return execute(ctx, logger, shutdown, func(ctx context.Context) error {
		return run(ctx, logger, cfg, opts)
	})
}

// execute runs job and flushes telemetry afterwards, on failure too. It returns the
// process exit code.
func execute(ctx context.Context, logger *slog.Logger, shutdown func(context.Context) error, job func(context.Context) error) int {
	if shutdown != nil {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown", "error", err)
			}
		}()
	}

	if err := job(ctx); err != nil {
		logger.Error("worldsynth failed", "error", err)
		return 1
	}
	return 0
}

// runOptions are the command-line steps applied after the first generation.
type runOptions struct {
	zoom    int
	cx, cy  int    // Zoom center, negative for the map center
	region  string // x,y,width,height
	rerolls int
	dump    bool
}

func run(ctx context.Context, logger *slog.Logger, cfg config.Config, opts runOptions) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	view := world.Region{Width: cfg.Width, Height: cfg.Height}
	mx, my := view.Center()
	cx, cy := opts.cx, opts.cy
	if cx < 0 {
		cx = mx
	}
	if cy < 0 {
		cy = my
	}
	if !view.Contains(cx, cy) {
		return fmt.Errorf("zoom center %d,%d is outside the %dx%d map", cx, cy, cfg.Width, cfg.Height)
	}

	var region world.Region
	if opts.region != "" {
		if opts.zoom != 0 {
			return errors.New("-zoom and -region cannot be combined")
		}
		r, err := parseRegion(opts.region)
		if err != nil {
			return err
		}
		region = r
	}

	a, err := atlas.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := a.Generate(ctx, cfg.Seed, cfg.LandModifier, cfg.HeatModifier); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	for range opts.rerolls {
		seed, err := a.Reroll(ctx)
		if err != nil {
			return fmt.Errorf("reroll: %w", err)
		}
		logger.Debug("rerolled", "seed", seed)
	}

	switch {
	case opts.region != "":
		if err := a.Regenerate(ctx, region); err != nil {
			return fmt.Errorf("region: %w", err)
		}
	case opts.zoom != 0:
		if err := a.ZoomIn(ctx, opts.zoom, cx, cy); err != nil {
			return fmt.Errorf("zoom: %w", err)
		}
	}

	snap := a.Snapshot()
	logger.Info("world generated",
		"seed", snap.State.Seed,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"land", snap.State.LandModifier,
		"heat", snap.State.HeatModifier,
		"projection", cfg.Projection,
		"zoom", snap.Zoom,
		"region", fmt.Sprintf("%d,%d %dx%d", snap.Region.X, snap.Region.Y, snap.Region.Width, snap.Region.Height),
		"elapsed", time.Since(start),
	)

	if cell, ok := a.Inspect(mx, my); ok {
		logger.Info("center cell",
			"x", cell.X,
			"y", cell.Y,
			"biome", cell.Name,
			"height", fmt.Sprintf("%.3f", cell.Cell.Height),
			"heat", fmt.Sprintf("%.3f", cell.Cell.Heat),
			"moisture", fmt.Sprintf("%.3f", cell.Cell.Moisture),
			"blend", fmt.Sprintf("%.2f", cell.Biome.Blend),
			"color", fmt.Sprintf("#%06x", cell.Color.Hex()),
		)
	}

	total := float64(cfg.Width * cfg.Height)
	for _, s := range a.Summary() {
		logger.Info("biome",
			"name", s.Name,
			"glyph", string(s.Glyph),
			"cells", s.Cells,
			"share", fmt.Sprintf("%.1f%%", 100*float64(s.Cells)/total),
			"color", fmt.Sprintf("#%06x", s.Color.Hex()),
		)
	}

	if opts.dump {
		return a.WriteGlyphs(os.Stdout)
	}
	return nil
}

// parseRegion reads a source region written as x,y,width,height.
func parseRegion(s string) (world.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return world.Region{}, fmt.Errorf("region %q: want x,y,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return world.Region{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	r := world.Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if r.Empty() {
		return world.Region{}, fmt.Errorf("region %q: %w", s, world.ErrInvalidRegion)
	}
	return r, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Construct headers from the API key; an unexpanded reference in .env would not work
	apiKey := os.Getenv("HONEYCOMB_WORLDSYNTH_API_KEY")
	dataset := os.Getenv("HONEYCOMB_WORLDSYNTH_DATASET")
	if dataset == "" {
		dataset = "worldsynth"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
