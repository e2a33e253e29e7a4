// Package config loads generation settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/samdwyer/worldsynth/internal/noise"
	"github.com/samdwyer/worldsynth/internal/world"
)

// Environment keys read by Load.
const (
	KeyWidth      = "WORLDSYNTH_WIDTH"
	KeyHeight     = "WORLDSYNTH_HEIGHT"
	KeySeed       = "WORLDSYNTH_SEED"
	KeyLand       = "WORLDSYNTH_LAND"
	KeyHeat       = "WORLDSYNTH_HEAT"
	KeyDetail     = "WORLDSYNTH_DETAIL"
	KeyNoise      = "WORLDSYNTH_NOISE"
	KeyProjection = "WORLDSYNTH_PROJECTION"
	KeyWorkers    = "WORLDSYNTH_WORKERS"
	KeyLogLevel   = "WORLDSYNTH_LOG_LEVEL"
)

var keys = []string{KeyWidth, KeyHeight, KeySeed, KeyLand, KeyHeat, KeyDetail, KeyNoise, KeyProjection, KeyWorkers, KeyLogLevel}

// Config holds world generation options.
type Config struct {
	// Map dimensions in cells.
	Width  int
	Height int

	// Seed for reproducible generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// LandModifier biases the land/water balance; above 1 favors land.
	// 0 derives it from the seed.
	LandModifier float64

	// HeatModifier biases global warmth; above 1 is warmer.
	// 0 derives it from the seed.
	HeatModifier float64

	// Detail scales the octave count of every noise layer.
	Detail float64

	// Noise selects the noise backend, "simplex" or "perlin".
	Noise string

	// Projection is the surface the map wraps onto, "torus" or "sphere".
	Projection string

	// Workers bounds concurrent biome classification. 0 means GOMAXPROCS.
	Workers int

	// LogLevel is a log/slog level name.
	LogLevel string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Width:        256,
		Height:       128,
		LandModifier: 1.0,
		HeatModifier: 1.0,
		Detail:       1.0,
		Noise:        noise.KindSimplex,
		Projection:   world.Torus.String(),
		LogLevel:     "info",
	}
}

// Load reads the given .env files, skipping ones that do not exist, then applies
// WORLDSYNTH_* variables from the process environment on top.
func Load(files ...string) (Config, error) {
	values := make(map[string]string)
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		env, err := godotenv.Read(file)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range env {
			values[k] = v
		}
	}
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	cfg, err := FromMap(values)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// FromMap overlays recognized keys onto the defaults. Unparseable values are reported
// together.
func FromMap(values map[string]string) (Config, error) {
	c := Default()
	var errs []error

	parseInt := func(key string, dst *int) {
		if v, ok := values[key]; ok {
			parsed, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = parsed
		}
	}
	parseFloat := func(key string, dst *float64) {
		if v, ok := values[key]; ok {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = parsed
		}
	}

	parseInt(KeyWidth, &c.Width)
	parseInt(KeyHeight, &c.Height)
	parseInt(KeyWorkers, &c.Workers)
	parseFloat(KeyLand, &c.LandModifier)
	parseFloat(KeyHeat, &c.HeatModifier)
	parseFloat(KeyDetail, &c.Detail)

	if v, ok := values[KeySeed]; ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeySeed, err))
		} else {
			c.Seed = parsed
		}
	}
	if v, ok := values[KeyNoise]; ok {
		c.Noise = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := values[KeyProjection]; ok {
		c.Projection = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := values[KeyLogLevel]; ok {
		c.LogLevel = strings.TrimSpace(v)
	}

	return c, errors.Join(errs...)
}

// Validate reports settings the generator cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 2 || c.Height < 2 {
		errs = append(errs, fmt.Errorf("map size %dx%d: both dimensions must be at least 2", c.Width, c.Height))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d: must not be negative", c.Workers))
	}
	for name, v := range map[string]float64{"land modifier": c.LandModifier, "heat modifier": c.HeatModifier, "detail": c.Detail} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%s %v: must be a finite non-negative number", name, v))
		}
	}
	if _, err := noise.New(c.Noise); err != nil {
		errs = append(errs, err)
	}
	if _, err := world.ParseProjection(c.Projection); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
