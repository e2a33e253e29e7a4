package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{
		KeyWidth:      "80",
		KeyHeight:     " 40 ",
		KeySeed:       "0x2A",
		KeyLand:       "1.2",
		KeyHeat:       "0.8",
		KeyDetail:     "0.5",
		KeyNoise:      "Perlin",
		KeyProjection: "Sphere",
		KeyWorkers:    "3",
		KeyLogLevel:   "debug",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}

	want := Config{
		Width: 80, Height: 40, Seed: 42,
		LandModifier: 1.2, HeatModifier: 0.8, Detail: 0.5,
		Noise: "perlin", Projection: "sphere", Workers: 3, LogLevel: "debug",
	}
	if c != want {
		t.Errorf("FromMap = %+v, want %+v", c, want)
	}
}

func TestFromMapReportsBadValues(t *testing.T) {
	_, err := FromMap(map[string]string{KeyWidth: "wide", KeySeed: "?", KeyHeat: "hot"})
	if err == nil {
		t.Fatal("expected parse errors")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny map", func(c *Config) { c.Width = 1 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative land", func(c *Config) { c.LandModifier = -0.5 }},
		{"unknown noise", func(c *Config) { c.Noise = "worley" }},
		{"unknown projection", func(c *Config) { c.Projection = "mercator" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		c := Default()
		tt.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestLoadLayersEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "WORLDSYNTH_WIDTH=96\nWORLDSYNTH_HEIGHT=48\nWORLDSYNTH_SEED=7\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(KeySeed, "9")

	c, err := Load(filepath.Join(dir, "missing.env"), envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 96 || c.Height != 48 {
		t.Errorf("size = %dx%d, want 96x48 from file", c.Width, c.Height)
	}
	if c.Seed != 9 {
		t.Errorf("seed = %d, want 9 from environment", c.Seed)
	}
}

func TestSlogLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "warn"
	level, err := c.SlogLevel()
	if err != nil || level != slog.LevelWarn {
		t.Errorf("SlogLevel() = %v, %v; want WARN", level, err)
	}
}
