package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcade.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_rate = "20ms"
seed = 42

[hunter]
lead_time = "750ms"
firing_range = 280.0
hold_range = 200.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.TickRate != 20*time.Millisecond {
		t.Fatalf("tick_rate = %v", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Seed != 42 {
		t.Fatalf("seed = %d", cfg.Simulation.Seed)
	}
	if cfg.Hunter.LeadTime != 750*time.Millisecond {
		t.Fatalf("lead_time = %v", cfg.Hunter.LeadTime)
	}
	if cfg.Ship.Lives != Defaults().Ship.Lives {
		t.Fatalf("untouched field lost its default: lives = %d", cfg.Ship.Lives)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[hunter]
firing_range = 100.0
hold_range = 150.0
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected hold_range beyond firing_range to be rejected")
	}
}

func TestValidateRejectsBadRanges(t *testing.T) {
	cases := []struct {
		name  string
		tweak func(*Config)
	}{
		{"zero hold range", func(c *Config) { c.Hunter.HoldRange = 0 }},
		{"negative hold range", func(c *Config) { c.Hunter.HoldRange = -10 }},
		{"medium as large as large", func(c *Config) { c.Asteroids.MediumRadius = c.Asteroids.LargeRadius }},
		{"small larger than medium", func(c *Config) { c.Asteroids.SmallRadius = c.Asteroids.MediumRadius + 1 }},
		{"drop chance above one", func(c *Config) { c.PowerUps.DropChance = 1.5 }},
		{"wells without radius", func(c *Config) { c.Gravity.Radius = 0 }},
		{"zero speed growth", func(c *Config) { c.Waves.SpeedGrowth = 0 }},
	}
	for _, tc := range cases {
		cfg := Defaults()
		tc.tweak(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
}

func TestValidateAcceptsBoundaryRanges(t *testing.T) {
	cfg := Defaults()
	cfg.Hunter.HoldRange = cfg.Hunter.FiringRange
	cfg.Gravity.Wells = 0
	cfg.Gravity.Radius = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("hold_range equal to firing_range rejected: %v", err)
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "arcade.toml"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	if cfg.Simulation.TickRate != 16*time.Millisecond || cfg.Database.Enabled {
		t.Fatalf("unexpected shipped values: tick=%v db=%v", cfg.Simulation.TickRate, cfg.Database.Enabled)
	}
}

func TestFingerprintIgnoresSeedAndPlumbing(t *testing.T) {
	a, b := Defaults(), Defaults()
	b.Simulation.Seed = 99
	b.Database.Enabled = true
	b.Logging.Level = "debug"
	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Fatalf("fingerprint changed with seed or plumbing: %s vs %s", fa, fb)
	}
	if len(fa) != 16 {
		t.Fatalf("unexpected fingerprint %q", fa)
	}

	b.Ship.Lives = 5
	if fc, _ := b.Fingerprint(); fc == fa {
		t.Fatal("fingerprint ignored a gameplay change")
	}
}
