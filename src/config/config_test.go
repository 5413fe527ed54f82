package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) = %v", path, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}
	if cfg.TravelDuration != 2*time.Second || cfg.DoorOpenDuration != 3*time.Second {
		t.Errorf("Default() durations = %v/%v, expected 2s/3s", cfg.TravelDuration, cfg.DoorOpenDuration)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "elevator.yaml", `
id: car-a
min_floor: 1
max_floor: 12
initial_floor: 1
safe_floor: 1
travel_duration: 150ms
door_open_duration: 1s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v, expected nil", err)
	}
	if cfg.ID != "car-a" || cfg.MinFloor != 1 || cfg.MaxFloor != 12 || cfg.SafeFloor != 1 {
		t.Errorf("Load() = %+v, unexpected floors or id", cfg)
	}
	if cfg.TravelDuration != 150*time.Millisecond {
		t.Errorf("TravelDuration = %v, expected 150ms", cfg.TravelDuration)
	}
	if cfg.DoorOpenDuration != time.Second {
		t.Errorf("DoorOpenDuration = %v, expected 1s", cfg.DoorOpenDuration)
	}
	// Missing key keeps its default
	if cfg.EventBufferSize != EventBufferSize {
		t.Errorf("EventBufferSize = %d, expected default %d", cfg.EventBufferSize, EventBufferSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Load() of missing file returned nil error")
	}
}

func TestApplyEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "ELEVATOR_ID=from-file\nELEVATOR_SAFE_FLOOR=2\nELEVATOR_TRAVEL_DURATION=10ms\n")
	t.Setenv("ELEVATOR_SAFE_FLOOR", "3")

	cfg := Default()
	if err := cfg.ApplyEnv(envFile); err != nil {
		t.Fatalf("ApplyEnv() = %v, expected nil", err)
	}
	if cfg.ID != "from-file" {
		t.Errorf("ID = %q, expected from-file", cfg.ID)
	}
	if cfg.SafeFloor != 3 {
		t.Errorf("SafeFloor = %d, expected environment value 3", cfg.SafeFloor)
	}
	if cfg.TravelDuration != 10*time.Millisecond {
		t.Errorf("TravelDuration = %v, expected 10ms", cfg.TravelDuration)
	}
}

func TestApplyEnvMissingFileAndBadValue(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("ApplyEnv() with missing file = %v, expected nil", err)
	}

	t.Setenv("ELEVATOR_MAX_FLOOR", "ten")
	if err := cfg.ApplyEnv(""); err == nil {
		t.Errorf("ApplyEnv() with ELEVATOR_MAX_FLOOR=ten returned nil error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"inverted range", func(c *Config) { c.MinFloor, c.MaxFloor = 5, 1 }},
		{"safe floor outside", func(c *Config) { c.SafeFloor = 42 }},
		{"initial floor outside", func(c *Config) { c.InitialFloor = -1 }},
		{"negative travel", func(c *Config) { c.TravelDuration = -time.Second }},
		{"negative dwell", func(c *Config) { c.DoorOpenDuration = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, expected error")
			}
		})
	}
}

func TestFinalizeGeneratesID(t *testing.T) {
	cfg := Default()
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}
	if len(cfg.ID) != IDLength {
		t.Errorf("generated ID %q has length %d, expected %d", cfg.ID, len(cfg.ID), IDLength)
	}
}
