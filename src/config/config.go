package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/xyproto/randomstring"
	"gopkg.in/yaml.v3"
)

const (
	MinFloor         = 0
	MaxFloor         = 9
	SafeFloor        = 0
	DoorOpenDuration = 3 * time.Second
	TravelDuration   = 2 * time.Second
	EventBufferSize  = 256
	IDLength         = 10
)

// Config holds the settings of one car. Durations are Go duration strings in YAML ("2s", "150ms").
type Config struct {
	ID               string        `yaml:"id"`
	MinFloor         int           `yaml:"min_floor"`
	MaxFloor         int           `yaml:"max_floor"`
	InitialFloor     int           `yaml:"initial_floor"`
	SafeFloor        int           `yaml:"safe_floor"`
	TravelDuration   time.Duration `yaml:"travel_duration"`
	DoorOpenDuration time.Duration `yaml:"door_open_duration"`
	EventBufferSize  int           `yaml:"event_buffer_size"`
	LogLevel         string        `yaml:"log_level"`
	LogFile          string        `yaml:"log_file"`
	SimulatorAddr    string        `yaml:"simulator_addr"`
}

func Default() Config {
	return Config{
		MinFloor:         MinFloor,
		MaxFloor:         MaxFloor,
		InitialFloor:     SafeFloor,
		SafeFloor:        SafeFloor,
		TravelDuration:   TravelDuration,
		DoorOpenDuration: DoorOpenDuration,
		EventBufferSize:  EventBufferSize,
		LogLevel:         "info",
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ELEVATOR_* variables. Values in envFile are applied first,
// then the process environment, so the environment wins. A missing envFile is not an error.
func (cfg *Config) ApplyEnv(envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	for _, key := range envKeys {
		value, ok := vars[key]
		if !ok {
			continue
		}
		if err := cfg.set(key, value); err != nil {
			return fmt.Errorf("%s=%q: %w", key, value, err)
		}
	}
	return nil
}

var envKeys = []string{
	"ELEVATOR_ID",
	"ELEVATOR_MIN_FLOOR",
	"ELEVATOR_MAX_FLOOR",
	"ELEVATOR_INITIAL_FLOOR",
	"ELEVATOR_SAFE_FLOOR",
	"ELEVATOR_TRAVEL_DURATION",
	"ELEVATOR_DOOR_OPEN_DURATION",
	"ELEVATOR_EVENT_BUFFER_SIZE",
	"ELEVATOR_LOG_LEVEL",
	"ELEVATOR_LOG_FILE",
	"ELEVATOR_SIMULATOR_ADDR",
}

func (cfg *Config) set(key, value string) error {
	var err error
	switch key {
	case "ELEVATOR_ID":
		cfg.ID = value
	case "ELEVATOR_MIN_FLOOR":
		cfg.MinFloor, err = strconv.Atoi(value)
	case "ELEVATOR_MAX_FLOOR":
		cfg.MaxFloor, err = strconv.Atoi(value)
	case "ELEVATOR_INITIAL_FLOOR":
		cfg.InitialFloor, err = strconv.Atoi(value)
	case "ELEVATOR_SAFE_FLOOR":
		cfg.SafeFloor, err = strconv.Atoi(value)
	case "ELEVATOR_TRAVEL_DURATION":
		cfg.TravelDuration, err = time.ParseDuration(value)
	case "ELEVATOR_DOOR_OPEN_DURATION":
		cfg.DoorOpenDuration, err = time.ParseDuration(value)
	case "ELEVATOR_EVENT_BUFFER_SIZE":
		cfg.EventBufferSize, err = strconv.Atoi(value)
	case "ELEVATOR_LOG_LEVEL":
		cfg.LogLevel = value
	case "ELEVATOR_LOG_FILE":
		cfg.LogFile = value
	case "ELEVATOR_SIMULATOR_ADDR":
		cfg.SimulatorAddr = value
	}
	return err
}

// Finalize fills in a random identifier when none was configured, then validates.
func (cfg *Config) Finalize() error {
	if cfg.ID == "" {
		cfg.ID = randomstring.EnglishFrequencyString(IDLength)
	}
	return cfg.Validate()
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.MinFloor > cfg.MaxFloor {
		errs = append(errs, fmt.Errorf("min_floor %d above max_floor %d", cfg.MinFloor, cfg.MaxFloor))
	}
	if !cfg.InRange(cfg.InitialFloor) {
		errs = append(errs, fmt.Errorf("initial_floor %d outside [%d, %d]", cfg.InitialFloor, cfg.MinFloor, cfg.MaxFloor))
	}
	if !cfg.InRange(cfg.SafeFloor) {
		errs = append(errs, fmt.Errorf("safe_floor %d outside [%d, %d]", cfg.SafeFloor, cfg.MinFloor, cfg.MaxFloor))
	}
	if cfg.TravelDuration < 0 {
		errs = append(errs, fmt.Errorf("negative travel_duration %v", cfg.TravelDuration))
	}
	if cfg.DoorOpenDuration < 0 {
		errs = append(errs, fmt.Errorf("negative door_open_duration %v", cfg.DoorOpenDuration))
	}
	if cfg.EventBufferSize < 0 {
		errs = append(errs, fmt.Errorf("negative event_buffer_size %d", cfg.EventBufferSize))
	}
	return errors.Join(errs...)
}

func (cfg Config) InRange(floor int) bool {
	return floor >= cfg.MinFloor && floor <= cfg.MaxFloor
}
