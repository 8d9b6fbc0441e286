package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	LocateIPAPI  = "ipapi"
	LocateStatic = "static"
	LocateNone   = "none"
)

type Config struct {
	Language string        `yaml:"language" validate:"required"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
	Debug    bool          `yaml:"debug"`

	Geocoding Endpoint `yaml:"geocoding"`
	Weather   Endpoint `yaml:"weather"`
	Reverse   Reverse  `yaml:"reverse"`
	Locate    Locate   `yaml:"locate"`
	Breaker   Breaker  `yaml:"breaker"`
	Server    Server   `yaml:"server"`
}

type Endpoint struct {
	URL string `yaml:"url" validate:"required,url"`
}

type Reverse struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url" validate:"omitempty,url"`
}

type Locate struct {
	Provider  string  `yaml:"provider" validate:"oneof=ipapi static none"`
	URL       string  `yaml:"url" validate:"omitempty,url"`
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
}

type Breaker struct {
	// Failures is the number of consecutive failures that opens the breaker.
	Failures uint32        `yaml:"failures" validate:"gte=1"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
}

type Server struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Load builds the configuration from the embedded defaults, then the YAML
// file at path (if any), then a .env file and WEATHEROS_* variables.
func Load(defaults []byte, path string) (*Config, error) {
	cfg := &Config{}

	if err := yaml.Unmarshal(defaults, cfg); err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Reverse.Enabled && c.Reverse.URL == "" {
		return errors.New("invalid config: reverse.url is required when reverse geocoding is enabled")
	}
	if c.Locate.Provider == LocateIPAPI && c.Locate.URL == "" {
		return errors.New("invalid config: locate.url is required for the ipapi provider")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Language = getenvDefault("WEATHEROS_LANGUAGE", cfg.Language)
	cfg.Locate.Provider = getenvDefault("WEATHEROS_LOCATE_PROVIDER", cfg.Locate.Provider)
	cfg.Server.Addr = getenvDefault("WEATHEROS_SERVER_ADDR", cfg.Server.Addr)

	if v := os.Getenv("WEATHEROS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHEROS_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if v := os.Getenv("WEATHEROS_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHEROS_DEBUG: %w", err)
		}
		cfg.Debug = debug
	}

	for key, dst := range map[string]*float64{
		"WEATHEROS_LOCATE_LATITUDE":  &cfg.Locate.Latitude,
		"WEATHEROS_LOCATE_LONGITUDE": &cfg.Locate.Longitude,
	} {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = f
		}
	}

	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
