package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the upload service configuration, loadable from YAML
type Config struct {
	Addr              string        `yaml:"addr"`
	Route             string        `yaml:"route"`
	MaxUploadMB       int64         `yaml:"maxUploadMB"`
	CORSOrigin        string        `yaml:"corsOrigin"`
	MaxDim            int           `yaml:"maxDim"`
	InvertMonochrome1 bool          `yaml:"invertMonochrome1"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

// DefaultConfig matches the original upload service: port 5000, any origin
func DefaultConfig() Config {
	return Config{
		Addr:              ":5000",
		Route:             "/upload_dicom",
		MaxUploadMB:       64,
		CORSOrigin:        "*",
		InvertMonochrome1: true,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// LoadConfig reads a YAML file over the defaults; keys missing from the file
// keep their default values
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values the service cannot run without
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("config: addr is required")
	case c.Route == "" || c.Route[0] != '/':
		return fmt.Errorf("config: route %q must start with /", c.Route)
	case c.MaxUploadMB <= 0:
		return fmt.Errorf("config: maxUploadMB must be positive")
	case c.MaxDim < 0:
		return fmt.Errorf("config: maxDim must not be negative")
	}
	return nil
}

func (c Config) maxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
