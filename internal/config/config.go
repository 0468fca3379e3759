package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Data source kinds
const (
	SourceLocal    = "local"
	SourcePostgres = "postgres"
	SourceSupabase = "supabase"
)

// Config is the service configuration. Secrets (database DSN, Supabase
// keys) come from the environment, not from this file.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Data struct {
		Source string `yaml:"source"`
		Dir    string `yaml:"dir"`
		Bucket string `yaml:"bucket"`
	} `yaml:"data"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Data.Source = SourceLocal
	cfg.Data.Dir = "Data"
	cfg.Data.Bucket = "shp-files"
	return cfg
}

// Load reads the YAML configuration from path. A missing file is not an
// error; defaults apply. Invalid content is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("server.port must be positive")
	}
	switch cfg.Data.Source {
	case SourceLocal, SourcePostgres, SourceSupabase:
	default:
		return nil, fmt.Errorf("data.source must be one of %s, %s, %s", SourceLocal, SourcePostgres, SourceSupabase)
	}
	if cfg.Data.Source == SourceLocal && cfg.Data.Dir == "" {
		return nil, fmt.Errorf("data.dir is required for the local source")
	}
	if cfg.Data.Source == SourceSupabase && cfg.Data.Bucket == "" {
		return nil, fmt.Errorf("data.bucket is required for the supabase source")
	}
	return cfg, nil
}
