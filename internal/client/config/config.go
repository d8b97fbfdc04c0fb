package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/passvault/internal/filex"
)

const (
	AppName         = "passvault"
	sessionFileName = "session.json"
	envPrefix       = "PASSVAULT_CLIENT_"
)

// Config holds runtime settings for the passvault CLI.
type Config struct {
	ServerURL   string        `env:"SERVER_URL"`
	GRPCAddr    string        `env:"GRPC_ADDR"`
	SessionFile string        `env:"SESSION_FILE"`
	Timeout     time.Duration `env:"TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults. SessionFile stays empty
// and is resolved by SessionPath.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8009"
	c.GRPCAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// SessionPath returns the configured session file, or session.json in
// the user config directory.
func (c *Config) SessionPath() (string, error) {
	if c.SessionFile != "" {
		return c.SessionFile, nil
	}
	dir, err := filex.AppDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

// Load applies defaults, then the JSON file at path (if any), then the
// environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadJSONFile(path, cfg); err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
