package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/timex"
)

// JSONConfig mirrors Config for file loading. Durations accept either a
// Go duration string ("24h") or integer nanoseconds.
type JSONConfig struct {
	Environment           string         `json:"environment"`
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	Storage               string         `json:"storage"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	EncryptionKey         string         `json:"encryption_key"`
	LogLevel              string         `json:"log_level"`
	LogBackend            string         `json:"log_backend"`
	MaxBodyBytes          int64          `json:"max_body_bytes"`
	Argon2MemoryKiB       uint32         `json:"argon2_memory_kib"`
	Argon2Iterations      uint32         `json:"argon2_iterations"`
	Argon2Parallelism     uint8          `json:"argon2_parallelism"`
}

func parseJSON(cfg *Config) error {
	return loadJSONFile(flagx.ConfigFileFlag(), cfg)
}

// loadJSONFile overlays the non-zero values found in path onto cfg.
// An empty path is a no-op.
func loadJSONFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Environment, c.Environment)
	setString(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&cfg.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&cfg.Storage, c.Storage)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.EncryptionKey, c.EncryptionKey)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogBackend, c.LogBackend)

	if c.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.MaxBodyBytes != 0 {
		cfg.MaxBodyBytes = c.MaxBodyBytes
	}
	if c.Argon2MemoryKiB != 0 {
		cfg.Argon2MemoryKiB = c.Argon2MemoryKiB
	}
	if c.Argon2Iterations != 0 {
		cfg.Argon2Iterations = c.Argon2Iterations
	}
	if c.Argon2Parallelism != 0 {
		cfg.Argon2Parallelism = c.Argon2Parallelism
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
