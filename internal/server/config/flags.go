package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/passvault/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-s", "-k", "-t", "-l", "-b", "-e", "-m"}

func parseFlags(cfg *Config) error {
	return parseFlagArgs(cfg, os.Args[1:])
}

// parseFlagArgs applies the server flags found in args:
//
//	-a  HTTP bind address
//	-g  gRPC bind address
//	-d  PostgreSQL DSN
//	-s  JWT signing key
//	-k  entry encryption key
//	-t  token validity (Go duration, e.g. 24h)
//	-l  log level
//	-b  log backend (slog|zap)
//	-e  environment (development|production)
//	-m  storage (postgres|memory)
func parseFlagArgs(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("passvault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "HTTP address")
	fs.StringVar(&cfg.EndpointAddrGRPC, "g", cfg.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing key")
	fs.StringVar(&cfg.EncryptionKey, "k", cfg.EncryptionKey, "entry encryption key")
	ttl := fs.Duration("t", cfg.TokenValidityDuration, "token validity")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend")
	fs.StringVar(&cfg.Environment, "e", cfg.Environment, "environment")
	fs.StringVar(&cfg.Storage, "m", cfg.Storage, "storage backend")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	cfg.TokenValidityDuration = *ttl
	return nil
}
