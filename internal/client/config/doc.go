// Package config loads runtime configuration for the passvault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config.
//  3. PASSVAULT_CLIENT_* environment variables.
//  4. Command-line flags, applied by the cli package.
//
// # JSON schema
//
// Durations can be strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8009",
//	  "grpc_addr": "127.0.0.1:50051",
//	  "session_file": "/home/me/.config/passvault/session.json",
//	  "timeout": "10s"
//	}
package config
