package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.Storage = config.StorageMemory
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.Argon2MemoryKiB = 1024
	c.Argon2Iterations = 1
	c.Argon2Parallelism = 1
	return &c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, app.db)
	assert.NotNil(t, app.httpServer)
	assert.NotNil(t, app.grpcServer)
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*config.Config)
	}{
		{"unknown log backend", func(c *config.Config) { c.LogBackend = "syslog" }},
		{"empty secret", func(c *config.Config) { c.SecretKey = "" }},
		{"empty encryption key", func(c *config.Config) { c.EncryptionKey = "" }},
		{"unreachable database", func(c *config.Config) {
			c.Storage = config.StoragePostgres
			c.DatabaseDSN = "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := memoryConfig()
			tt.mut(c)
			_, err := NewApp(context.Background(), c, &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), memoryConfig(), &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestApp_RunReportsBindFailure(t *testing.T) {
	c := memoryConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "grpc")
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after bind failure")
	}
}
