package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "dbg", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["a"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, int64(4), entries[3].ContextMap()["d"])
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapLogger(zap.New(core))

	log.With("module", "grpc").Info(context.Background(), "hello", "k", "v")

	entries := logs.FilterMessage("hello").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "grpc", fields["module"])
	assert.Equal(t, "v", fields["k"])
}

func TestNewZapForEnvironment(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		l, err := NewZapForEnvironment(env, "debug")
		require.NoError(t, err)
		require.NotNil(t, l)
	}
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("", "development", "info", &buf)
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)

	l, err = New(BackendZap, "development", "info", &buf)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	_, err = New("logrus", "development", "info", &buf)
	require.Error(t, err)
}
