package logging

import (
	"fmt"
	"io"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New picks the logger implementation named by backend.
func New(backend, env, level string, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendSlog:
		return NewJSONSlogLogger(w, level), nil
	case BackendZap:
		return NewZapForEnvironment(env, level)
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
