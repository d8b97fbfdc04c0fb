// Package httpapi is the JSON-over-HTTP transport of the vault.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/metrics"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/services"
	"github.com/gorilla/mux"
)

const (
	defaultMaxBody  = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type AuthService interface {
	Register(ctx context.Context, userName, password string) (*services.AuthResult, error)
	Login(ctx context.Context, userName, password string) (*services.AuthResult, error)
	Identify(ctx context.Context, userID string) (*models.User, error)
}

type EntryService interface {
	Create(ctx context.Context, userID string, in services.EntryInput) (*models.Entry, error)
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Get(ctx context.Context, userID, id string) (*models.Entry, error)
	Update(ctx context.Context, userID, id string, patch models.EntryPatch) (*models.Entry, error)
	Delete(ctx context.Context, userID, id string) error
}

type TokenResolver interface {
	Resolve(token string) (string, error)
}

type Options struct {
	Addr         string
	MaxBodyBytes int64
	Users        AuthService
	Entries      EntryService
	Tokens       TokenResolver
	Metrics      *metrics.Metrics
	Logger       logging.Logger
}

type Server struct {
	addr    string
	maxBody int64
	users   AuthService
	entries EntryService
	tokens  TokenResolver
	metrics *metrics.Metrics
	logger  logging.Logger
	router  *mux.Router
	now     func() time.Time
}

func NewServer(o Options) *Server {
	s := &Server{
		addr:    o.Addr,
		maxBody: o.MaxBodyBytes,
		users:   o.Users,
		entries: o.Entries,
		tokens:  o.Tokens,
		metrics: o.Metrics,
		logger:  o.Logger,
		now:     time.Now,
	}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBody
	}
	if s.logger == nil {
		s.logger = logging.Nop{}
	}
	s.router = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		// requests keep ctx values but not its cancellation, so that
		// Shutdown can drain them
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info(ctx, "http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}
