// Package server wires configuration, storage, services and both
// transports into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/auth"
	"github.com/dmitrijs2005/passvault/internal/server/config"
	"github.com/dmitrijs2005/passvault/internal/server/httpapi"
	"github.com/dmitrijs2005/passvault/internal/server/metrics"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/memory"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/server/services"

	gs "github.com/dmitrijs2005/passvault/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
}

// NewApp builds the application. Logs go to w. With postgres storage the
// database is opened and migrated before NewApp returns.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.Environment, c.LogLevel, w)
	if err != nil {
		return nil, err
	}
	logger = logger.With("app", "passvault")

	deps, db, err := openStorage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	sealer, err := cryptox.NewSealer([]byte(c.EncryptionKey))
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("sealer: %w", err)
	}

	deps.Hasher = cryptox.NewHasher(cryptox.Argon2Params{
		MemoryKiB:   c.Argon2MemoryKiB,
		Iterations:  c.Argon2Iterations,
		Parallelism: c.Argon2Parallelism,
	})
	deps.Issuer = issuer
	deps.Sealer = sealer
	deps.Logger = logger

	us, err := services.NewUserService(deps)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("user service: %w", err)
	}
	es := services.NewEntryService(deps)

	m := metrics.New()

	return &App{
		config: c,
		logger: logger,
		db:     db,
		httpServer: httpapi.NewServer(httpapi.Options{
			Addr:         c.EndpointAddrHTTP,
			MaxBodyBytes: c.MaxBodyBytes,
			Users:        us,
			Entries:      es,
			Tokens:       issuer,
			Metrics:      m,
			Logger:       logger,
		}),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, issuer, m),
	}, nil
}

func openStorage(ctx context.Context, c *config.Config, logger logging.Logger) (services.Deps, *sql.DB, error) {
	if c.Storage == config.StorageMemory {
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		store := memory.NewStore()
		return services.Deps{Tx: store, Repos: store}, nil, nil
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return services.Deps{}, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return services.Deps{}, nil, err
	}

	return services.Deps{DB: db, Tx: dbx.NewTransactor(db, nil), Repos: rm}, db, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run starts both transports and blocks until ctx is cancelled, a
// termination signal arrives or one of the servers fails. A failing
// server stops the other one.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	start("http", app.httpServer.Run)
	start("grpc", app.grpcServer.Run)

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(ctx, "closing database", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return firstErr
}
