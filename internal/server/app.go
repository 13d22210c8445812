// Package server wires the fivet server together: logger, persona storage,
// token service and the gRPC endpoint, with graceful shutdown on signals.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/auth"
	"github.com/godiecl/fivet-grpc/internal/server/config"
	"github.com/godiecl/fivet-grpc/internal/server/services"

	gs "github.com/godiecl/fivet-grpc/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	accounts *services.AuthController
	tokens   *services.TokenService
}

// NewApp opens the persona store described by c and prepares the services.
// Logs are written to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.NewLogger(w, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	if c.Initialize {
		logger.Warn(ctx, "initialize is set, the personas table will be recreated")
	}

	accounts, err := services.OpenAuthController(ctx, c.DatabaseDSN, c.Initialize, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:   c,
		logger:   logger,
		accounts: accounts,
		tokens:   services.NewTokenService(c.SecretKey, c.AccessTokenValidityDuration),
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then closes
// the store.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "starting app")

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts, app.tokens)
	runErr := s.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", runErr)
	}

	if err := app.accounts.Close(); err != nil {
		app.logger.Error(context.Background(), "closing store", "error", err)
	}

	app.logger.Info(context.Background(), "app stopped")
	return runErr
}
