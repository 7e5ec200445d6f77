package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/idk-code404/TerminusChat/internal/auth"
	"github.com/idk-code404/TerminusChat/internal/config"
	"github.com/idk-code404/TerminusChat/internal/core"
	"github.com/idk-code404/TerminusChat/internal/history"
	"github.com/idk-code404/TerminusChat/internal/identity"
	"github.com/idk-code404/TerminusChat/internal/store"
	"github.com/idk-code404/TerminusChat/internal/store/sqlite"
	transporthttp "github.com/idk-code404/TerminusChat/internal/transport/http"
)

// App wires together the chat core, persistence, and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	identities, err := identity.Open(cfg.IdentityPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open identity store: %w", err)
	}

	hist, err := history.Open(cfg.HistoryPath, cfg.HistoryLimit, logger)
	if err != nil {
		return nil, fmt.Errorf("open history log: %w", err)
	}

	logger.Info().
		Str("history_path", cfg.HistoryPath).
		Str("identity_path", cfg.IdentityPath).
		Int("history_entries", hist.Len()).
		Int("known_identities", identities.Len()).
		Msg("chat state loaded")

	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      24 * time.Hour,
	}
	authService := auth.NewService(st, identities, jwtConfig)

	registry := core.NewRegistry(cfg.AdminKey, identities)
	router := core.NewRouter(registry, logger)
	filter := core.NewFilter(cfg.BlockedWords, cfg.MaskToken)
	dispatcher := core.NewDispatcher(registry, router, hist, filter, logger)

	server := transporthttp.NewServer(registry, dispatcher, authService, identities, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
