// Package server assembles the note authority: snapshot-backed stores,
// the HTTP API and its lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/notechain/notechain/internal/common"
	"github.com/notechain/notechain/internal/logging"
	"github.com/notechain/notechain/internal/server/config"
	"github.com/notechain/notechain/internal/server/httpapi"
	"github.com/notechain/notechain/internal/server/notes"
	"github.com/notechain/notechain/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	return &App{config: cfg, logger: logger}
}

// Run serves the API until the context is cancelled or an interrupt
// arrives, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	secret := a.config.SecretKey
	if secret == "" {
		generated, err := common.MakeRandHexString(32)
		if err != nil {
			return err
		}
		// tokens signed with an ephemeral key die with the process
		a.logger.Warn(ctx, "no signing key configured, generated an ephemeral one")
		secret = generated
	}

	noteStore := notes.NewStore(filepath.Join(a.config.DataDir, "notes.json"), a.logger)
	userStore := users.NewStore(filepath.Join(a.config.DataDir, "users.json"), a.logger)

	router := httpapi.NewRouter(noteStore, userStore,
		[]byte(secret), a.config.TokenValidity.Duration, a.logger)

	srv := &http.Server{Addr: a.config.Addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "note authority listening", "addr", a.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
