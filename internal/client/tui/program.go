package tui

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notechain/notechain/internal/client/config"
	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/client/localstore"
	"github.com/notechain/notechain/internal/client/remote"
	"github.com/notechain/notechain/internal/client/session"
	"github.com/notechain/notechain/internal/logging"
)

// App bundles everything the terminal client needs: the durable local
// store, the session manager and the bubbletea program.
type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Manager
	local   *localstore.Store
	closeFn func() error
}

func NewApp(cfg *config.Config) (*App, error) {
	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(slogger)

	db, err := localstore.OpenDB(filepath.Join(cfg.DataDir, "store"), slogger)
	if err != nil {
		return nil, err
	}

	local, err := localstore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	provider, err := remote.NewIdentityProvider(cfg.AuthorityAddr)
	if err != nil {
		db.Close()
		return nil, err
	}

	factory := func(id *identity.Identity) (remote.Client, error) {
		return remote.NewHTTPClient(cfg.AuthorityAddr, id)
	}

	sess := session.NewManager(local, provider, factory, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		session: sess,
		local:   local,
		closeFn: db.Close,
	}, nil
}

// Run restores any persisted session, then hands control to the TUI until
// the user quits.
func (a *App) Run(ctx context.Context) error {
	defer a.closeFn()

	if err := a.session.Initialize(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}

	model := NewModel(a.session, a.local, a.logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
