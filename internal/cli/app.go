// Package cli implements the interactive libmatch client: a REPL driving
// registration, login, messaging and account housekeeping.
package cli

import (
	"bufio"
	"context"
	"os"

	_ "modernc.org/sqlite"

	"libmatch/internal/auth"
	"libmatch/internal/config"
	"libmatch/internal/directory"
	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/photos"
	"libmatch/internal/remote"
	"libmatch/internal/session"
	"libmatch/internal/storage"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeOnline Mode = "online"
)

// App wires the subsystem together for interactive use. All state lives in
// the injected components; the App itself only tracks the UI mode.
type App struct {
	config      *config.Config
	coordinator *auth.Coordinator
	sessions    *session.Manager
	store       *storage.Manager
	directory   *directory.Directory
	remote      remote.Store
	photos      *photos.Service
	log         logging.Logger
	Mode        Mode
	reader      *bufio.Reader
	kv          *kvstore.SQLiteStore
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	kv, err := kvstore.OpenSQLite(ctx, cfg.LocalDSN)
	if err != nil {
		return nil, err
	}

	var store remote.Store = remote.Unconfigured{}
	mode := ModeLocal
	if cfg.RemoteDSN != "" {
		pg, err := remote.OpenPostgres(ctx, cfg.RemoteDSN)
		if err != nil {
			log.Warn(ctx, "remote store unavailable, running locally", "error", err)
		} else {
			store = pg
			mode = ModeOnline
		}
	}

	localStore := storage.NewManager(kv, log)
	dir := directory.New(kv, log)
	sessions := session.NewManager(kv, log, []byte(cfg.SessionSecret), cfg.SessionMaxAge)
	coordinator := auth.NewCoordinator(store, dir, sessions, localStore, log)

	if err := localStore.InitializeDefaultSettings(ctx); err != nil {
		log.Warn(ctx, "failed to initialize default settings", "error", err)
	}

	return &App{
		config:      cfg,
		coordinator: coordinator,
		sessions:    sessions,
		store:       localStore,
		directory:   dir,
		remote:      store,
		photos:      photos.NewService(cfg),
		log:         log,
		Mode:        mode,
		reader:      bufio.NewReader(os.Stdin),
		kv:          kv,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsActive(context.Background())
}

func (a *App) Run(ctx context.Context) {
	defer a.kv.Close()
	a.Root(ctx)
}
