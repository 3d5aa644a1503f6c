// Package app wires the study terminal together: configuration, remote
// store, adapter, services, and the interactive command loop.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/okarpov/studykeeper/internal/config"
	"github.com/okarpov/studykeeper/internal/content"
	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/progress"
	"github.com/okarpov/studykeeper/internal/remote"
	"github.com/okarpov/studykeeper/internal/remote/firestore"
	"github.com/okarpov/studykeeper/internal/session"
	"github.com/okarpov/studykeeper/internal/stats"
	"github.com/okarpov/studykeeper/internal/store"
	"github.com/okarpov/studykeeper/internal/users"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	remote  remote.Store
	manager *session.Manager
	users   *users.Service
	stats   *stats.Service
	source  content.Source
	sess    *session.Session
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the full dependency graph. A missing or malformed credential
// bundle fails here, before any remote operation, which main treats as fatal.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	bundle, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("credential bundle: %w", err)
	}

	remoteStore, err := firestore.New(ctx, cfg.ProjectID, bundle)
	if err != nil {
		return nil, err
	}

	adapter := store.NewAdapter(remoteStore, store.Options{
		Timeout:     cfg.RequestTimeout,
		MaxAttempts: cfg.RetryAttempts,
	}, logger)
	paths := store.Paths{AppID: cfg.AppID}

	hasher, err := users.NewHasher(cfg.HashScheme)
	if err != nil {
		return nil, err
	}

	statsSvc := stats.NewService(adapter, paths)
	userSvc := users.NewService(adapter, paths, hasher, statsSvc, users.Bootstrap{
		Enabled: cfg.SetupMode,
		AdminID: cfg.AdminID,
		Secret:  cfg.AdminSecret,
	}, logger)
	syncer := progress.NewSynchronizer(adapter, paths, logger)
	manager := session.NewManager(userSvc, syncer, logger)

	source, err := content.NewFileSource(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		remote:  remoteStore,
		manager: manager,
		users:   userSvc,
		stats:   statsSvc,
		source:  source,
		sess:    session.New(),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) state() session.State {
	return a.sess.State
}

func (a *App) status() string {
	if a.sess.UserID == "" {
		return a.sess.State.String()
	}
	sync := "synced"
	if !a.sess.Synced {
		sync = "unsynced"
	}
	return fmt.Sprintf("%s %s (%s)", a.sess.UserID, a.sess.State, sync)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.remote.Close(); err != nil {
			a.logger.Error(ctx, "closing remote store", "error", err.Error())
		}
	}()

	printlnFn("StudyKeeper terminal. Type 'help' to begin.")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
