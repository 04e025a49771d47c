package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/auth"
	"github.com/abhisek/lugat/internal/config"
	"github.com/abhisek/lugat/internal/feedback"
	"github.com/abhisek/lugat/internal/logging"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/workspace"
)

// env is everything a command needs, built from flags and config.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	auth    *auth.Service
	ws      *workspace.Workspace
	closers []io.Closer
}

// openEnv loads config, opens the log file and the local store, and builds
// the workspace. The caller must Close the env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.API.BaseURL = strings.TrimRight(u, "/")
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--api-url: %w", err)
		}
	}

	e := &env{cfg: cfg}

	logger, logFile, err := logging.Open(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e.logger = logger
	e.closers = append(e.closers, logFile)

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)

	client := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout), api.WithLogger(logger))
	e.auth = auth.NewService(client, st.CredentialRepo(), logger)

	svc := e.auth
	e.ws = workspace.New(workspace.Options{
		Accounts: svc,
		Connect: func(ctx context.Context) (workspace.Backend, error) {
			c, err := svc.Client(ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Results: st.ResultRepo(),
		Bell:    feedback.NewBell(cmd.OutOrStdout(), cfg.Sound.Muted),
		Logger:  logger,
	})

	logger.Debug("env ready", "api", cfg.API.BaseURL, "db", dbPath)
	return e, nil
}

// Close releases the store and the log file, newest first.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// signedIn restores stored credentials and fails when there are none.
func (e *env) signedIn(ctx context.Context) (*store.Credentials, error) {
	u, err := e.ws.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("not logged in; run `lugat login` first")
	}
	return u, nil
}

// userError turns err into the one line shown to the user.
func userError(err error, op api.Op) error {
	if err == nil {
		return nil
	}
	return errors.New(api.Message(err, op.Fallback()))
}
