package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/config"
	"github.com/roach88/roster/internal/persist"
	"github.com/roach88/roster/internal/store"
)

// session is the wiring behind one command run: config, logger, backend
// and a hydrated store.
type session struct {
	ctx       context.Context
	cfg       config.Config
	formatter *OutputFormatter
	logger    *slog.Logger
	backend   persist.Backend
	store     *store.Store
}

// newFormatter builds the formatter for cmd from the global flags.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// openSession loads config, opens the backend and hydrates the store.
// Errors are already reported through the formatter; callers return them.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	formatter := newFormatter(opts, cmd)

	cfg, err := resolveConfig(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger := newLogger(cfg.Log, opts.Verbose, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("opening storage", "backend", cfg.Storage.Backend, "slot", cfg.Storage.Slot)
	backend, err := persist.Open(ctx, cfg.Storage)
	if err != nil {
		_ = formatter.Error(ErrCodeStorage, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}

	st := store.New(backend, store.WithLogger(logger))
	if err := st.Load(ctx); err != nil {
		backend.Close()
		return nil, formatter.Fail(err)
	}
	logger.Debug("store ready", "records", st.Len())

	return &session{
		ctx:       ctx,
		cfg:       cfg,
		formatter: formatter,
		logger:    logger,
		backend:   backend,
		store:     st,
	}, nil
}

// Close releases the backend.
func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing storage", "error", err)
	}
}

// resolveConfig loads the config file and environment, then applies flags.
func resolveConfig(opts *RootOptions) (config.Config, error) {
	return config.Load(opts.ConfigPath, func(cfg *config.Config) {
		if opts.Backend != "" {
			cfg.Storage.Backend = opts.Backend
		}
		if opts.Database != "" {
			switch cfg.Storage.Backend {
			case config.BackendFile:
				cfg.Storage.FilePath = opts.Database
			default:
				cfg.Storage.SQLitePath = opts.Database
			}
		}
		if opts.Verbose {
			cfg.Log.Level = "debug"
		}
	})
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg config.Log, verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
