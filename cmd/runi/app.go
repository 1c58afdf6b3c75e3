// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/runi-launcher/runi/internal/config"
	"github.com/runi-launcher/runi/internal/discovery"
	"github.com/runi-launcher/runi/internal/issue"
	"github.com/runi-launcher/runi/internal/overrides"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and delegate
	// work through its service interfaces.
	App struct {
		Config      ConfigProvider
		Index       IndexService
		Launcher    Launcher
		Diagnostics DiagnosticRenderer
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply mock implementations
	// to isolate specific service behavior.
	Dependencies struct {
		Config      ConfigProvider
		Index       IndexService
		Launcher    Launcher
		Diagnostics DiagnosticRenderer
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// IndexRequest carries everything one index build needs.
	IndexRequest struct {
		Roots     config.Roots
		Overrides *overrides.Store
		Exclude   []string
		Logger    *log.Logger
	}

	// IndexService builds the application index.
	IndexService interface {
		Build(ctx context.Context, req IndexRequest) (discovery.Result, error)
	}

	// DiagnosticRenderer renders structured diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []discovery.Diagnostic, stderr io.Writer)
	}

	// session is the per-invocation state shared by index-consuming commands.
	session struct {
		cfg        *config.Config
		configPath string
		roots      config.Roots
		overrides  *overrides.Store
		logger     *log.Logger
	}

	// backgroundIndexService starts the build on its own goroutine and waits
	// for the handoff.
	backgroundIndexService struct{}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Index == nil {
		deps.Index = &backgroundIndexService{}
	}
	if deps.Launcher == nil {
		deps.Launcher = &processLauncher{}
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}

	return &App{
		Config:      deps.Config,
		Index:       deps.Index,
		Launcher:    deps.Launcher,
		Diagnostics: deps.Diagnostics,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}, nil
}

// Build implements IndexService. Cancelling ctx stops the wait, not the build.
func (s *backgroundIndexService) Build(ctx context.Context, req IndexRequest) (discovery.Result, error) {
	pending := discovery.New(
		discovery.WithRoots(req.Roots),
		discovery.WithOverrides(req.Overrides),
		discovery.WithExclude(req.Exclude...),
		discovery.WithLogger(req.Logger),
	).Start()

	select {
	case <-pending.Done():
		return pending.Wait(), nil
	case <-ctx.Done():
		return discovery.Result{}, fmt.Errorf("index build abandoned: %w", ctx.Err())
	}
}

// Render implements DiagnosticRenderer.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []discovery.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == discovery.SeverityError {
			prefix = ErrorStyle.Render("error")
		}

		msg := diag.Message
		if diag.Cause != nil {
			msg += ": " + diag.Cause.Error()
		}

		if diag.Path != "" {
			_, _ = fmt.Fprintf(stderr, "%s: %s (%s)\n", prefix, msg, diag.Path)
			continue
		}

		_, _ = fmt.Fprintf(stderr, "%s: %s\n", prefix, msg)
	}
}

// openSession loads configuration, builds the logger, resolves the data
// roots and loads override patches.
//
// An explicit --config that cannot be loaded is an error. A broken default
// config file, or unusable override patches, degrade to defaults with a
// warning so the index can still be built.
func (a *App) openSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	var cfgErr error
	if err != nil {
		if flags.configPath != "" {
			return nil, newServiceError(err, issue.IssueOf(err, issue.ConfigLoadFailedId), "")
		}
		cfgErr = err
		cfg = config.DefaultConfig()
	}

	logger, err := newLogger(a.stderr, cfg, flags)
	if err != nil {
		return nil, err
	}
	if cfgErr != nil {
		logger.Warn("using default configuration", "error", cfgErr)
	}

	roots, err := config.ResolveRoots(cfg)
	if err != nil {
		return nil, err
	}

	configPath, err := config.ResolveFilePath(config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}

	store, err := overrides.Load(configPath)
	switch {
	case err == nil:
		logger.Debug("override patches loaded", "path", configPath, "count", store.Len())
	case errors.Is(err, fs.ErrNotExist):
		store = nil
	default:
		logger.Warn("ignoring override patches", "error", err)
		store = nil
	}

	return &session{
		cfg:        cfg,
		configPath: configPath,
		roots:      roots,
		overrides:  store,
		logger:     logger,
	}, nil
}

// buildIndex runs one index build for the session.
func (a *App) buildIndex(ctx context.Context, s *session) (discovery.Result, error) {
	return a.Index.Build(ctx, IndexRequest{
		Roots:     s.roots,
		Overrides: s.overrides,
		Exclude:   s.cfg.Index.Exclude,
		Logger:    s.logger,
	})
}

// newLogger builds the stderr logger. --log-level wins over --verbose, which
// wins over the configured level.
func newLogger(w io.Writer, cfg *config.Config, flags *rootFlagValues) (*log.Logger, error) {
	levelName := cfg.Log.Level.String()
	if flags.verbose {
		levelName = config.LogLevelDebug.String()
	}
	if flags.logLevel != "" {
		levelName = flags.logLevel
	}
	if levelName == "" {
		levelName = config.LogLevelWarn.String()
	}

	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	}), nil
}
