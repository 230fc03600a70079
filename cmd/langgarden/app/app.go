// Package app wires configuration, logging and the external sources into
// the langgarden command tree and manages their lifecycle.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/internal/sources/elevenlabs"
	"github.com/agentstation/langgarden/internal/sources/googlecse"
	"github.com/agentstation/langgarden/internal/sources/wikipedia"
	"github.com/agentstation/langgarden/internal/transport"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/sources"
)

// App holds the configuration, logger and lazily opened resources shared by
// all commands.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu    sync.Mutex
	store *runstore.Store
}

var _ application.Application = (*App)(nil)

// New creates an App with configuration loaded from the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string { return a.config.Format }

// Settings returns the resolved pipeline settings.
func (a *App) Settings() application.Settings {
	return application.Settings{
		DataDir:     a.config.DataDir,
		ImagesDir:   a.config.ImagesPath(),
		Pacing:      a.config.Pacing,
		ImagePacing: a.config.ImagePacing,
		HTTPTimeout: a.config.HTTPTimeout,
		ReportDB:    a.config.ReportPath(),
	}
}

func (a *App) transportOptions() []transport.Option {
	if a.config.HTTPTimeout <= 0 {
		return nil
	}
	return []transport.Option{transport.WithTimeout(a.config.HTTPTimeout)}
}

// Resolver returns a Wikipedia page resolver.
func (a *App) Resolver() sources.PageResolver {
	return wikipedia.NewResolver(
		wikipedia.WithLogger(a.logger),
		wikipedia.WithTransport(a.transportOptions()...),
	)
}

// Describer returns the Wikipedia summary client.
func (a *App) Describer() sources.Describer {
	return wikipedia.NewSummaries(
		wikipedia.WithLogger(a.logger),
		wikipedia.WithTransport(a.transportOptions()...),
	)
}

// VoiceCatalog returns the ElevenLabs shared voice catalog.
func (a *App) VoiceCatalog() (sources.VoiceCatalog, error) {
	client, err := elevenlabs.New(a.config.ElevenLabsAPIKey, elevenlabs.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ImageSearcher returns the Google Custom Search client.
func (a *App) ImageSearcher() (sources.ImageSearcher, error) {
	client, err := googlecse.New(a.config.CSEAPIKey, a.config.CSEEngineID)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// RunStore opens the run history database on first use. It returns nil when
// recording is disabled.
func (a *App) RunStore() (*runstore.Store, error) {
	path := a.config.ReportPath()
	if path == "" {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	store, err := runstore.Open(path)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// Shutdown releases resources opened by commands.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
