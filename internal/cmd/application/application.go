// Package application defines what langgarden commands need from the
// application: configuration, logging, and the external sources. Commands
// accept this interface so tests can substitute a Mock.
package application

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Settings are the resolved runtime settings shared by commands.
type Settings struct {
	DataDir     string
	ImagesDir   string
	Pacing      time.Duration
	ImagePacing time.Duration
	HTTPTimeout time.Duration
	// ReportDB is the run history database. Empty disables run recording.
	ReportDB string
}

// Application provides the dependencies commands need.
type Application interface {
	Logger() *zerolog.Logger
	OutputFormat() string
	Settings() Settings

	// Resolver returns the page resolver used by the scrape command.
	Resolver() sources.PageResolver
	// Describer returns the description source.
	Describer() sources.Describer
	// VoiceCatalog fails when the voice catalog API key is not configured.
	VoiceCatalog() (sources.VoiceCatalog, error)
	// ImageSearcher fails when the image search credentials are not configured.
	ImageSearcher() (sources.ImageSearcher, error)
	// RunStore returns the run history, or nil when recording is disabled.
	RunStore() (*runstore.Store, error)

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
