package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Mock implements Application for command tests. Nil fields fall back to
// zero values and a no-op logger.
type Mock struct {
	LoggerFunc        func() *zerolog.Logger
	Format            string
	Config            Settings
	ResolverFunc      func() sources.PageResolver
	DescriberFunc     func() sources.Describer
	VoiceCatalogFunc  func() (sources.VoiceCatalog, error)
	ImageSearcherFunc func() (sources.ImageSearcher, error)
	RunStoreFunc      func() (*runstore.Store, error)
}

var _ Application = (*Mock)(nil)

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string { return m.Format }

// Settings returns Config.
func (m *Mock) Settings() Settings { return m.Config }

// Resolver returns the mock resolver.
func (m *Mock) Resolver() sources.PageResolver {
	if m.ResolverFunc != nil {
		return m.ResolverFunc()
	}
	return nil
}

// Describer returns the mock describer.
func (m *Mock) Describer() sources.Describer {
	if m.DescriberFunc != nil {
		return m.DescriberFunc()
	}
	return nil
}

// VoiceCatalog returns the mock catalog.
func (m *Mock) VoiceCatalog() (sources.VoiceCatalog, error) {
	if m.VoiceCatalogFunc != nil {
		return m.VoiceCatalogFunc()
	}
	return nil, nil
}

// ImageSearcher returns the mock searcher.
func (m *Mock) ImageSearcher() (sources.ImageSearcher, error) {
	if m.ImageSearcherFunc != nil {
		return m.ImageSearcherFunc()
	}
	return nil, nil
}

// RunStore returns the mock store, or nil.
func (m *Mock) RunStore() (*runstore.Store, error) {
	if m.RunStoreFunc != nil {
		return m.RunStoreFunc()
	}
	return nil, nil
}

// Version returns "test".
func (m *Mock) Version() string { return "test" }

// Commit returns "test".
func (m *Mock) Commit() string { return "test" }

// Date returns "test".
func (m *Mock) Date() string { return "test" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
