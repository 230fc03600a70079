// Package join merges the keyed language datasets into one record per
// (language, variant).
//
// The join is a strict inner join: a key appears in the output only when the
// driving voices dataset and every required source carry it. Output order
// follows the driving dataset, so identical inputs always encode to identical
// bytes. The package performs no I/O.
package join

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/logging"
)

// Engine performs joins.
type Engine struct {
	logger *zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-key drop diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Join merges sources onto the driving voices dataset.
func (e *Engine) Join(driving *dataset.Dataset[[]string], sources ...Source) (*dataset.Dataset[languages.Record], *Result) {
	out := dataset.New[languages.Record]()
	result := &Result{Missing: make(map[string]int, len(sources))}
	for _, src := range sources {
		result.Sources = append(result.Sources, src.Name())
	}

	for _, lang := range driving.Languages() {
		kept := 0
		for _, variant := range driving.Variants(lang) {
			key := languages.NewVariantKey(lang, variant)

			missing := e.missingFrom(key, sources, result)
			if len(missing) > 0 {
				result.Dropped = append(result.Dropped, key)
				result.Stats.DroppedVariants++
				e.logger.Debug().
					Str("language", lang).
					Str("variant", variant).
					Strs("missing_from", missing).
					Msg("Dropping variant")
				continue
			}

			voices, _ := driving.GetKey(key)
			rec := languages.Record{VoiceIDs: append([]string{}, voices...)}
			for _, src := range sources {
				src.Apply(key, &rec)
			}
			out.SetKey(key, rec)

			kept++
			result.Stats.Variants++
			result.Stats.VoiceIDs += len(rec.VoiceIDs)
		}

		if kept > 0 {
			result.Stats.Languages++
		} else {
			result.Stats.DroppedLanguages++
		}
	}

	return out, result
}

// missingFrom returns the names of required sources that lack key and counts
// every source, required or not, that lacks it.
func (e *Engine) missingFrom(key languages.VariantKey, sources []Source, result *Result) []string {
	var missing []string
	for _, src := range sources {
		if src.Has(key) {
			continue
		}
		result.Missing[src.Name()]++
		if src.Required() {
			missing = append(missing, src.Name())
		}
	}
	return missing
}
