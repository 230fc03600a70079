// Package pipeline runs the batch jobs that turn language names into datasets:
// page scraping with fact extraction, image collection, and description
// collection. Every job processes entries one at a time, paces its external
// calls, and records per-entry failures instead of aborting.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/extract"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/logging"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Entry is one (language, variant) to scrape.
type Entry struct {
	Key          languages.VariantKey
	DisplayName  string
	OfficialName string
}

// EntriesFromNames lists the names dataset in order, skipping variants
// without a display name.
func EntriesFromNames(names *dataset.Dataset[languages.NameEntry]) []Entry {
	var entries []Entry
	names.Each(func(key languages.VariantKey, n languages.NameEntry) bool {
		if strings.TrimSpace(n.Name) == "" {
			return true
		}
		entries = append(entries, Entry{Key: key, DisplayName: n.Name, OfficialName: n.OfficialName})
		return true
	})
	return entries
}

// Driver resolves a page for each entry and extracts facts from it.
type Driver struct {
	Resolver  sources.PageResolver
	Extractor *extract.Extractor
	// Pacing is the delay between consecutive page requests.
	Pacing time.Duration
	Logger *zerolog.Logger
}

// Run processes entries sequentially. A failing entry is recorded and the
// batch continues. When ctx is canceled the batch stops between entries and
// the partial result is returned with Interrupted set.
func (d *Driver) Run(ctx context.Context, entries []Entry) *Result {
	logger := d.logger()
	res := &Result{RunID: uuid.NewString(), Started: time.Now()}
	defer func() { res.Finished = time.Now() }()

	logger.Info().
		Str("run_id", res.RunID).
		Int("entries", len(entries)).
		Msg("Starting scrape")

	for i, entry := range entries {
		if i > 0 && !sleep(ctx, d.Pacing) {
			res.Interrupted = true
			break
		}
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}

		success, err := d.process(ctx, entry)
		if err != nil {
			if ctx.Err() != nil {
				res.Interrupted = true
				break
			}
			logger.Warn().
				Err(err).
				Str("language", entry.Key.Language).
				Str("variant", entry.Key.Variant).
				Str("name", entry.DisplayName).
				Msg("Skipping entry")
			res.Failures = append(res.Failures, Failure{
				Key:    entry.Key,
				Name:   entry.DisplayName,
				Reason: reason(err),
				Err:    err,
			})
			continue
		}

		logger.Debug().
			Str("language", entry.Key.Language).
			Str("variant", entry.Key.Variant).
			Str("speaker_rule", success.SpeakerRule).
			Str("status_rule", success.StatusRule).
			Msg("Extracted facts")
		res.Successes = append(res.Successes, success)
	}

	logger.Info().
		Str("run_id", res.RunID).
		Int("succeeded", len(res.Successes)).
		Int("failed", len(res.Failures)).
		Bool("interrupted", res.Interrupted).
		Msg("Scrape finished")
	return res
}

// process resolves and extracts one entry. Panics in either step are
// recovered and reported as errors.
func (d *Driver) process(ctx context.Context, entry Entry) (Success, error) {
	var (
		text  string
		err   error
		trace extract.Trace
		pc    panics.Catcher
	)
	pc.Try(func() {
		text, err = d.Resolver.Resolve(ctx, entry.DisplayName, entry.OfficialName)
		if err != nil || strings.TrimSpace(text) == "" {
			return
		}
		trace = d.extractor().Trace(text)
	})
	if r := pc.Recovered(); r != nil {
		return Success{}, fmt.Errorf("recovered panic: %v", r.Value)
	}
	if err != nil {
		return Success{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Success{}, &errors.NotFoundError{Resource: "page", ID: entry.DisplayName}
	}

	return Success{
		Key:         entry.Key,
		Name:        entry.DisplayName,
		Facts:       trace.Result,
		SpeakerRule: trace.SpeakerRule,
		StatusRule:  trace.StatusRule,
	}, nil
}

func (d *Driver) extractor() *extract.Extractor {
	if d.Extractor == nil {
		return extract.New()
	}
	return d.Extractor
}

func (d *Driver) logger() *zerolog.Logger {
	if d.Logger == nil {
		return logging.Default()
	}
	return d.Logger
}

// reason gives a short failure category for reports.
func reason(err error) string {
	switch {
	case errors.IsNoContent(err):
		return "no content"
	case errors.IsTimeout(err):
		return "timeout"
	case errors.IsRateLimited(err):
		return "rate limited"
	case errors.IsAPIKeyError(err):
		return "API key rejected"
	case errors.IsSourceUnavailable(err):
		return "source unavailable"
	default:
		return err.Error()
	}
}

// sleep waits for d or until ctx is done. It reports false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
