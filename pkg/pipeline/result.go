package pipeline

import (
	"fmt"
	"time"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
)

// Success is an entry whose page was resolved. Either fact may still be absent.
type Success struct {
	Key         languages.VariantKey
	Name        string
	Facts       languages.ExtractionResult
	SpeakerRule string
	StatusRule  string
}

// Failure is an entry that was skipped.
type Failure struct {
	Key    languages.VariantKey
	Name   string
	Reason string
	Err    error
}

// String renders the failure as "lang.variant (name)".
func (f Failure) String() string {
	return label(f.Key, f.Name)
}

// Result collects the outcome of one batch. Each run returns its own Result.
type Result struct {
	RunID       string
	Started     time.Time
	Finished    time.Time
	Successes   []Success
	Failures    []Failure
	Interrupted bool
}

// Processed returns how many entries were attempted.
func (r *Result) Processed() int {
	return len(r.Successes) + len(r.Failures)
}

// Duration returns how long the batch ran.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// HasFailures reports whether any entry was skipped.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Speakers returns the found speaker counts as a dataset, in entry order.
func (r *Result) Speakers() *dataset.Dataset[int64] {
	ds := dataset.New[int64]()
	for _, s := range r.Successes {
		if s.Facts.Speakers != nil {
			ds.SetKey(s.Key, *s.Facts.Speakers)
		}
	}
	return ds
}

// Statuses returns the found endangerment codes as a dataset, in entry order.
func (r *Result) Statuses() *dataset.Dataset[languages.EndangermentCode] {
	ds := dataset.New[languages.EndangermentCode]()
	for _, s := range r.Successes {
		if s.Facts.Status != nil {
			ds.SetKey(s.Key, *s.Facts.Status)
		}
	}
	return ds
}

// Missing lists the skipped entries.
func (r *Result) Missing() []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.String())
	}
	return out
}

// MissingSpeakers lists every entry without a speaker count, skipped or not.
func (r *Result) MissingSpeakers() []string {
	return r.missing(func(s Success) bool { return s.Facts.Speakers == nil })
}

// MissingStatus lists every entry without an endangerment code, skipped or not.
func (r *Result) MissingStatus() []string {
	return r.missing(func(s Success) bool { return s.Facts.Status == nil })
}

func (r *Result) missing(lacks func(Success) bool) []string {
	var out []string
	for _, s := range r.Successes {
		if lacks(s) {
			out = append(out, label(s.Key, s.Name))
		}
	}
	return append(out, r.Missing()...)
}

// Summary returns a one-line description of the batch.
func (r *Result) Summary() string {
	s := fmt.Sprintf("Processed %d entries: %d speaker counts, %d statuses, %d skipped",
		r.Processed(), r.Speakers().VariantCount(), r.Statuses().VariantCount(), len(r.Failures))
	if r.Interrupted {
		s += " (interrupted)"
	}
	return s
}

func label(key languages.VariantKey, name string) string {
	return fmt.Sprintf("%s (%s)", key, name)
}
