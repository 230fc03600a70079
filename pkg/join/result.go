package join

import (
	"fmt"
	"strings"

	"github.com/agentstation/langgarden/pkg/languages"
)

// Result describes what a join kept and what it dropped.
type Result struct {
	// Sources lists the source names in the order they were applied.
	Sources []string

	Stats Statistics

	// Missing counts, per source, the driving keys that source lacked.
	Missing map[string]int

	// Dropped lists the driving keys excluded from the output, in driving order.
	Dropped []languages.VariantKey
}

// Statistics summarizes a join.
type Statistics struct {
	Languages        int `json:"languages" yaml:"languages"`
	Variants         int `json:"variants" yaml:"variants"`
	VoiceIDs         int `json:"voice_ids" yaml:"voice_ids"`
	DroppedLanguages int `json:"dropped_languages" yaml:"dropped_languages"`
	DroppedVariants  int `json:"dropped_variants" yaml:"dropped_variants"`
}

// HasDrops reports whether any driving key was excluded.
func (r *Result) HasDrops() bool {
	return r.Stats.DroppedVariants > 0
}

// Summary returns a one-line description of the join.
func (r *Result) Summary() string {
	s := fmt.Sprintf("Joined %d languages, %d variants, %d voice IDs",
		r.Stats.Languages, r.Stats.Variants, r.Stats.VoiceIDs)
	if !r.HasDrops() {
		return s
	}

	var parts []string
	for _, name := range r.Sources {
		if n := r.Missing[name]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", name, n))
		}
	}
	s += fmt.Sprintf("; dropped %d variants (%d languages)", r.Stats.DroppedVariants, r.Stats.DroppedLanguages)
	if len(parts) > 0 {
		s += " missing from " + strings.Join(parts, ", ")
	}
	return s
}
