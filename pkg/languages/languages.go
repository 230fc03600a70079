// Package languages defines the record types shared by every pipeline stage:
// variant keys, endangerment codes, coordinates, and the canonical joined record.
package languages

import (
	"fmt"
	"strings"
)

// VariantKey identifies one dialect or accent of a language across all datasets.
type VariantKey struct {
	Language string `json:"language" yaml:"language"`
	Variant  string `json:"variant" yaml:"variant"`
}

// NewVariantKey creates a VariantKey.
func NewVariantKey(language, variant string) VariantKey {
	return VariantKey{Language: language, Variant: variant}
}

// String renders the key as "language.variant".
func (k VariantKey) String() string {
	return k.Language + "." + k.Variant
}

// FileStem renders the key as used in derived file names, e.g. "en_new_zealand".
func (k VariantKey) FileStem() string {
	return strings.ReplaceAll(k.Language+"_"+k.Variant, " ", "_")
}

// ParseVariantKey parses "language.variant". The variant may itself contain dots.
func ParseVariantKey(s string) (VariantKey, error) {
	lang, variant, ok := strings.Cut(s, ".")
	if !ok || lang == "" || variant == "" {
		return VariantKey{}, fmt.Errorf("invalid variant key %q: want language.variant", s)
	}
	return VariantKey{Language: lang, Variant: variant}, nil
}

// NameEntry is a leaf of the names dataset.
type NameEntry struct {
	Name         string `json:"name"`
	OfficialName string `json:"official_name,omitempty"`
	ISO6393      string `json:"iso_639_3,omitempty"`
}

// CoordinateEntry is a leaf of the coordinates dataset.
type CoordinateEntry struct {
	Coordinates Coordinates `json:"coordinates"`
}

// ExtractionResult holds the facts found on one page. Absent facts are nil,
// which is distinct from a zero speaker count.
type ExtractionResult struct {
	Speakers *int64
	Status   *EndangermentCode
}

// Empty reports whether no fact was found.
func (r ExtractionResult) Empty() bool {
	return r.Speakers == nil && r.Status == nil
}

// Record is the merged per-variant record produced by the join.
type Record struct {
	Coordinates        Coordinates      `json:"coordinates"`
	OfficialName       string           `json:"official_name"`
	Name               string           `json:"name"`
	ISO6393            string           `json:"iso_639_3,omitempty"`
	Speakers           *int64           `json:"speakers,omitempty"`
	EndangermentStatus EndangermentCode `json:"endangerment_status,omitempty"`
	VoiceIDs           []string         `json:"voice_ids"`
}

// DisplayName returns the best human readable name: name, then official name, then fallback.
func (r Record) DisplayName(fallback string) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.OfficialName != "":
		return r.OfficialName
	default:
		return fallback
	}
}
