// Package transform derives secondary datasets from the pipeline outputs:
// coordinate placeholders for new voices, a flattened listing of the joined
// dataset, and generic JSON key stripping.
package transform

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
)

// Placeholders creates a coordinates dataset with a "TODO" pair for every
// variant of voices, ready to be filled in by hand.
func Placeholders(voices *dataset.Dataset[[]string]) *dataset.Dataset[languages.CoordinateEntry] {
	out := dataset.New[languages.CoordinateEntry]()
	voices.Each(func(key languages.VariantKey, _ []string) bool {
		out.SetKey(key, languages.CoordinateEntry{Coordinates: languages.PlaceholderCoordinates()})
		return true
	})
	return out
}

// FillPlaceholders adds placeholder coordinates for variants of voices that
// existing does not cover yet. Existing entries keep their values and order.
// It returns the number of entries added.
func FillPlaceholders(existing *dataset.Dataset[languages.CoordinateEntry], voices *dataset.Dataset[[]string]) int {
	added := 0
	voices.Each(func(key languages.VariantKey, _ []string) bool {
		if !existing.Has(key.Language, key.Variant) {
			existing.SetKey(key, languages.CoordinateEntry{Coordinates: languages.PlaceholderCoordinates()})
			added++
		}
		return true
	})
	return added
}

// Point is a validated coordinate pair.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Entry is one variant of the flattened dataset.
type Entry struct {
	ISO6393      string   `json:"iso6393" yaml:"iso6393"`
	Dialect      string   `json:"dialect" yaml:"dialect"`
	Name         string   `json:"name" yaml:"name"`
	OfficialName *string  `json:"official_name" yaml:"official_name"`
	Speakers     *int64   `json:"speakers" yaml:"speakers"`
	Coordinates  *Point   `json:"coordinates" yaml:"coordinates"`
	VoiceCount   int      `json:"voiceCount" yaml:"voiceCount"`
	HasVoices    bool     `json:"hasVoices" yaml:"hasVoices"`
	VoiceIDs     []string `json:"voice_ids" yaml:"voice_ids"`
	CreatedAt    int64    `json:"createdAt" yaml:"createdAt"`
}

// Flatten lists every variant of data. Coordinates are kept only when both
// components are numeric and in range. Entries are ordered by voice count,
// most first, then by language code.
func Flatten(data *dataset.Dataset[languages.Record], now time.Time) []Entry {
	created := now.UnixMilli()
	var out []Entry

	data.Each(func(key languages.VariantKey, rec languages.Record) bool {
		voices := rec.VoiceIDs
		if voices == nil {
			voices = []string{}
		}
		e := Entry{
			ISO6393:    key.Language,
			Dialect:    key.Variant,
			Name:       rec.DisplayName(key.Variant),
			Speakers:   rec.Speakers,
			VoiceCount: len(voices),
			HasVoices:  len(voices) > 0,
			VoiceIDs:   voices,
			CreatedAt:  created,
		}
		if rec.OfficialName != "" {
			official := rec.OfficialName
			e.OfficialName = &official
		}
		if rec.Coordinates.Valid() {
			lat, _ := rec.Coordinates.Lat.Float()
			lon, _ := rec.Coordinates.Long.Float()
			e.Coordinates = &Point{Lat: lat, Lon: lon}
		}
		out = append(out, e)
		return true
	})

	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VoiceCount != out[j].VoiceCount {
			return out[i].VoiceCount > out[j].VoiceCount
		}
		return c.CompareString(out[i].ISO6393, out[j].ISO6393) < 0
	})
	return out
}

// UniqueNames returns the distinct non-empty names of entries, sorted.
func UniqueNames(entries []Entry) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, e := range entries {
		if e.Name == "" || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}
