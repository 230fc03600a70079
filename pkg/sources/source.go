// Package sources defines the boundaries to external data sources: article
// pages, the shared voice catalog, and image search. Implementations live in
// internal/sources and are swapped for fakes in tests.
package sources

import (
	"context"
)

// ID identifies an external source in logs and run reports.
type ID string

// Known sources.
const (
	Wikipedia  ID = "wikipedia"
	ElevenLabs ID = "elevenlabs"
	GoogleCSE  ID = "google_cse"
)

// String returns the ID as a string.
func (id ID) String() string { return string(id) }

// PageResolver supplies page text for a language.
//
// Resolve tries the display name first and the official name only when the
// display name yields nothing. When every attempt fails it returns an error
// matching errors.ErrNoContent, which callers treat as skip-and-continue.
type PageResolver interface {
	Resolve(ctx context.Context, displayName, officialName string) (string, error)
}

// Voice is one entry of the shared voice catalog.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name,omitempty"`
	Language string `json:"language,omitempty"`
	Accent   string `json:"accent,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Age      string `json:"age,omitempty"`
	Category string `json:"category,omitempty"`
}

// VoiceCatalog lists every shared voice. Implementations page through the
// catalog until an empty page and may return duplicates across pages.
type VoiceCatalog interface {
	SharedVoices(ctx context.Context) ([]Voice, error)
}

// ImageSearcher finds at most one image for a query and downloads it.
// Search returns an error matching errors.ErrNotFound when nothing matches.
type ImageSearcher interface {
	Search(ctx context.Context, query string) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// Description is a short article summary for a language. FetchedAt is in Unix
// milliseconds.
type Description struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	FetchedAt   int64  `json:"fetchedAt"`
}

// Describer fetches a short description for a language name. It returns an
// error matching errors.ErrNoContent when no usable text exists.
type Describer interface {
	Describe(ctx context.Context, name string) (*Description, error)
}
