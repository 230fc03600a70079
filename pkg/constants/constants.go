// Package constants provides shared constants used throughout the langgarden codebase.
// This includes timeouts, pacing delays, file permissions, endpoints and other
// values that should be consistent across the pipeline stages.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single external HTTP call
	DefaultHTTPTimeout = 10 * time.Second

	// APITimeout is the timeout for JSON API calls (voice catalog, image search)
	APITimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Hour

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Pacing constants define the politeness delays between external calls.
const (
	// ScrapePacing is the delay between page resolutions
	ScrapePacing = 500 * time.Millisecond

	// ImagePacing is the delay between image search requests
	ImagePacing = 1 * time.Second

	// DescribePacing is the delay between description lookups
	DescribePacing = 500 * time.Millisecond
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// VoicePageSize is the page size used when listing the shared voice catalog
	VoicePageSize = 100

	// MaxVoicePages guards against a catalog that never returns an empty page
	MaxVoicePages = 10000

	// MaxPageBytes caps how much of a fetched page is read into memory (10 MB)
	MaxPageBytes = 10 << 20

	// MaxImageBytes caps a downloaded image (20 MB)
	MaxImageBytes = 20 << 20

	// MinDescriptionLength is the shortest summary accepted as a description
	MinDescriptionLength = 50

	// DescribeSaveEvery is how many new descriptions are collected between progress saves
	DescribeSaveEvery = 10
)

// Endpoint constants
const (
	// WikipediaBaseURL is the article root used by the page resolver
	WikipediaBaseURL = "https://en.wikipedia.org/wiki/"

	// WikipediaSummaryURL is the REST summary endpoint used for descriptions
	WikipediaSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

	// ElevenLabsBaseURL is the voice catalog API root
	ElevenLabsBaseURL = "https://api.elevenlabs.io"

	// CustomSearchURL is the Google Custom Search JSON API endpoint
	CustomSearchURL = "https://www.googleapis.com/customsearch/v1"
)

// User agent constants
const (
	// BotUserAgent identifies the scraper to Wikipedia
	BotUserAgent = "Language Garden Bot 1.0 (educational project)"

	// BrowserUserAgent is sent when downloading images from arbitrary hosts
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Dataset file names inside the data directory
const (
	VoicesFile       = "voices.json"
	CoordinatesFile  = "coordinates.json"
	NamesFile        = "names.json"
	SpeakersFile     = "speakers.json"
	StatusFile       = "unesco_status.json"
	DataFile         = "data.json"
	DescriptionsFile = "descriptions.json"
	FlattenedFile    = "extracted_languages.json"
	LanguageNames    = "language_names.json"
)

// Environment variable names for credentials
const (
	EnvElevenLabsKey = "ELEVEN_API_KEY"
	EnvCSEKey        = "GOOGLE_CSE_API_KEY"
	EnvCSEID         = "GOOGLE_CSE_ID"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// PlaceholderCoordinate marks coordinates that still need filling in by hand
	PlaceholderCoordinate = "TODO"

	// StandardVariant is the variant code used for a language's standard form
	StandardVariant = "standard"

	// AnyVariant is used when the voice catalog reports no language or accent
	AnyVariant = "any"
)
