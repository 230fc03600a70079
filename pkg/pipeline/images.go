package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/logging"
	"github.com/agentstation/langgarden/pkg/sources"
)

// ImageFetcher searches for one picture per entry and stores it as
// <Dir>/<language>_<variant>.png.
type ImageFetcher struct {
	Searcher sources.ImageSearcher
	Dir      string
	// Queries overrides the search query per file stem, e.g. "es_puerto_rican".
	Queries map[string]string
	// Force re-downloads images that already exist.
	Force  bool
	Pacing time.Duration
	Logger *zerolog.Logger
}

// ImageResult collects the outcome of an image batch.
type ImageResult struct {
	RunID       string
	Started     time.Time
	Finished    time.Time
	Saved       []string
	Skipped     []languages.VariantKey
	Failures    []Failure
	Interrupted bool
}

// HasFailures reports whether any entry failed.
func (r *ImageResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// Summary returns a one-line description of the batch.
func (r *ImageResult) Summary() string {
	s := fmt.Sprintf("Saved %d images, skipped %d existing, %d failed",
		len(r.Saved), len(r.Skipped), len(r.Failures))
	if r.Interrupted {
		s += " (interrupted)"
	}
	return s
}

// Query returns the search query for an entry: the override when one exists,
// otherwise the quoted display name without the word "language" followed by
// "people".
func (f *ImageFetcher) Query(entry Entry) string {
	if q, ok := f.Queries[entry.Key.FileStem()]; ok && strings.TrimSpace(q) != "" {
		return q
	}
	name := strings.TrimSpace(strings.ReplaceAll(entry.DisplayName, "language", ""))
	if name == "" {
		name = entry.Key.Language
	}
	return fmt.Sprintf("%q people", name)
}

// Path returns where the image for key is stored.
func (f *ImageFetcher) Path(key languages.VariantKey) string {
	return filepath.Join(f.Dir, key.FileStem()+".png")
}

// Run fetches images for entries sequentially.
func (f *ImageFetcher) Run(ctx context.Context, entries []Entry) (*ImageResult, error) {
	if err := os.MkdirAll(f.Dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", f.Dir, err)
	}

	logger := f.logger()
	res := &ImageResult{RunID: uuid.NewString(), Started: time.Now()}
	defer func() { res.Finished = time.Now() }()

	requested := false
	for _, entry := range entries {
		path := f.Path(entry.Key)
		if !f.Force {
			if _, err := os.Stat(path); err == nil {
				res.Skipped = append(res.Skipped, entry.Key)
				continue
			}
		}

		if (requested && !sleep(ctx, f.Pacing)) || ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		requested = true

		query := f.Query(entry)
		if err := f.fetch(ctx, query, path); err != nil {
			if ctx.Err() != nil {
				res.Interrupted = true
				break
			}
			logger.Warn().
				Err(err).
				Str("language", entry.Key.Language).
				Str("variant", entry.Key.Variant).
				Str("query", query).
				Msg("Skipping image")
			res.Failures = append(res.Failures, Failure{Key: entry.Key, Name: entry.DisplayName, Reason: reason(err), Err: err})
			continue
		}

		logger.Info().
			Str("language", entry.Key.Language).
			Str("variant", entry.Key.Variant).
			Str("path", path).
			Msg("Saved image")
		res.Saved = append(res.Saved, path)
	}
	return res, nil
}

func (f *ImageFetcher) fetch(ctx context.Context, query, path string) error {
	url, err := f.Searcher.Search(ctx, query)
	if err != nil {
		return err
	}
	data, err := f.Searcher.Download(ctx, url)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return &errors.NotFoundError{Resource: "image", ID: url}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func (f *ImageFetcher) logger() *zerolog.Logger {
	if f.Logger == nil {
		return logging.Default()
	}
	return f.Logger
}

// LoadQueries reads query overrides keyed by file stem from a YAML or JSON file.
func LoadQueries(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	queries := map[string]string{}
	if err := yaml.Unmarshal(data, &queries); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return queries, nil
}
