package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/logging"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Describer collects short descriptions for language names into a JSON array
// file. Names already present in the file are skipped, so an interrupted run
// resumes where it stopped.
type Describer struct {
	Source sources.Describer
	Path   string
	Pacing time.Duration
	// SaveEvery is how many new descriptions are collected between saves.
	SaveEvery int
	Logger    *zerolog.Logger
	// Now is used for fetchedAt stamps.
	Now func() time.Time
}

// DescribeResult collects the outcome of a description batch.
type DescribeResult struct {
	RunID       string
	Started     time.Time
	Finished    time.Time
	Fetched     int
	Resumed     int
	Failures    []string
	Interrupted bool
}

// Summary returns a one-line description of the batch.
func (r *DescribeResult) Summary() string {
	s := fmt.Sprintf("Fetched %d descriptions, %d already present, %d without a description",
		r.Fetched, r.Resumed, len(r.Failures))
	if r.Interrupted {
		s += " (interrupted)"
	}
	return s
}

// LoadDescriptions reads a description file. A missing file is an empty list.
func LoadDescriptions(path string) ([]sources.Description, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var out []sources.Description
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return out, nil
}

// Run describes every name not yet in the output file. Lookups that find
// nothing are stored with a placeholder text and reported as failures. The
// file is saved every SaveEvery new entries and once more at the end.
func (d *Describer) Run(ctx context.Context, names []string) (*DescribeResult, error) {
	existing, err := LoadDescriptions(d.Path)
	if err != nil {
		return nil, err
	}

	logger := d.logger()
	res := &DescribeResult{RunID: uuid.NewString(), Started: time.Now()}
	defer func() { res.Finished = time.Now() }()

	done := make(map[string]bool, len(existing))
	for _, desc := range existing {
		done[desc.Name] = true
	}
	out := append([]sources.Description{}, existing...)

	saveEvery := d.SaveEvery
	if saveEvery <= 0 {
		saveEvery = constants.DescribeSaveEvery
	}

	requested := false
	for i, name := range names {
		if done[name] {
			res.Resumed++
			continue
		}
		if (requested && !sleep(ctx, d.Pacing)) || ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		requested = true

		logger.Info().Msgf("%d/%d Fetching %s", i+1, len(names), name)
		desc, err := d.Source.Describe(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				res.Interrupted = true
				break
			}
			logger.Warn().Err(err).Str("name", name).Msg("No description found")
			res.Failures = append(res.Failures, name)
			desc = &sources.Description{
				Name:        name,
				Description: "No description found for " + name,
			}
		}
		desc.Name = name
		desc.FetchedAt = d.now().UnixMilli()

		out = append(out, *desc)
		done[name] = true
		res.Fetched++

		if res.Fetched%saveEvery == 0 {
			if err := dataset.SaveJSON(d.Path, out); err != nil {
				return res, err
			}
			logger.Debug().Int("descriptions", len(out)).Msg("Saved progress")
		}
	}

	if err := dataset.SaveJSON(d.Path, out); err != nil {
		return res, err
	}
	return res, nil
}

func (d *Describer) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Describer) logger() *zerolog.Logger {
	if d.Logger == nil {
		return logging.Default()
	}
	return d.Logger
}
