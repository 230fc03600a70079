package runstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/langgarden/pkg/join"
	"github.com/agentstation/langgarden/pkg/pipeline"
)

// Command names stored with each run.
const (
	CommandScrape   = "scrape"
	CommandImages   = "images"
	CommandDescribe = "describe"
	CommandJoin     = "join"
)

// FromScrape converts a scrape result.
func FromScrape(res *pipeline.Result) (Run, []Failure) {
	run := Run{
		ID:          res.RunID,
		Command:     CommandScrape,
		StartedAt:   res.Started,
		FinishedAt:  res.Finished,
		Processed:   res.Processed(),
		Succeeded:   len(res.Successes),
		Failed:      len(res.Failures),
		Interrupted: res.Interrupted,
		Summary:     res.Summary(),
	}
	return run, fromPipeline(res.Failures)
}

// FromImages converts an image batch result.
func FromImages(res *pipeline.ImageResult) (Run, []Failure) {
	run := Run{
		ID:          res.RunID,
		Command:     CommandImages,
		StartedAt:   res.Started,
		FinishedAt:  res.Finished,
		Processed:   len(res.Saved) + len(res.Skipped) + len(res.Failures),
		Succeeded:   len(res.Saved),
		Failed:      len(res.Failures),
		Interrupted: res.Interrupted,
		Summary:     res.Summary(),
	}
	return run, fromPipeline(res.Failures)
}

// FromDescribe converts a description batch result. Names stored with a
// placeholder count as fetched and failed.
func FromDescribe(res *pipeline.DescribeResult) (Run, []Failure) {
	run := Run{
		ID:          res.RunID,
		Command:     CommandDescribe,
		StartedAt:   res.Started,
		FinishedAt:  res.Finished,
		Processed:   res.Fetched,
		Succeeded:   res.Fetched - len(res.Failures),
		Failed:      len(res.Failures),
		Interrupted: res.Interrupted,
		Summary:     res.Summary(),
	}
	failures := make([]Failure, 0, len(res.Failures))
	for _, name := range res.Failures {
		failures = append(failures, Failure{Item: name, Name: name, Reason: "no description"})
	}
	return run, failures
}

// FromJoin converts a join result. Every dropped variant is stored as a
// failure. A join is never interrupted.
func FromJoin(res *join.Result, started, finished time.Time) (Run, []Failure) {
	run := Run{
		ID:         uuid.NewString(),
		Command:    CommandJoin,
		StartedAt:  started,
		FinishedAt: finished,
		Processed:  res.Stats.Variants + res.Stats.DroppedVariants,
		Succeeded:  res.Stats.Variants,
		Failed:     res.Stats.DroppedVariants,
		Summary:    res.Summary(),
	}
	failures := make([]Failure, 0, len(res.Dropped))
	for _, key := range res.Dropped {
		failures = append(failures, Failure{Item: key.String(), Reason: "missing from a required dataset"})
	}
	return run, failures
}

func fromPipeline(in []pipeline.Failure) []Failure {
	out := make([]Failure, 0, len(in))
	for _, f := range in {
		out = append(out, Failure{Item: f.Key.String(), Name: f.Name, Reason: f.Reason})
	}
	return out
}
