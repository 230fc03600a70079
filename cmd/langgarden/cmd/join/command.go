// Package join implements the join command, which merges the per-variant
// datasets into data.json.
package join

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/join"
	"github.com/agentstation/langgarden/pkg/languages"
)

// Datasets that may be marked optional.
const (
	optionalSpeakers = "speakers"
	optionalStatus   = "status"
)

// Report is the structured output of a join.
type Report struct {
	Output  string          `json:"output" yaml:"output"`
	Summary string          `json:"summary" yaml:"summary"`
	Stats   join.Statistics `json:"stats" yaml:"stats"`
	Missing map[string]int  `json:"missing" yaml:"missing"`
	Dropped []string        `json:"dropped" yaml:"dropped"`
}

type paths struct {
	voices, coordinates, names, speakers, status, out string
}

// NewCommand creates the join command.
func NewCommand(app application.Application) *cobra.Command {
	var p paths
	var optional []string

	cmd := &cobra.Command{
		Use:     "join",
		GroupID: "pipeline",
		Short:   "Merge voices, coordinates, names, speakers and status into data.json",
		Long: `Join merges the per-variant datasets into one record per language variant.

The voices dataset drives the join. A variant is kept only when every required
dataset has it; dropped variants are counted per dataset and listed. Speakers
and status are required unless named in --optional. An optional dataset whose
file does not exist is left out of the join entirely. When the file exists, a
variant it lacks gets a speaker count of 0 or no status.`,
		Example: `  langgarden join
  langgarden join --optional speakers,status
  langgarden join --out build/data.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range optional {
				if name != optionalSpeakers && name != optionalStatus {
					return errors.NewValidationError("optional", name,
						fmt.Sprintf("must be %q or %q", optionalSpeakers, optionalStatus))
				}
			}

			dir := app.Settings().DataDir
			started := time.Now()

			sources, voices, err := load(p, dir, optional)
			if err != nil {
				return err
			}

			engine := join.New(join.WithLogger(app.Logger()))
			data, res := engine.Join(voices, sources...)

			out := cmdutil.Path(p.out, dir, constants.DataFile)
			if err := dataset.Save(out, data); err != nil {
				return err
			}

			run, failures := runstore.FromJoin(res, started, time.Now())
			cmdutil.Record(cmd.Context(), app, run, failures)

			report := Report{
				Output:  out,
				Summary: res.Summary(),
				Stats:   res.Stats,
				Missing: res.Missing,
				Dropped: make([]string, 0, len(res.Dropped)),
			}
			for _, key := range res.Dropped {
				report.Dropped = append(report.Dropped, key.String())
			}

			app.Logger().Info().Str("output", out).Msg(report.Summary)
			return cmdutil.Print(cmd, app, report, output.JoinTable(res))
		},
	}

	cmd.Flags().StringVar(&p.voices, "voices", "", "Voices dataset (default <data-dir>/voices.json)")
	cmd.Flags().StringVar(&p.coordinates, "coordinates", "", "Coordinates dataset (default <data-dir>/coordinates.json)")
	cmd.Flags().StringVar(&p.names, "names", "", "Names dataset (default <data-dir>/names.json)")
	cmd.Flags().StringVar(&p.speakers, "speakers", "", "Speakers dataset (default <data-dir>/speakers.json)")
	cmd.Flags().StringVar(&p.status, "status", "", "UNESCO status dataset (default <data-dir>/unesco_status.json)")
	cmd.Flags().StringVar(&p.out, "out", "", "Output file, .json or .yaml (default <data-dir>/data.json)")
	cmd.Flags().StringSliceVar(&optional, "optional", nil, "Datasets that may lack a variant: speakers, status")

	return cmd
}

// load reads every input dataset. An optional dataset whose file is absent
// takes no part in the join, so its fields are left out of every record.
func load(p paths, dir string, optional []string) ([]join.Source, *dataset.Dataset[[]string], error) {
	voices, err := dataset.LoadJSON[[]string](cmdutil.Path(p.voices, dir, constants.VoicesFile))
	if err != nil {
		return nil, nil, err
	}
	coords, err := dataset.LoadJSON[languages.CoordinateEntry](cmdutil.Path(p.coordinates, dir, constants.CoordinatesFile))
	if err != nil {
		return nil, nil, err
	}
	names, err := dataset.LoadJSON[languages.NameEntry](cmdutil.Path(p.names, dir, constants.NamesFile))
	if err != nil {
		return nil, nil, err
	}
	sources := []join.Source{join.Coordinates(coords), join.Names(names)}

	speakersOptional := slices.Contains(optional, optionalSpeakers)
	speakers, err := loadMaybe[languages.SpeakerCount](cmdutil.Path(p.speakers, dir, constants.SpeakersFile), speakersOptional)
	if err != nil {
		return nil, nil, err
	}
	if speakers != nil {
		src := join.Speakers(speakers)
		if speakersOptional {
			src = src.Optional()
		}
		sources = append(sources, src)
	}

	statusOptional := slices.Contains(optional, optionalStatus)
	status, err := loadMaybe[languages.EndangermentCode](cmdutil.Path(p.status, dir, constants.StatusFile), statusOptional)
	if err != nil {
		return nil, nil, err
	}
	if status != nil {
		src := join.Status(status)
		if statusOptional {
			src = src.Optional()
		}
		sources = append(sources, src)
	}

	return sources, voices, nil
}

// loadMaybe returns nil, nil for a missing optional file.
func loadMaybe[T any](path string, optional bool) (*dataset.Dataset[T], error) {
	if !optional {
		return dataset.LoadJSON[T](path)
	}
	return dataset.LoadOptional[T](path)
}
