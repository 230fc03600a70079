// Package scrape implements the scrape command, which extracts speaker
// counts and endangerment status for every named variant.
package scrape

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/extract"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/pipeline"
)

// Report is the structured output of a scrape.
type Report struct {
	RunID           string   `json:"run_id" yaml:"run_id"`
	Summary         string   `json:"summary" yaml:"summary"`
	Interrupted     bool     `json:"interrupted" yaml:"interrupted"`
	Skipped         []string `json:"skipped" yaml:"skipped"`
	MissingSpeakers []string `json:"missing_speakers" yaml:"missing_speakers"`
	MissingStatus   []string `json:"missing_status" yaml:"missing_status"`
	SpeakersFile    string   `json:"speakers_file" yaml:"speakers_file"`
	StatusFile      string   `json:"status_file" yaml:"status_file"`
}

// NewCommand creates the scrape command.
func NewCommand(app application.Application) *cobra.Command {
	var namesPath, speakersPath, statusPath string
	var selection *cmdutil.SelectionFlags

	cmd := &cobra.Command{
		Use:     "scrape",
		GroupID: "pipeline",
		Short:   "Extract speaker counts and UNESCO status from Wikipedia",
		Long: `Scrape resolves the Wikipedia article for every variant in the names
dataset and extracts the native-speaker count and UNESCO endangerment status.

Variants whose page cannot be fetched are skipped and listed at the end. Facts
that are not found are left out of the output datasets.`,
		Example: `  langgarden scrape
  langgarden scrape --only cy,ga --limit 5
  langgarden scrape --names data/names.json --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := app.Settings()
			names, err := dataset.LoadJSON[languages.NameEntry](cmdutil.Path(namesPath, settings.DataDir, constants.NamesFile))
			if err != nil {
				return err
			}

			driver := &pipeline.Driver{
				Resolver:  app.Resolver(),
				Extractor: extract.New(),
				Pacing:    settings.Pacing,
				Logger:    app.Logger(),
			}
			res := driver.Run(cmd.Context(), selection.Apply(pipeline.EntriesFromNames(names)))

			report := Report{
				RunID:           res.RunID,
				Summary:         res.Summary(),
				Interrupted:     res.Interrupted,
				Skipped:         res.Missing(),
				MissingSpeakers: res.MissingSpeakers(),
				MissingStatus:   res.MissingStatus(),
				SpeakersFile:    cmdutil.Path(speakersPath, settings.DataDir, constants.SpeakersFile),
				StatusFile:      cmdutil.Path(statusPath, settings.DataDir, constants.StatusFile),
			}
			if err := dataset.Save(report.SpeakersFile, res.Speakers()); err != nil {
				return err
			}
			if err := dataset.Save(report.StatusFile, res.Statuses()); err != nil {
				return err
			}

			run, failures := runstore.FromScrape(res)
			cmdutil.Record(cmd.Context(), app, run, failures)

			app.Logger().Info().
				Str("run_id", res.RunID).
				Int("missing_speakers", len(report.MissingSpeakers)).
				Int("missing_status", len(report.MissingStatus)).
				Msg(report.Summary)

			return cmdutil.Print(cmd, app, report, output.FailuresTable(res.Failures))
		},
	}

	cmd.Flags().StringVar(&namesPath, "names", "", "Names dataset (default <data-dir>/names.json)")
	cmd.Flags().StringVar(&speakersPath, "speakers-out", "", "Speaker counts output (default <data-dir>/speakers.json)")
	cmd.Flags().StringVar(&statusPath, "status-out", "", "UNESCO status output (default <data-dir>/unesco_status.json)")
	selection = cmdutil.AddSelectionFlags(cmd)

	return cmd
}
