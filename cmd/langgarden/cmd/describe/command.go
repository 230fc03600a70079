// Package describe implements the describe command, which collects short
// Wikipedia descriptions for language names.
package describe

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/pipeline"
)

// Report is the structured output of a description batch.
type Report struct {
	RunID       string   `json:"run_id" yaml:"run_id"`
	Summary     string   `json:"summary" yaml:"summary"`
	Output      string   `json:"output" yaml:"output"`
	Fetched     int      `json:"fetched" yaml:"fetched"`
	Resumed     int      `json:"resumed" yaml:"resumed"`
	Failures    []string `json:"failures" yaml:"failures"`
	Interrupted bool     `json:"interrupted" yaml:"interrupted"`
}

// NewCommand creates the describe command.
func NewCommand(app application.Application) *cobra.Command {
	var namesPath, out string
	var limit int

	cmd := &cobra.Command{
		Use:     "describe",
		GroupID: "pipeline",
		Short:   "Collect short Wikipedia descriptions for language names",
		Long: `Describe reads the sorted list of language names and fetches a short
description for each one from the Wikipedia summary API, falling back to the
article text. Names already present in the output are skipped, so an
interrupted run resumes where it stopped. Progress is saved every 10 names.`,
		Example: `  langgarden describe
  langgarden describe --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := app.Settings()
			var names []string
			if err := dataset.LoadFile(cmdutil.Path(namesPath, settings.DataDir, constants.LanguageNames), &names); err != nil {
				return err
			}
			if limit > 0 && len(names) > limit {
				names = names[:limit]
			}

			describer := &pipeline.Describer{
				Source:    app.Describer(),
				Path:      cmdutil.Path(out, settings.DataDir, constants.DescriptionsFile),
				Pacing:    settings.Pacing,
				SaveEvery: constants.DescribeSaveEvery,
				Logger:    app.Logger(),
			}
			res, err := describer.Run(cmd.Context(), names)
			if res != nil {
				run, failures := runstore.FromDescribe(res)
				cmdutil.Record(cmd.Context(), app, run, failures)
			}
			if err != nil {
				return err
			}

			report := Report{
				RunID:       res.RunID,
				Summary:     res.Summary(),
				Output:      describer.Path,
				Fetched:     res.Fetched,
				Resumed:     res.Resumed,
				Failures:    append([]string{}, res.Failures...),
				Interrupted: res.Interrupted,
			}
			app.Logger().Info().Str("run_id", res.RunID).Msg(report.Summary)
			return cmdutil.Print(cmd, app, report, nil)
		},
	}

	cmd.Flags().StringVar(&namesPath, "names", "", "JSON array of names (default <data-dir>/language_names.json)")
	cmd.Flags().StringVar(&out, "out", "", "Descriptions file (default <data-dir>/descriptions.json)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Describe at most this many names")
	return cmd
}
