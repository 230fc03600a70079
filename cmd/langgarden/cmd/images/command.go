// Package images implements the images command, which downloads one picture
// per language variant.
package images

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/pipeline"
)

// Report is the structured output of an image batch.
type Report struct {
	RunID       string   `json:"run_id" yaml:"run_id"`
	Summary     string   `json:"summary" yaml:"summary"`
	Interrupted bool     `json:"interrupted" yaml:"interrupted"`
	Dir         string   `json:"dir" yaml:"dir"`
	Saved       []string `json:"saved" yaml:"saved"`
	Failed      []string `json:"failed" yaml:"failed"`
}

// NewCommand creates the images command.
func NewCommand(app application.Application) *cobra.Command {
	var namesPath, dir, queriesPath string
	var force bool
	var selection *cmdutil.SelectionFlags

	cmd := &cobra.Command{
		Use:     "images",
		GroupID: "pipeline",
		Short:   "Download one image per language variant",
		Long: `Images searches Google Custom Search for a picture of the speakers of each
variant in the names dataset and stores it as <images-dir>/<lang>_<variant>.png.

Existing images are kept unless --force is set. A query file maps file stems
such as "es_puerto_rican" to custom search queries. Requires GOOGLE_CSE_API_KEY
and GOOGLE_CSE_ID.`,
		Example: `  langgarden images --only cy
  langgarden images --queries queries.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := app.Settings()
			searcher, err := app.ImageSearcher()
			if err != nil {
				return err
			}

			names, err := dataset.LoadJSON[languages.NameEntry](cmdutil.Path(namesPath, settings.DataDir, constants.NamesFile))
			if err != nil {
				return err
			}

			var queries map[string]string
			if queriesPath != "" {
				if queries, err = pipeline.LoadQueries(queriesPath); err != nil {
					return err
				}
			}

			if dir == "" {
				dir = settings.ImagesDir
			}
			fetcher := &pipeline.ImageFetcher{
				Searcher: searcher,
				Dir:      dir,
				Queries:  queries,
				Force:    force,
				Pacing:   settings.ImagePacing,
				Logger:   app.Logger(),
			}
			res, err := fetcher.Run(cmd.Context(), selection.Apply(pipeline.EntriesFromNames(names)))
			if err != nil {
				return err
			}

			run, failures := runstore.FromImages(res)
			cmdutil.Record(cmd.Context(), app, run, failures)

			report := Report{
				RunID:       res.RunID,
				Summary:     res.Summary(),
				Interrupted: res.Interrupted,
				Dir:         dir,
				Saved:       append([]string{}, res.Saved...),
				Failed:      make([]string, 0, len(res.Failures)),
			}
			for _, f := range res.Failures {
				report.Failed = append(report.Failed, f.String())
			}

			app.Logger().Info().Str("run_id", res.RunID).Msg(report.Summary)
			return cmdutil.Print(cmd, app, report, output.FailuresTable(res.Failures))
		},
	}

	cmd.Flags().StringVar(&namesPath, "names", "", "Names dataset (default <data-dir>/names.json)")
	cmd.Flags().StringVar(&dir, "dir", "", "Image directory (default <images-dir>)")
	cmd.Flags().StringVar(&queriesPath, "queries", "", "YAML or JSON file of search queries keyed by file stem")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Download images that already exist")
	selection = cmdutil.AddSelectionFlags(cmd)

	return cmd
}
