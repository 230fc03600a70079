// Package flatten implements the flatten command, which derives the flat
// language listing and the sorted name list from data.json.
package flatten

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/transform"
)

// Report is the structured output of the flatten command.
type Report struct {
	Entries     int    `json:"entries" yaml:"entries"`
	Names       int    `json:"names" yaml:"names"`
	Output      string `json:"output" yaml:"output"`
	NamesOutput string `json:"names_output" yaml:"names_output"`
}

// NewCommand creates the flatten command.
func NewCommand(app application.Application) *cobra.Command {
	var dataPath, out, namesOut string

	cmd := &cobra.Command{
		Use:     "flatten",
		GroupID: "utilities",
		Short:   "Write the flat language listing and unique names from data.json",
		Long: `Flatten turns the joined dataset into a flat list sorted by voice count and
then by name, with validated coordinates. It also writes the sorted list of
unique language names used by the describe command.`,
		Example: `  langgarden flatten
  langgarden flatten --data build/data.json --out build/languages.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := app.Settings().DataDir
			data, err := dataset.LoadJSON[languages.Record](cmdutil.Path(dataPath, dir, constants.DataFile))
			if err != nil {
				return err
			}

			entries := transform.Flatten(data, time.Now())
			names := transform.UniqueNames(entries)

			report := Report{
				Entries:     len(entries),
				Names:       len(names),
				Output:      cmdutil.Path(out, dir, constants.FlattenedFile),
				NamesOutput: cmdutil.Path(namesOut, dir, constants.LanguageNames),
			}
			if err := dataset.SaveJSON(report.Output, entries); err != nil {
				return err
			}
			if err := dataset.SaveJSON(report.NamesOutput, names); err != nil {
				return err
			}

			app.Logger().Info().
				Int("entries", report.Entries).
				Int("names", report.Names).
				Msg("Flattened dataset")
			return cmdutil.Print(cmd, app, report, nil)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Joined dataset (default <data-dir>/data.json)")
	cmd.Flags().StringVar(&out, "out", "", "Flat listing (default <data-dir>/extracted_languages.json)")
	cmd.Flags().StringVar(&namesOut, "names-out", "", "Unique names (default <data-dir>/language_names.json)")
	return cmd
}
