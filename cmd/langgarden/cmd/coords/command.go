// Package coords implements the coords command, which seeds the coordinates
// dataset with placeholders for every voiced variant.
package coords

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/transform"
)

// Report is the structured output of the coords command.
type Report struct {
	Output   string `json:"output" yaml:"output"`
	Added    int    `json:"added" yaml:"added"`
	Variants int    `json:"variants" yaml:"variants"`
}

// NewCommand creates the coords command.
func NewCommand(app application.Application) *cobra.Command {
	var voicesPath, out string
	var force bool

	cmd := &cobra.Command{
		Use:     "coords",
		GroupID: "pipeline",
		Short:   "Add placeholder coordinates for voiced variants",
		Long: `Coords writes a "TODO" coordinate pair for every variant of the voices
dataset that the coordinates dataset does not cover yet. Existing coordinates
are kept unless --force rebuilds the file from scratch.`,
		Example: `  langgarden coords
  langgarden coords --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := app.Settings().DataDir
			voices, err := dataset.LoadJSON[[]string](cmdutil.Path(voicesPath, dir, constants.VoicesFile))
			if err != nil {
				return err
			}

			path := cmdutil.Path(out, dir, constants.CoordinatesFile)
			var coords *dataset.Dataset[languages.CoordinateEntry]
			if !force {
				if coords, err = dataset.LoadOptional[languages.CoordinateEntry](path); err != nil {
					return err
				}
			}

			report := Report{Output: path}
			if coords == nil {
				coords = transform.Placeholders(voices)
				report.Added = coords.VariantCount()
			} else {
				report.Added = transform.FillPlaceholders(coords, voices)
			}
			report.Variants = coords.VariantCount()

			if err := dataset.Save(path, coords); err != nil {
				return err
			}
			app.Logger().Info().
				Int("added", report.Added).
				Int("variants", report.Variants).
				Str("output", path).
				Msg("Saved coordinates")

			return cmdutil.Print(cmd, app, report, nil)
		},
	}

	cmd.Flags().StringVar(&voicesPath, "voices", "", "Voices dataset (default <data-dir>/voices.json)")
	cmd.Flags().StringVar(&out, "out", "", "Coordinates dataset (default <data-dir>/coordinates.json)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing coordinates with placeholders")
	return cmd
}
