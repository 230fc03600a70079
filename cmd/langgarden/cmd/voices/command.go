// Package voices implements the voices command, which downloads the shared
// voice catalog and groups it into voices.json.
package voices

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/internal/sources/elevenlabs"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
)

// Report is the structured output of the voices command.
type Report struct {
	Output    string `json:"output" yaml:"output"`
	Voices    int    `json:"voices" yaml:"voices"`
	Languages int    `json:"languages" yaml:"languages"`
	Variants  int    `json:"variants" yaml:"variants"`
}

// NewCommand creates the voices command.
func NewCommand(app application.Application) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "voices",
		GroupID: "pipeline",
		Short:   "Download the shared voice catalog into voices.json",
		Long: `Voices pages through the ElevenLabs shared voice library and groups voice
IDs by language and accent. Voices without a language or accent are filed
under "any". Requires ELEVEN_API_KEY.`,
		Example: `  langgarden voices
  ELEVEN_API_KEY=... langgarden voices --out build/voices.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.VoiceCatalog()
			if err != nil {
				return err
			}

			list, err := catalog.SharedVoices(cmd.Context())
			if err != nil {
				return err
			}
			grouped := elevenlabs.GroupVoices(list)

			path := cmdutil.Path(out, app.Settings().DataDir, constants.VoicesFile)
			if err := dataset.Save(path, grouped); err != nil {
				return err
			}

			report := Report{
				Output:    path,
				Voices:    len(list),
				Languages: grouped.Len(),
				Variants:  grouped.VariantCount(),
			}
			app.Logger().Info().
				Int("voices", report.Voices).
				Int("languages", report.Languages).
				Int("variants", report.Variants).
				Str("output", path).
				Msg("Saved voices")

			return cmdutil.Print(cmd, app, report, variantsTable(grouped))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default <data-dir>/voices.json)")
	return cmd
}

func variantsTable(ds *dataset.Dataset[[]string]) *output.Data {
	data := &output.Data{
		Headers:         []string{"Language", "Variant", "Voices"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignRight},
	}
	ds.Each(func(key languages.VariantKey, ids []string) bool {
		data.Rows = append(data.Rows, []string{key.Language, key.Variant, strconv.Itoa(len(ids))})
		return true
	})
	return data
}
