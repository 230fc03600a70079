// Package strip implements the strip command, which removes a key from every
// object of a JSON document.
package strip

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/transform"
)

// NewCommand creates the strip command.
func NewCommand(app application.Application) *cobra.Command {
	var key, out string

	cmd := &cobra.Command{
		Use:     "strip <file>",
		GroupID: "utilities",
		Short:   "Remove a key from every object of a JSON file",
		Long: `Strip removes every occurrence of a key, at any depth, from a JSON document
and keeps the remaining keys in their original order. The result is written
to --out, or to stdout when --out is not set.`,
		Example: `  langgarden strip data/data.json
  langgarden strip data/data.json --key voice_ids --out data/slim.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
			if err != nil {
				return errors.WrapIO("read", path, err)
			}

			stripped, removed, err := transform.StripKeys(data, key)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, stripped, "", "  "); err != nil {
				return errors.WrapParse("json", path, err)
			}
			buf.WriteByte('\n')

			app.Logger().Info().
				Str("key", key).
				Int("removed", removed).
				Str("file", path).
				Msg("Stripped key")

			if out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), constants.FilePermissions); err != nil {
				return errors.WrapIO("write", out, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "status", "Key to remove")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}
