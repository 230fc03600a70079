// Package rename implements the rename command group for the image files.
package rename

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/rename"
)

// Result is the structured output of every rename subcommand.
type Result struct {
	Summary string         `json:"summary" yaml:"summary"`
	Report  *rename.Report `json:"report" yaml:"report"`
}

// NewCommand creates the rename command with its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "rename",
		GroupID: "utilities",
		Short:   "Rename and organize image files",
		Long: `Rename fixes the names of the per-variant image files. Existing files are
never overwritten. Use --dry-run to see what would change.`,
	}
	cmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Report changes without making them")

	cmd.AddCommand(
		newRollbackCommand(app, &dryRun),
		newStandardCommand(app, &dryRun),
		newFixDoubleCommand(app, &dryRun),
		newOrganizeCommand(app, &dryRun),
	)
	return cmd
}

func newRollbackCommand(app application.Application, dryRun *bool) *cobra.Command {
	var dir, dataPath string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Rename ISO 639-3 image names back to the dataset language codes",
		Long: `Rollback maps "<iso639_3>_<variant>.png" to "<language>_<variant>.png" using
the iso_639_3 field of the joined dataset.`,
		Example: `  langgarden rename rollback --dry-run`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := dataset.LoadJSON[languages.Record](cmdutil.Path(dataPath, app.Settings().DataDir, constants.DataFile))
			if err != nil {
				return err
			}
			return run(cmd, app, func(opts ...rename.Option) (*rename.Report, error) {
				return rename.Rollback(imagesDir(app, dir), rename.RollbackMap(data), opts...)
			}, *dryRun)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Image directory (default <images-dir>)")
	cmd.Flags().StringVar(&dataPath, "data", "", "Joined dataset (default <data-dir>/data.json)")
	return cmd
}

func newStandardCommand(app application.Application, dryRun *bool) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "standard",
		Short:   "Add the _standard suffix to image names",
		Example: `  langgarden rename standard --dir data/images`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, func(opts ...rename.Option) (*rename.Report, error) {
				return rename.StandardSuffix(imagesDir(app, dir), opts...)
			}, *dryRun)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Image directory (default <images-dir>)")
	return cmd
}

func newFixDoubleCommand(app application.Application, dryRun *bool) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fix-double",
		Short: "Rename *_standard_standard images to *_standard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, func(opts ...rename.Option) (*rename.Report, error) {
				return rename.FixDoubleStandard(imagesDir(app, dir), opts...)
			}, *dryRun)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Image directory (default <images-dir>)")
	return cmd
}

func newOrganizeCommand(app application.Application, dryRun *bool) *cobra.Command {
	var dst string

	cmd := &cobra.Command{
		Use:   "organize <src>",
		Short: "Copy the first image of each subfolder to <subfolder>.png",
		Long: `Organize walks the visible subfolders of src and copies the first image of
each, by name, to "<dst>/<subfolder>.png".`,
		Example: `  langgarden rename organize downloads --dst data/images`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, func(opts ...rename.Option) (*rename.Report, error) {
				return rename.Organize(args[0], imagesDir(app, dst), opts...)
			}, *dryRun)
		},
	}
	cmd.Flags().StringVar(&dst, "dst", "", "Destination directory (default <images-dir>)")
	return cmd
}

func run(cmd *cobra.Command, app application.Application, op func(...rename.Option) (*rename.Report, error), dryRun bool) error {
	report, err := op(rename.WithDryRun(dryRun), rename.WithLogger(app.Logger()))
	if err != nil {
		return err
	}
	app.Logger().Info().Bool("dry_run", dryRun).Msg(report.Summary())
	if err := cmdutil.Print(cmd, app, Result{Summary: report.Summary(), Report: report}, output.RenameTable(report)); err != nil {
		return err
	}
	return report.Err()
}

func imagesDir(app application.Application, dir string) string {
	if dir != "" {
		return dir
	}
	return app.Settings().ImagesDir
}
