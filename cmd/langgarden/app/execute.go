package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/pkg/errors"
)

// Execute runs the langgarden CLI with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "langgarden",
		Short:   "Language dataset pipeline",
		Version: a.version,
		Long: `Langgarden builds a per-language, per-variant dataset of voices, names,
coordinates, native-speaker counts and UNESCO endangerment status.

The pipeline commands collect the inputs and merge them into data.json. The
utility commands derive secondary files and tidy the image directory.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "pipeline",
		Title: "Pipeline Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "utilities",
		Title: "Utility Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.langgarden.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&a.config.DataDir, "data-dir", a.config.DataDir, "directory holding the datasets")
	flags.StringVar(&a.config.ImagesDir, "images-dir", a.config.ImagesDir, "directory holding the images (default <data-dir>/images)")
	flags.DurationVar(&a.config.Pacing, "pacing", a.config.Pacing, "delay between page requests")
	flags.DurationVar(&a.config.ImagePacing, "image-pacing", a.config.ImagePacing, "delay between image searches")
	flags.DurationVar(&a.config.HTTPTimeout, "http-timeout", a.config.HTTPTimeout, "timeout of each HTTP request")
	flags.StringVar(&a.config.ReportDB, "report-db", a.config.ReportDB, `run history database, "none" to disable (default <data-dir>/.langgarden-runs.db)`)

	rootCmd.SetVersionTemplate("langgarden {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		path := mustGetString(cmd, "config")
		if err := a.config.MergeFile(path, cmd.Flags().Changed); err != nil {
			return errors.NewConfigError("config", "cannot read "+path, err)
		}
	}

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return errors.WrapValidation("format", err)
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
