package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/cmd/langgarden/cmd/coords"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/describe"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/flatten"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/images"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/join"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/rename"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/runs"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/scrape"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/strip"
	"github.com/agentstation/langgarden/cmd/langgarden/cmd/voices"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Pipeline commands
	rootCmd.AddCommand(voices.NewCommand(a))
	rootCmd.AddCommand(coords.NewCommand(a))
	rootCmd.AddCommand(scrape.NewCommand(a))
	rootCmd.AddCommand(join.NewCommand(a))
	rootCmd.AddCommand(images.NewCommand(a))
	rootCmd.AddCommand(describe.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(flatten.NewCommand(a))
	rootCmd.AddCommand(strip.NewCommand(a))
	rootCmd.AddCommand(rename.NewCommand(a))
	rootCmd.AddCommand(runs.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "utilities",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "langgarden %s\n", a.version)
			if mustGetBool(cmd, "verbose") {
				fmt.Fprintf(out, "  commit:   %s\n", a.commit)
				fmt.Fprintf(out, "  built:    %s\n", a.date)
				fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
			}
			return nil
		},
	}
}
