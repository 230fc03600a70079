// Package runs implements the runs command, which shows the recorded batch
// history.
package runs

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/cmdutil"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/errors"
)

// Detail is the structured output of a single run.
type Detail struct {
	Run      *runstore.Run      `json:"run" yaml:"run"`
	Failures []runstore.Failure `json:"failures" yaml:"failures"`
}

// NewCommand creates the runs command.
func NewCommand(app application.Application) *cobra.Command {
	var command string
	var limit int

	cmd := &cobra.Command{
		Use:     "runs [id]",
		GroupID: "utilities",
		Short:   "Show recorded runs and their failures",
		Long: `Runs lists the batches recorded in the run history database, newest first.
With a run ID it shows that run and every entry it skipped.`,
		Example: `  langgarden runs
  langgarden runs --command scrape --limit 5
  langgarden runs 2f1c8e0a-... --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(app)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				failures, err := store.Failures(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				return cmdutil.Print(cmd, app, Detail{Run: run, Failures: failures}, output.RunFailuresTable(failures))
			}

			list, err := store.Runs(cmd.Context(), command, limit)
			if err != nil {
				return err
			}
			return cmdutil.Print(cmd, app, list, output.RunsTable(list))
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "Only list runs of this command")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum runs to list (0 for all)")
	cmd.AddCommand(newPruneCommand(app))
	return cmd
}

func newPruneCommand(app application.Application) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:     "prune",
		Short:   "Delete runs older than a duration",
		Example: `  langgarden runs prune --older-than 720h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return errors.NewValidationError("older-than", olderThan, "must be positive")
			}
			store, err := openStore(app)
			if err != nil {
				return err
			}
			n, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			app.Logger().Info().Int64("deleted", n).Dur("older_than", olderThan).Msg("Pruned runs")
			return cmdutil.Print(cmd, app, map[string]int64{"deleted": n}, nil)
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Delete runs that started longer ago than this")
	return cmd
}

func openStore(app application.Application) (*runstore.Store, error) {
	store, err := app.RunStore()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.NewConfigError("report_db", "run history is disabled", nil)
	}
	return store, nil
}
