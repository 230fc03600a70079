// Package cmdutil provides flags and helpers shared by langgarden commands.
package cmdutil

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/internal/cmd/output"
	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/pipeline"
)

// SelectionFlags narrow a batch to some languages or a number of entries.
type SelectionFlags struct {
	Only  []string
	Limit int
}

// AddSelectionFlags adds --only and --limit to a batch command.
func AddSelectionFlags(cmd *cobra.Command) *SelectionFlags {
	flags := &SelectionFlags{}
	cmd.Flags().StringSliceVar(&flags.Only, "only", nil,
		"Process only these language codes (e.g. --only cy,ga)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Process at most this many entries")
	return flags
}

// Apply filters entries by language and then truncates them to the limit.
func (f *SelectionFlags) Apply(entries []pipeline.Entry) []pipeline.Entry {
	if len(f.Only) > 0 {
		kept := entries[:0:0]
		for _, e := range entries {
			if slices.Contains(f.Only, e.Key.Language) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if f.Limit > 0 && len(entries) > f.Limit {
		entries = entries[:f.Limit]
	}
	return entries
}

// Print writes a command result to stdout in the configured format.
func Print(cmd *cobra.Command, app application.Application, structured any, table *output.Data) error {
	format := output.DetectFormat(app.OutputFormat())
	return output.Print(cmd.OutOrStdout(), format, structured, table)
}

// Record stores a run in the history database when recording is enabled.
// Failing to record is logged and does not fail the command.
func Record(ctx context.Context, app application.Application, run runstore.Run, failures []runstore.Failure) {
	store, err := app.RunStore()
	if err != nil {
		app.Logger().Warn().Err(err).Msg("Run history unavailable")
		return
	}
	if store == nil {
		return
	}
	// The batch context may already be canceled after an interrupt.
	if _, err := store.Record(context.WithoutCancel(ctx), run, failures); err != nil {
		app.Logger().Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record run")
	}
}

// Path returns override when set, otherwise name inside dir.
func Path(override, dir, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(dir, name)
}
