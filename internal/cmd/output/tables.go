package output

import (
	"strconv"

	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/join"
	"github.com/agentstation/langgarden/pkg/pipeline"
	"github.com/agentstation/langgarden/pkg/rename"
)

// FailuresTable lists skipped entries with their reasons.
func FailuresTable(failures []pipeline.Failure) *Data {
	data := &Data{Headers: []string{"Key", "Name", "Reason"}}
	for _, f := range failures {
		data.Rows = append(data.Rows, []string{f.Key.String(), f.Name, f.Reason})
	}
	return data
}

// JoinTable lists, per source, how many driving keys it was missing.
func JoinTable(res *join.Result) *Data {
	data := &Data{
		Headers:         []string{"Source", "Missing"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	for _, name := range res.Sources {
		data.Rows = append(data.Rows, []string{name, strconv.Itoa(res.Missing[name])})
	}
	return data
}

// RunsTable lists recorded runs.
func RunsTable(runs []runstore.Run) *Data {
	data := &Data{
		Headers:         []string{"ID", "Command", "Started", "Processed", "Failed", "Summary"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft},
	}
	for _, r := range runs {
		data.Rows = append(data.Rows, []string{
			r.ID,
			r.Command,
			r.StartedAt.Local().Format(constants.TimeFormatISO8601),
			strconv.Itoa(r.Processed),
			strconv.Itoa(r.Failed),
			r.Summary,
		})
	}
	return data
}

// RunFailuresTable lists the failures stored for a run.
func RunFailuresTable(failures []runstore.Failure) *Data {
	data := &Data{Headers: []string{"Item", "Name", "Reason"}}
	for _, f := range failures {
		data.Rows = append(data.Rows, []string{f.Item, f.Name, f.Reason})
	}
	return data
}

// RenameTable lists the moves and skips of a rename report.
func RenameTable(r *rename.Report) *Data {
	data := &Data{Headers: []string{"Action", "From", "To"}}
	action := "renamed"
	if r.DryRun {
		action = "would rename"
	}
	for _, m := range r.Renamed {
		data.Rows = append(data.Rows, []string{action, m.From, m.To})
	}
	for _, s := range r.Skipped {
		data.Rows = append(data.Rows, []string{"skipped", s.Path, s.Reason})
	}
	return data
}
