package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/pkg/join"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/pipeline"
	"github.com/agentstation/langgarden/pkg/rename"
)

type sample struct {
	Name     string `json:"name"`
	VoiceIDs int    `json:"voice_ids,omitempty"`
	hidden   string
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"", "", false},
		{"wide", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("Yaml"))
}

func TestFormatters(t *testing.T) {
	items := []sample{{Name: "Tok <Pisin>", VoiceIDs: 2, hidden: "x"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, items))
		assert.Equal(t, "[\n  {\n    \"name\": \"Tok <Pisin>\",\n    \"voice_ids\": 2\n  }\n]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, map[string]int{"speakers": 5}))
		assert.Equal(t, "speakers: 5\n", buf.String())
	})

	t.Run("table from structs", func(t *testing.T) {
		data := toTableData(items)
		require.NotNil(t, data)
		assert.Equal(t, []string{"Name", "Voice Ids"}, data.Headers)
		assert.Equal(t, [][]string{{"Tok <Pisin>", "2"}}, data.Rows)

		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, items))
		assert.Contains(t, buf.String(), "Tok <Pisin>")
	})

	t.Run("table from single struct", func(t *testing.T) {
		data := toTableData(&items[0])
		require.NotNil(t, data)
		assert.Equal(t, []string{"Property", "Value"}, data.Headers)
		assert.Len(t, data.Rows, 2)
	})

	t.Run("table falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, []string{"a"}))
		assert.Equal(t, "[\n  \"a\"\n]\n", buf.String())
	})
}

func TestPrint(t *testing.T) {
	table := &Data{Headers: []string{"Source", "Missing"}, Rows: [][]string{{"coordinates", "3"}}}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatTable, map[string]int{"coordinates": 3}, table))
	assert.Contains(t, buf.String(), "coordinates")
	assert.Contains(t, buf.String(), "3")

	buf.Reset()
	require.NoError(t, Print(&buf, FormatJSON, map[string]int{"coordinates": 3}, table))
	assert.JSONEq(t, `{"coordinates":3}`, buf.String())
}

func TestTables(t *testing.T) {
	failures := FailuresTable([]pipeline.Failure{{
		Key: languages.NewVariantKey("ga", "standard"), Name: "Irish", Reason: "timeout",
	}})
	assert.Equal(t, [][]string{{"ga.standard", "Irish", "timeout"}}, failures.Rows)

	joined := JoinTable(&join.Result{
		Sources: []string{"coordinates", "names"},
		Missing: map[string]int{"coordinates": 2},
	})
	assert.Equal(t, [][]string{{"coordinates", "2"}, {"names", "0"}}, joined.Rows)

	runs := RunsTable([]runstore.Run{{ID: "r1", Command: "scrape", StartedAt: time.Now(), Processed: 4, Failed: 1}})
	require.Len(t, runs.Rows, 1)
	assert.Equal(t, "4", runs.Rows[0][3])

	renamed := RenameTable(&rename.Report{
		DryRun:  true,
		Renamed: []rename.Move{{From: "a.png", To: "b.png"}},
		Skipped: []rename.Skip{{Path: "c.png", Reason: "exists"}},
	})
	assert.Equal(t, [][]string{{"would rename", "a.png", "b.png"}, {"skipped", "c.png", "exists"}}, renamed.Rows)
}
