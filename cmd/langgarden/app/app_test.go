package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/internal/runstore"
	"github.com/agentstation/langgarden/internal/testhelper"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/logging"
)

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	app, err := New("1.2.3", "abc123", "2026-01-01", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// execute runs args against a fresh root command and returns stdout.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAppAccessors(t *testing.T) {
	app := newTestApp(t, &Config{DataDir: "d", ReportDB: "none", Format: "json"})

	assert.Equal(t, "1.2.3", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.Equal(t, "json", app.OutputFormat())

	settings := app.Settings()
	assert.Equal(t, "d", settings.DataDir)
	assert.Equal(t, filepath.Join("d", "images"), settings.ImagesDir)
	assert.Empty(t, settings.ReportDB)

	store, err := app.RunStore()
	require.NoError(t, err)
	assert.Nil(t, store)

	assert.NotNil(t, app.Resolver())
	assert.NotNil(t, app.Describer())
}

func TestAppMissingCredentials(t *testing.T) {
	app := newTestApp(t, &Config{DataDir: t.TempDir(), ReportDB: "none"})

	_, err := app.VoiceCatalog()
	assert.True(t, errors.IsAPIKeyError(err))

	_, err = app.ImageSearcher()
	assert.True(t, errors.IsAPIKeyError(err))

	_, err = execute(t, app, "voices")
	assert.True(t, errors.IsFatal(err))
}

func TestExecuteJoinRecordsRun(t *testing.T) {
	dir := t.TempDir()
	testhelper.WriteFiles(t, dir, map[string]string{
		"voices.json":        `{"cy":{"standard":["v1","v2"]},"kw":{"standard":["v3"]}}`,
		"coordinates.json":   `{"cy":{"standard":{"coordinates":{"lat":52.1,"long":-3.6}}},"kw":{"standard":{"coordinates":{"lat":"TODO","long":"TODO"}}}}`,
		"names.json":         `{"cy":{"standard":{"name":"Welsh","official_name":"Welsh language"}},"kw":{"standard":{"name":"Cornish"}}}`,
		"speakers.json":      `{"cy":{"standard":880000}}`,
		"unesco_status.json": `{"cy":{"standard":"VU"},"kw":{"standard":"CR"}}`,
	})

	app := newTestApp(t, &Config{DataDir: "unused"})

	out, err := execute(t, app, "join", "--data-dir", dir, "-o", "json")
	require.NoError(t, err)

	var report struct {
		Stats struct {
			Variants        int `json:"variants"`
			DroppedVariants int `json:"dropped_variants"`
		} `json:"stats"`
		Missing map[string]int `json:"missing"`
		Dropped []string       `json:"dropped"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Stats.Variants)
	assert.Equal(t, 1, report.Stats.DroppedVariants)
	assert.Equal(t, 1, report.Missing["speakers"])
	assert.Equal(t, []string{"kw.standard"}, report.Dropped)
	assert.FileExists(t, filepath.Join(dir, "data.json"))

	out, err = execute(t, app, "runs", "--data-dir", dir, "-o", "json")
	require.NoError(t, err)

	var runs []runstore.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, runstore.CommandJoin, runs[0].Command)
	assert.Equal(t, 1, runs[0].Failed)
}

func TestExecuteOptionalSpeakers(t *testing.T) {
	dir := t.TempDir()
	testhelper.WriteFiles(t, dir, map[string]string{
		"voices.json":        `{"kw":{"standard":["v3"]}}`,
		"coordinates.json":   `{"kw":{"standard":{"coordinates":{"lat":50.3,"long":-5.1}}}}`,
		"names.json":         `{"kw":{"standard":{"name":"Cornish"}}}`,
		"speakers.json":      `{"cy":{"standard":880000}}`,
		"unesco_status.json": `{"kw":{"standard":"CR"}}`,
	})

	app := newTestApp(t, &Config{DataDir: dir, ReportDB: "none"})

	_, err := execute(t, app, "join", "--optional", "speakers", "-o", "json")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"speakers": 0`)

	_, err = execute(t, app, "join", "--optional", "voices")
	assert.True(t, errors.IsValidationError(err))
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	app := newTestApp(t, &Config{DataDir: t.TempDir(), ReportDB: "none"})
	_, err := execute(t, app, "version", "-o", "xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestVersionCommand(t *testing.T) {
	app := newTestApp(t, &Config{ReportDB: "none"})

	out, err := execute(t, app, "version")
	require.NoError(t, err)
	assert.Equal(t, "langgarden 1.2.3\n", out)

	out, err = execute(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:   abc123")
	assert.Contains(t, out, "built by: test")
}

func TestExecuteConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	testhelper.WriteFiles(t, dir, map[string]string{"custom.yaml": "data_dir: " + dir + "\nreport_db: none\n"})

	app := newTestApp(t, &Config{DataDir: "elsewhere"})
	_, err := execute(t, app, "version", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, dir, app.Config().DataDir)
	assert.Empty(t, app.Config().ReportPath())
}
