package rename_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/cmd/langgarden/cmd/rename"
	"github.com/agentstation/langgarden/internal/cmd/application"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
}

func run(t *testing.T, app *application.Mock, args ...string) rename.Result {
	t.Helper()
	var out bytes.Buffer
	cmd := rename.NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var res rename.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	return res
}

func TestRenameStandard(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "cy.png"))
	touch(t, filepath.Join(dir, "ga_standard.png"))
	app := &application.Mock{Format: "json", Config: application.Settings{ImagesDir: dir}}

	res := run(t, app, "standard", "--dry-run")
	assert.True(t, res.Report.DryRun)
	require.Len(t, res.Report.Renamed, 1)
	assert.FileExists(t, filepath.Join(dir, "cy.png"))

	res = run(t, app, "standard")
	assert.Equal(t, "Renamed 1 files, skipped 1, 0 errors", res.Summary)
	assert.FileExists(t, filepath.Join(dir, "cy_standard.png"))
	assert.NoFileExists(t, filepath.Join(dir, "cy.png"))
}

func TestRenameFixDouble(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "br_standard_standard.png"))
	app := &application.Mock{Format: "json", Config: application.Settings{ImagesDir: dir}}

	run(t, app, "fix-double")
	assert.FileExists(t, filepath.Join(dir, "br_standard.png"))
}

func TestRenameRollback(t *testing.T) {
	dataDir := t.TempDir()
	imgDir := filepath.Join(dataDir, "pics")
	touch(t, filepath.Join(imgDir, "cym_standard.png"))
	data := `{"cy":{"standard":{"coordinates":{"lat":1,"long":2},"official_name":"","name":"Welsh","iso_639_3":"cym","voice_ids":[]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "data.json"), []byte(data), 0o644))

	app := &application.Mock{Format: "json", Config: application.Settings{DataDir: dataDir}}
	res := run(t, app, "rollback", "--dir", imgDir)
	require.Len(t, res.Report.Renamed, 1)
	assert.FileExists(t, filepath.Join(imgDir, "cy_standard.png"))
}

func TestRenameOrganize(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	touch(t, filepath.Join(src, "cy_standard", "b.jpg"))
	touch(t, filepath.Join(src, "cy_standard", "a.png"))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0o755))

	app := &application.Mock{Format: "json"}
	res := run(t, app, "organize", src, "--dst", dst)
	require.Len(t, res.Report.Renamed, 1)
	assert.Equal(t, filepath.Join(src, "cy_standard", "a.png"), res.Report.Renamed[0].From)
	require.Len(t, res.Report.Skipped, 1)
	assert.Equal(t, "no images", res.Report.Skipped[0].Reason)
	assert.FileExists(t, filepath.Join(dst, "cy_standard.png"))
}
