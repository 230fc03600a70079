package rename_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/languages"
	"github.com/agentstation/langgarden/pkg/rename"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	}
}

func list(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRollback(t *testing.T) {
	data := dataset.New[languages.Record]()
	data.Set("cy", "standard", languages.Record{Name: "Welsh", ISO6393: "cym"})
	data.Set("en", "new zealand", languages.Record{Name: "English", ISO6393: "eng"})
	data.Set("ga", "standard", languages.Record{Name: "Irish"})
	data.Set("gd", "standard", languages.Record{Name: "Scottish Gaelic", ISO6393: "gla"})

	mapping := rename.RollbackMap(data)
	assert.Equal(t, map[string]string{
		"cym_standard":    "cy_standard",
		"eng_new_zealand": "en_new_zealand",
		"gla_standard":    "gd_standard",
	}, mapping)

	t.Run("dry run", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "cym_standard.png")

		r, err := rename.Rollback(dir, mapping, rename.WithDryRun(true))
		require.NoError(t, err)
		assert.Len(t, r.Renamed, 1)
		assert.Equal(t, []string{"cym_standard.png"}, list(t, dir))
		assert.Equal(t, "Would rename 1 files, skipped 0, 0 errors", r.Summary())
	})

	t.Run("moves and skips existing", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "cym_standard.png", "eng_new_zealand.png", "gla_standard.png", "gd_standard.png", "fra_standard.png")

		r, err := rename.Rollback(dir, mapping)
		require.NoError(t, err)
		require.NoError(t, r.Err())

		assert.Len(t, r.Renamed, 2)
		require.Len(t, r.Skipped, 1)
		assert.Equal(t, filepath.Join(dir, "gla_standard.png"), r.Skipped[0].Path)
		assert.ElementsMatch(t,
			[]string{"cy_standard.png", "en_new_zealand.png", "gla_standard.png", "gd_standard.png", "fra_standard.png"},
			list(t, dir))

		content, err := os.ReadFile(filepath.Join(dir, "gd_standard.png"))
		require.NoError(t, err)
		assert.Equal(t, "gd_standard.png", string(content), "existing target untouched")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := rename.Rollback(filepath.Join(t.TempDir(), "nope"), mapping)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestStandardSuffix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "cy.png", "ga.jpg", "gd_standard.png", ".DS_Store", "notes.txt")

	r, err := rename.StandardSuffix(dir)
	require.NoError(t, err)
	assert.Len(t, r.Renamed, 2)
	assert.Len(t, r.Skipped, 1)
	assert.ElementsMatch(t,
		[]string{"cy_standard.png", "ga_standard.png", "gd_standard.png", ".DS_Store", "notes.txt"},
		list(t, dir))

	again, err := rename.StandardSuffix(dir)
	require.NoError(t, err)
	assert.Empty(t, again.Renamed, "second pass is a no-op")
}

func TestFixDoubleStandard(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "cy_standard_standard.png", "ga_standard.png", "br_standard_standard.png", "br_standard.png")

	r, err := rename.FixDoubleStandard(dir)
	require.NoError(t, err)
	assert.Equal(t, []rename.Move{{
		From: filepath.Join(dir, "cy_standard_standard.png"),
		To:   filepath.Join(dir, "cy_standard.png"),
	}}, r.Renamed)
	assert.Len(t, r.Skipped, 1)
	assert.ElementsMatch(t,
		[]string{"cy_standard.png", "ga_standard.png", "br_standard_standard.png", "br_standard.png"},
		list(t, dir))
}

func TestOrganize(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "images")
	touch(t, src,
		"cy_standard/b.jpg",
		"cy_standard/a.png",
		"ga_standard/photo.webp",
		"empty/readme.txt",
		".hidden/x.png",
		"loose.png",
	)

	r, err := rename.Organize(src, dst)
	require.NoError(t, err)
	assert.Len(t, r.Renamed, 2)
	require.Len(t, r.Skipped, 1)
	assert.Equal(t, filepath.Join(src, "empty"), r.Skipped[0].Path)

	assert.ElementsMatch(t, []string{"cy_standard.png", "ga_standard.png"}, list(t, dst))
	content, err := os.ReadFile(filepath.Join(dst, "cy_standard.png"))
	require.NoError(t, err)
	assert.Equal(t, "cy_standard/a.png", string(content), "first image by name wins")

	t.Run("dry run creates nothing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "dry")
		r, err := rename.Organize(src, out, rename.WithDryRun(true))
		require.NoError(t, err)
		assert.Len(t, r.Renamed, 2)
		_, err = os.Stat(out)
		assert.True(t, os.IsNotExist(err))
	})
}
