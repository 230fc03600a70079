// Package testhelper loads fixture pages and golden files from a test
// package's testdata directory and seeds dataset files for command tests.
package testhelper

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/dataset"
)

// Update rewrites golden files instead of comparing against them.
var Update = flag.Bool("update", false, "update golden files in testdata")

// Load reads testdata/<name>.
func Load(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name)) //nolint:gosec // fixture names are constants
	require.NoError(t, err, "load fixture %s", name)
	return data
}

// Fixtures lists the files in testdata matching pattern, by base name.
func Fixtures(t *testing.T, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("testdata", pattern))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no fixtures match %s", pattern)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names
}

// Golden compares actual with testdata/<name>. With -update it writes the
// file instead.
func Golden(t *testing.T, name string, actual []byte) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if *Update {
		require.NoError(t, os.WriteFile(path, actual, constants.FilePermissions))
		t.Logf("updated %s", path)
		return
	}
	assert.Equal(t, string(Load(t, name)), string(actual), "golden file %s", name)
}

// GoldenJSON encodes v the way datasets are written and compares it with
// testdata/<name>.
func GoldenJSON(t *testing.T, name string, v any) {
	t.Helper()
	data, err := dataset.EncodeJSON(v)
	require.NoError(t, err)
	Golden(t, name, data)
}

// WriteFiles creates each named file in dir with the given content.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), constants.DirPermissions))
		require.NoError(t, os.WriteFile(path, []byte(content), constants.FilePermissions))
	}
}
