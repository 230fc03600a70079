package scrape_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/cmd/langgarden/cmd/scrape"
	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/sources"
)

type pages map[string]string

func (p pages) Resolve(_ context.Context, display, _ string) (string, error) {
	if text, ok := p[display]; ok {
		return text, nil
	}
	return "", &errors.NotFoundError{Resource: "page", ID: display}
}

func TestScrapeCommand(t *testing.T) {
	dir := t.TempDir()
	names := `{
  "cy": {"standard": {"name": "Welsh"}},
  "br": {"standard": {"name": "Breton"}},
  "ga": {"standard": {"name": "Irish"}}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.json"), []byte(names), 0o644))

	app := &application.Mock{
		Format: "json",
		Config: application.Settings{DataDir: dir},
		ResolverFunc: func() sources.PageResolver {
			return pages{
				"Welsh": "Native speakers 880,000 (2011). Welsh is classified as Vulnerable by the UNESCO Atlas.",
				"Irish": "Native speakers 170,000 in 2016.",
			}
		},
	}

	var out bytes.Buffer
	cmd := scrape.NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var report scrape.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []string{"br.standard (Breton)"}, report.Skipped)
	assert.Equal(t, []string{"br.standard (Breton)"}, report.MissingSpeakers)
	assert.Equal(t, []string{"ga.standard (Irish)", "br.standard (Breton)"}, report.MissingStatus)
	assert.False(t, report.Interrupted)

	speakers, err := os.ReadFile(filepath.Join(dir, "speakers.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cy":{"standard":880000},"ga":{"standard":170000}}`, string(speakers))

	status, err := os.ReadFile(filepath.Join(dir, "unesco_status.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cy":{"standard":"VU"}}`, string(status))
}

func TestScrapeCommandSelection(t *testing.T) {
	dir := t.TempDir()
	names := `{"cy": {"standard": {"name": "Welsh"}}, "ga": {"standard": {"name": "Irish"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.json"), []byte(names), 0o644))

	var asked []string
	app := &application.Mock{
		Format: "json",
		Config: application.Settings{DataDir: dir},
		ResolverFunc: func() sources.PageResolver {
			return resolverFunc(func(display string) (string, error) {
				asked = append(asked, display)
				return "Native speakers 170,000.", nil
			})
		},
	}

	cmd := scrape.NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--only", "ga"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, []string{"Irish"}, asked)
}

func TestScrapeCommandMissingNames(t *testing.T) {
	app := &application.Mock{Config: application.Settings{DataDir: t.TempDir()}}
	cmd := scrape.NewCommand(app)
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

type resolverFunc func(display string) (string, error)

func (f resolverFunc) Resolve(_ context.Context, display, _ string) (string, error) {
	return f(display)
}
