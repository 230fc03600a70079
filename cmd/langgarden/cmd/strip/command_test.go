package strip_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/cmd/langgarden/cmd/strip"
	"github.com/agentstation/langgarden/internal/cmd/application"
	"github.com/agentstation/langgarden/pkg/errors"
)

func TestStripCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"b":{"status":"VU","name":"Welsh"},"a":[{"status":1}]}`), 0o644))

	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		cmd := strip.NewCommand(&application.Mock{})
		cmd.SetOut(&out)
		cmd.SetArgs([]string{in})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		assert.Equal(t, "{\n  \"b\": {\n    \"name\": \"Welsh\"\n  },\n  \"a\": [\n    {}\n  ]\n}\n", out.String())
	})

	t.Run("file with custom key", func(t *testing.T) {
		target := filepath.Join(dir, "slim.json")
		cmd := strip.NewCommand(&application.Mock{})
		cmd.SetArgs([]string{in, "--key", "name", "--out", target})
		require.NoError(t, cmd.ExecuteContext(context.Background()))

		raw, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.JSONEq(t, `{"b":{"status":"VU"},"a":[{"status":1}]}`, string(raw))
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := strip.NewCommand(&application.Mock{})
		cmd.SetArgs([]string{filepath.Join(dir, "nope.json")})
		var ioErr *errors.IOError
		assert.ErrorAs(t, cmd.ExecuteContext(context.Background()), &ioErr)
	})

	t.Run("requires a file", func(t *testing.T) {
		cmd := strip.NewCommand(&application.Mock{})
		cmd.SetArgs([]string{})
		assert.Error(t, cmd.ExecuteContext(context.Background()))
	})
}
