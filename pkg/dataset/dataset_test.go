package dataset_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/pkg/dataset"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/languages"
)

func TestDatasetOrder(t *testing.T) {
	input := `{"zh":{"mandarin":["a"]},"en":{"british":["b"],"american":["c","d"]},"af":{"standard":[]}}`

	ds := dataset.New[[]string]()
	require.NoError(t, json.Unmarshal([]byte(input), ds))

	assert.Equal(t, []string{"zh", "en", "af"}, ds.Languages())
	assert.Equal(t, []string{"british", "american"}, ds.Variants("en"))
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 4, ds.VariantCount())

	out, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))

	keys := ds.Keys()
	require.Len(t, keys, 4)
	assert.Equal(t, languages.NewVariantKey("en", "american"), keys[2])
}

func TestDatasetSetGetDelete(t *testing.T) {
	ds := dataset.New[int64]()
	ds.Set("en", "american", 1)
	ds.SetKey(languages.NewVariantKey("es", "mexican"), 2)
	ds.Set("en", "british", 3)
	ds.Set("en", "american", 4)

	v, ok := ds.Get("en", "american")
	require.True(t, ok)
	assert.Equal(t, int64(4), v)
	assert.Equal(t, []string{"american", "british"}, ds.Variants("en"), "overwrite keeps position")

	_, ok = ds.GetKey(languages.NewVariantKey("fr", "standard"))
	assert.False(t, ok)
	assert.True(t, ds.HasLanguage("es"))
	assert.False(t, ds.Has("es", "standard"))

	ds.Delete("es", "mexican")
	assert.False(t, ds.HasLanguage("es"), "empty languages are removed")
	assert.Equal(t, []string{"en"}, ds.Languages())
}

func TestDatasetEachStopsEarly(t *testing.T) {
	ds := dataset.New[string]()
	ds.Set("a", "1", "x")
	ds.Set("a", "2", "y")
	ds.Set("b", "1", "z")

	var seen []string
	ds.Each(func(k languages.VariantKey, v string) bool {
		seen = append(seen, k.String()+"="+v)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"a.1=x", "a.2=y"}, seen)
}

func TestNilDataset(t *testing.T) {
	var ds *dataset.Dataset[int]
	assert.Equal(t, 0, ds.Len())
	assert.Nil(t, ds.Languages())
	assert.False(t, ds.Has("en", "standard"))

	out, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDecode(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		ds, err := dataset.Decode[int64]([]byte("  \n"), "speakers.json")
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("speaker layouts", func(t *testing.T) {
		ds, err := dataset.Decode[languages.SpeakerCount](
			[]byte(`{"en":{"american":242000000,"british":{"speakers":5}}}`), "speakers.json")
		require.NoError(t, err)
		v, _ := ds.Get("en", "british")
		assert.Equal(t, languages.SpeakerCount(5), v)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := dataset.Decode[int64]([]byte(`[1,2]`), "bad.json")
		require.Error(t, err)
		var perr *errors.ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	ds := dataset.New[languages.EndangermentCode]()
	ds.Set("ga", "standard", languages.DefinitelyEndangered)
	ds.Set("cy", "standard", languages.Vulnerable)

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "unesco_status.json")
		require.NoError(t, dataset.Save(path, ds))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"ga\": {\n    \"standard\": \"DE\"\n  },\n  \"cy\": {\n    \"standard\": \"VU\"\n  }\n}\n", string(raw))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

		loaded, err := dataset.LoadJSON[languages.EndangermentCode](path)
		require.NoError(t, err)
		assert.Equal(t, []string{"ga", "cy"}, loaded.Languages())
	})

	t.Run("yaml keeps order", func(t *testing.T) {
		path := filepath.Join(dir, "status.yaml")
		require.NoError(t, dataset.Save(path, ds))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ga:\n  standard: DE\ncy:\n  standard: VU\n", string(raw))
	})

	t.Run("html is not escaped", func(t *testing.T) {
		out, err := dataset.EncodeJSON(map[string]string{"name": "Tok <Pisin> & co"})
		require.NoError(t, err)
		assert.Contains(t, string(out), "Tok <Pisin> & co")
	})

	t.Run("html is not escaped in dataset leaves", func(t *testing.T) {
		names := dataset.New[languages.NameEntry]()
		names.Set("tpi", "standard", languages.NameEntry{Name: "Tok Pisin & <Pidgin>"})
		path := filepath.Join(dir, "names.json")
		require.NoError(t, dataset.SaveJSON(path, names))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"name": "Tok Pisin & <Pidgin>"`)
		assert.NotContains(t, string(raw), `\u0026`)

		loaded, err := dataset.LoadJSON[languages.NameEntry](path)
		require.NoError(t, err)
		got, ok := loaded.Get("tpi", "standard")
		require.True(t, ok)
		assert.Equal(t, "Tok Pisin & <Pidgin>", got.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := dataset.LoadJSON[int64](filepath.Join(dir, "nope.json"))
		assert.True(t, errors.IsNotFound(err))

		ds, err := dataset.LoadOptional[int64](filepath.Join(dir, "nope.json"))
		assert.NoError(t, err)
		assert.Nil(t, ds)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "language_names.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Breton","Welsh"]`), 0o644))

	var names []string
	require.NoError(t, dataset.LoadFile(path, &names))
	assert.Equal(t, []string{"Breton", "Welsh"}, names)

	err := dataset.LoadFile(filepath.Join(dir, "missing.json"), &names)
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	var perr *errors.ParseError
	assert.ErrorAs(t, dataset.LoadFile(path, &names), &perr)
}
