package languages_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/pkg/languages"
)

func TestVariantKey(t *testing.T) {
	k := languages.NewVariantKey("en", "new zealand")
	assert.Equal(t, "en.new zealand", k.String())
	assert.Equal(t, "en_new_zealand", k.FileStem())

	t.Run("parse", func(t *testing.T) {
		got, err := languages.ParseVariantKey("es.puerto_rican")
		require.NoError(t, err)
		assert.Equal(t, languages.NewVariantKey("es", "puerto_rican"), got)
	})

	t.Run("parse rejects missing variant", func(t *testing.T) {
		for _, in := range []string{"", "es", "es.", ".mexican"} {
			_, err := languages.ParseVariantKey(in)
			assert.Error(t, err, in)
		}
	})
}

func TestEndangermentCode(t *testing.T) {
	tests := []struct {
		in   string
		want languages.EndangermentCode
		ok   bool
	}{
		{"VU", languages.Vulnerable, true},
		{"vu", languages.Vulnerable, true},
		{" se ", languages.SeverelyEndangered, true},
		{"NE", languages.NotEndangered, true},
		{"XX", "", false},
		{"vulnerable", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := languages.ParseEndangermentCode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "critically endangered", languages.CriticallyEndangered.Description())
	assert.Len(t, languages.EndangermentCodes, 6)

	t.Run("json rejects unknown codes", func(t *testing.T) {
		var c languages.EndangermentCode
		require.NoError(t, json.Unmarshal([]byte(`"de"`), &c))
		assert.Equal(t, languages.DefinitelyEndangered, c)
		assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &c))
	})
}

func TestCoordinates(t *testing.T) {
	t.Run("numeric values round trip verbatim", func(t *testing.T) {
		var c languages.Coordinates
		require.NoError(t, json.Unmarshal([]byte(`{"lat":1,"long":2.50}`), &c))

		lat, ok := c.Lat.Float()
		require.True(t, ok)
		assert.Equal(t, 1.0, lat)
		assert.True(t, c.Valid())

		out, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, `{"lat":1,"long":2.50}`, string(out))
		assert.Contains(t, string(out), "2.50")
	})

	t.Run("placeholder strings are preserved", func(t *testing.T) {
		var c languages.Coordinates
		require.NoError(t, json.Unmarshal([]byte(`{"lat":"TODO","long":"TODO"}`), &c))
		assert.True(t, c.Lat.IsPlaceholder())
		assert.Equal(t, "TODO", c.Long.String())
		assert.False(t, c.Valid())

		out, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `{"lat":"TODO","long":"TODO"}`, string(out))
	})

	t.Run("numeric strings are not coordinates", func(t *testing.T) {
		var c languages.Coordinates
		require.NoError(t, json.Unmarshal([]byte(`{"lat":"45","long":"7"}`), &c))
		assert.False(t, c.Valid())
	})

	t.Run("out of range", func(t *testing.T) {
		c := languages.Coordinates{Lat: languages.NewCoordinate(91), Long: languages.NewCoordinate(0)}
		assert.False(t, c.Valid())
		c = languages.Coordinates{Lat: languages.NewCoordinate(-45.5), Long: languages.NewCoordinate(-180)}
		assert.True(t, c.Valid())
	})

	t.Run("placeholder constructor", func(t *testing.T) {
		out, err := json.Marshal(languages.PlaceholderCoordinates())
		require.NoError(t, err)
		assert.Equal(t, `{"lat":"TODO","long":"TODO"}`, string(out))
	})

	t.Run("missing component marshals as null", func(t *testing.T) {
		out, err := json.Marshal(languages.Coordinates{})
		require.NoError(t, err)
		assert.Equal(t, `{"lat":null,"long":null}`, string(out))
	})
}

func TestSpeakerCount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    languages.SpeakerCount
		wantErr bool
	}{
		{"bare integer", `242000000`, 242000000, false},
		{"object form", `{"speakers": 15000000}`, 15000000, false},
		{"object without field", `{}`, 0, false},
		{"fractional floors", `1500.9`, 1500, false},
		{"negative", `-3`, 0, true},
		{"string", `"many"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got languages.SpeakerCount
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordJSON(t *testing.T) {
	rec := languages.Record{
		Coordinates:  languages.Coordinates{Lat: languages.NewCoordinate(1), Long: languages.NewCoordinate(2)},
		OfficialName: "English language",
		Name:         "English",
	}

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t,
		`{"coordinates":{"lat":1,"long":2},"official_name":"English language","name":"English","voice_ids":null}`,
		string(out))

	zero := int64(0)
	rec.Speakers = &zero
	rec.VoiceIDs = []string{"v1"}
	out, err = json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"speakers":0`)
	assert.NotContains(t, string(out), "endangerment_status")

	assert.Equal(t, "English", rec.DisplayName("en"))
	assert.Equal(t, "en", languages.Record{}.DisplayName("en"))
}
