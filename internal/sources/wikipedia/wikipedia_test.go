package wikipedia_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langgarden/internal/sources/wikipedia"
	"github.com/agentstation/langgarden/internal/testhelper"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/extract"
	"github.com/agentstation/langgarden/pkg/languages"
)

func TestResolverFallsThroughTitles(t *testing.T) {
	article := testhelper.Load(t, "welsh.html")
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		assert.Equal(t, constants.BotUserAgent, r.Header.Get("User-Agent"))
		if r.URL.Path == "/wiki/Welsh_language" {
			_, _ = w.Write(article)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	r := wikipedia.NewResolver(wikipedia.WithBaseURL(server.URL + "/wiki"))
	text, err := r.Resolve(context.Background(), "Welsh", "Cymraeg")
	require.NoError(t, err)
	assert.Equal(t, []string{"/wiki/Welsh", "/wiki/Welsh_language"}, requested)

	facts := extract.New().Extract(text)
	require.NotNil(t, facts.Speakers)
	assert.Equal(t, int64(880000), *facts.Speakers)
	require.NotNil(t, facts.Status)
	assert.Equal(t, "VU", facts.Status.String())
}

func TestResolverNoPage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r := wikipedia.NewResolver(wikipedia.WithBaseURL(server.URL + "/wiki/"))
	_, err := r.Resolve(context.Background(), "Atlantean", "Old Atlantean")
	require.Error(t, err)
	assert.True(t, errors.IsNoContent(err))
	assert.Equal(t, 4, calls)
}

func TestResolverCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := wikipedia.NewResolver(wikipedia.WithBaseURL(server.URL + "/wiki/"))
	_, err := r.Resolve(ctx, "Welsh", "")
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}

func TestSummariesDescribe(t *testing.T) {
	summary := strings.Repeat("Breton is a Southwestern Brittonic language. ", 3)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/summary/Breton language":
			_, _ = w.Write([]byte(`{"extract":"Too short."}`))
		case "/summary/Breton":
			_, _ = w.Write([]byte(`{"extract":"` + summary + `","content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/Breton_language"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	s := wikipedia.NewSummaries(
		wikipedia.WithSummaryURL(server.URL+"/summary"),
		wikipedia.WithBaseURL(server.URL+"/wiki"),
	)
	d, err := s.Describe(context.Background(), "Breton")
	require.NoError(t, err)
	assert.Equal(t, "Breton", d.Name)
	assert.Equal(t, strings.TrimSpace(summary), d.Description)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Breton_language", d.URL)
}

func TestSummariesArticleFallback(t *testing.T) {
	para := "Cornish is a Southwestern Brittonic language of the Celtic language family, revived in the twentieth century."
	page := `<html><head><title>Cornish language</title></head><body>
<div id="content"><h1>Cornish language</h1>` + strings.Repeat("<p>"+para+"</p>\n", 6) + `</div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wiki/Cornish_language" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(page))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := wikipedia.NewSummaries(
		wikipedia.WithSummaryURL(server.URL+"/summary"),
		wikipedia.WithBaseURL(server.URL+"/wiki"),
	)
	d, err := s.Describe(context.Background(), "Cornish")
	require.NoError(t, err)
	assert.Contains(t, d.Description, "Southwestern Brittonic")
	assert.Equal(t, server.URL+"/wiki/Cornish_language", d.URL)
}

func TestSummariesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	s := wikipedia.NewSummaries(
		wikipedia.WithSummaryURL(server.URL+"/summary"),
		wikipedia.WithBaseURL(server.URL+"/wiki"),
	)
	_, err := s.Describe(context.Background(), "Nothing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

type extraction struct {
	Page        string                      `json:"page"`
	SpeakerRule string                      `json:"speaker_rule"`
	StatusRule  string                      `json:"status_rule"`
	Speakers    *int64                      `json:"speakers"`
	Status      *languages.EndangermentCode `json:"status"`
}

func TestCleanAndExtractFixtures(t *testing.T) {
	ex := extract.New()
	var got []extraction
	for _, page := range testhelper.Fixtures(t, "*.html") {
		text, err := wikipedia.Clean(bytes.NewReader(testhelper.Load(t, page)))
		require.NoError(t, err)
		assert.NotContains(t, text, "rlconf", "script bodies are dropped")

		tr := ex.Trace(text)
		got = append(got, extraction{
			Page:        page,
			SpeakerRule: tr.SpeakerRule,
			StatusRule:  tr.StatusRule,
			Speakers:    tr.Result.Speakers,
			Status:      tr.Result.Status,
		})
	}
	testhelper.GoldenJSON(t, "extract.golden.json", got)
}
