package wikipedia

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/internal/transport"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Summaries implements sources.Describer with the REST summary endpoint and
// falls back to extracting the article body with readability.
type Summaries struct {
	baseURL    string
	summaryURL string
	api        *transport.Client
	pages      *transport.Client
	logger     *zerolog.Logger
}

// NewSummaries creates a Summaries client.
func NewSummaries(opts ...Option) *Summaries {
	o := newOptions(opts...)
	return &Summaries{
		baseURL:    o.baseURL,
		summaryURL: o.summaryURL,
		api:        o.client("application/json"),
		pages:      o.client("text/html"),
		logger:     o.logger,
	}
}

type summaryResponse struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

var spaces = regexp.MustCompile(`\s+`)

// SearchTerms lists the summary lookups for a name, in order.
func SearchTerms(name string) []string {
	name = strings.TrimSpace(name)
	return []string{name + " language", name, spaces.ReplaceAllString(name, "_")}
}

// Describe returns a description for name. Summary extracts must be longer
// than the minimum description length; when no term yields one, the article
// itself is reduced to its main text.
func (s *Summaries) Describe(ctx context.Context, name string) (*sources.Description, error) {
	for _, term := range SearchTerms(name) {
		var resp summaryResponse
		err := s.api.GetJSON(ctx, s.summaryURL+url.PathEscape(term), &resp)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Debug().Err(err).Str("term", term).Msg("Summary not available")
			continue
		}
		extract := strings.TrimSpace(resp.Extract)
		if utf8.RuneCountInString(extract) <= constants.MinDescriptionLength {
			continue
		}
		return &sources.Description{Name: name, Description: extract, URL: resp.ContentURLs.Desktop.Page}, nil
	}
	return s.fromArticle(ctx, name)
}

// fromArticle reads the "<name>_language" article and then the plain one.
func (s *Summaries) fromArticle(ctx context.Context, name string) (*sources.Description, error) {
	for _, title := range []string{Title(name) + "_language", Title(name)} {
		pageURL := s.baseURL + url.PathEscape(title)
		body, err := s.pages.GetBody(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		parsed, _ := url.Parse(pageURL)
		article, err := readability.FromReader(bytes.NewReader(body), parsed)
		if err != nil {
			s.logger.Debug().Err(err).Str("title", title).Msg("Readability failed")
			continue
		}
		text := firstParagraph(article.TextContent)
		if utf8.RuneCountInString(text) <= constants.MinDescriptionLength {
			continue
		}
		return &sources.Description{Name: name, Description: text, URL: pageURL}, nil
	}
	return nil, &errors.NotFoundError{Resource: "page", ID: name}
}

// firstParagraph returns the first block of text long enough to describe
// something, with whitespace collapsed.
func firstParagraph(text string) string {
	for _, block := range strings.Split(text, "\n") {
		block = strings.TrimSpace(spaces.ReplaceAllString(block, " "))
		if utf8.RuneCountInString(block) > constants.MinDescriptionLength {
			return block
		}
	}
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}
