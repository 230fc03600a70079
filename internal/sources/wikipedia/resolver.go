// Package wikipedia fetches English Wikipedia articles for language names,
// both as cleaned page text for fact extraction and as short summaries.
package wikipedia

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/internal/transport"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/logging"
	"github.com/agentstation/langgarden/pkg/sources"
)

type options struct {
	baseURL    string
	summaryURL string
	logger     *zerolog.Logger
	transport  []transport.Option
}

// Option configures the Wikipedia clients.
type Option func(*options)

// WithBaseURL sets the article root, e.g. "https://en.wikipedia.org/wiki/".
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = withSlash(u) }
}

// WithSummaryURL sets the REST summary root.
func WithSummaryURL(u string) Option {
	return func(o *options) { o.summaryURL = withSlash(u) }
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTransport passes options through to the HTTP transport.
func WithTransport(opts ...transport.Option) Option {
	return func(o *options) { o.transport = append(o.transport, opts...) }
}

func newOptions(opts ...Option) *options {
	o := &options{
		baseURL:    constants.WikipediaBaseURL,
		summaryURL: constants.WikipediaSummaryURL,
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) client(accept string) *transport.Client {
	topts := append([]transport.Option{
		transport.WithUserAgent(constants.BotUserAgent),
		transport.WithTimeout(constants.DefaultHTTPTimeout),
		transport.WithAccept(accept),
	}, o.transport...)
	return transport.New(sources.Wikipedia.String(), topts...)
}

// Resolver implements sources.PageResolver against Wikipedia articles.
type Resolver struct {
	baseURL string
	http    *transport.Client
	logger  *zerolog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	o := newOptions(opts...)
	return &Resolver{
		baseURL: o.baseURL,
		http:    o.client("text/html"),
		logger:  o.logger,
	}
}

// Titles lists the article titles tried for a language, in order: the display
// name, the display name with a "_language" suffix, then the same two forms
// of the official name. Empty and repeated titles are left out.
func Titles(displayName, officialName string) []string {
	var titles []string
	seen := map[string]bool{}
	for _, name := range []string{displayName, officialName} {
		base := Title(name)
		if base == "" {
			continue
		}
		for _, t := range []string{base, base + "_language"} {
			if !seen[t] {
				seen[t] = true
				titles = append(titles, t)
			}
		}
	}
	return titles
}

// Title turns a name into an article title: spaces become underscores.
func Title(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// Resolve returns the cleaned article text for the first title that answers
// with 200. When none does it returns a page NotFoundError, which matches
// errors.ErrNoContent.
func (r *Resolver) Resolve(ctx context.Context, displayName, officialName string) (string, error) {
	for _, title := range Titles(displayName, officialName) {
		body, err := r.http.GetBody(ctx, r.baseURL+url.PathEscape(title))
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			r.logger.Debug().Err(err).Str("title", title).Msg("Article not available")
			continue
		}

		text, err := Clean(bytes.NewReader(body))
		if err != nil {
			r.logger.Debug().Err(err).Str("title", title).Msg("Article could not be parsed")
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		return text, nil
	}
	return "", &errors.NotFoundError{Resource: "page", ID: displayName}
}

func withSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
