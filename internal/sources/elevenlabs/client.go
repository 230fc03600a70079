// Package elevenlabs lists the ElevenLabs shared voice library and groups it
// into the voices dataset.
package elevenlabs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/internal/transport"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/logging"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Client talks to the shared voices endpoint.
type Client struct {
	baseURL  string
	pageSize int
	maxPages int
	http     *transport.Client
	logger   *zerolog.Logger
}

type options struct {
	baseURL   string
	pageSize  int
	maxPages  int
	logger    *zerolog.Logger
	transport []transport.Option
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithPageSize sets how many voices are requested per page.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithMaxPages bounds pagination.
func WithMaxPages(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPages = n
		}
	}
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

// New creates a client. An empty apiKey is a configuration error.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewAuthenticationError(sources.ElevenLabs.String(), "header",
			constants.EnvElevenLabsKey+" is not set", errors.ErrAPIKeyRequired)
	}

	o := &options{
		baseURL:  constants.ElevenLabsBaseURL,
		pageSize: constants.VoicePageSize,
		maxPages: constants.MaxVoicePages,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	topts := append([]transport.Option{
		transport.WithAuth(&transport.HeaderAuth{Header: "xi-api-key"}, apiKey),
		transport.WithTimeout(constants.APITimeout),
	}, o.transport...)

	return &Client{
		baseURL:  o.baseURL,
		pageSize: o.pageSize,
		maxPages: o.maxPages,
		http:     transport.New(sources.ElevenLabs.String(), topts...),
		logger:   o.logger,
	}, nil
}

type sharedVoicesResponse struct {
	Voices  []sources.Voice `json:"voices"`
	HasMore bool            `json:"has_more"`
}

// Page fetches one page of shared voices, counting from zero.
func (c *Client) Page(ctx context.Context, page int) ([]sources.Voice, error) {
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(c.pageSize))
	q.Set("page", strconv.Itoa(page))

	var resp sharedVoicesResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/v1/shared-voices?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Voices, nil
}

// SharedVoices pages through the catalog until a page comes back empty.
// Duplicate voice IDs across pages are kept and reported in the log. If a
// page fails after earlier pages succeeded, the voices gathered so far are
// returned together with the error.
func (c *Client) SharedVoices(ctx context.Context) ([]sources.Voice, error) {
	var all []sources.Voice
	seen := make(map[string]bool)

	for page := 0; page < c.maxPages; page++ {
		voices, err := c.Page(ctx, page)
		if err != nil {
			return all, fmt.Errorf("fetching shared voices page %d: %w", page, err)
		}
		if len(voices) == 0 {
			c.logger.Debug().Int("page", page).Msg("No more voices")
			return all, nil
		}

		dupes := 0
		for _, v := range voices {
			if seen[v.VoiceID] {
				dupes++
			}
			seen[v.VoiceID] = true
		}
		if dupes > 0 {
			c.logger.Warn().Int("page", page).Int("duplicates", dupes).Msg("Found duplicate voice IDs")
		}

		all = append(all, voices...)
		if (page+1)%10 == 0 {
			c.logger.Info().Int("pages", page+1).Int("voices", len(all)).Msg("Fetching shared voices")
		}
	}

	c.logger.Warn().Int("max_pages", c.maxPages).Msg("Stopped at page limit")
	return all, nil
}
