// Package googlecse finds and downloads one image per query using the Google
// Custom Search JSON API.
package googlecse

import (
	"context"
	"net/url"
	"strings"

	"github.com/agentstation/langgarden/internal/transport"
	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/sources"
)

// Client implements sources.ImageSearcher.
type Client struct {
	endpoint   string
	engineID   string
	search     *transport.Client
	downloader *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint points searches at another URL, e.g. a test server.
func WithEndpoint(u string) Option {
	return func(c *Client) { c.endpoint = u }
}

// New creates a client. Both the API key and the engine ID are required.
func New(apiKey, engineID string, opts ...Option) (*Client, error) {
	switch {
	case strings.TrimSpace(apiKey) == "":
		return nil, missing(constants.EnvCSEKey)
	case strings.TrimSpace(engineID) == "":
		return nil, missing(constants.EnvCSEID)
	}

	c := &Client{
		endpoint: constants.CustomSearchURL,
		engineID: engineID,
		search: transport.New(sources.GoogleCSE.String(),
			transport.WithAuth(&transport.QueryAuth{Param: "key"}, apiKey),
			transport.WithTimeout(constants.APITimeout),
		),
		downloader: transport.New("image",
			transport.WithUserAgent(constants.BrowserUserAgent),
			transport.WithAccept("image/*,*/*;q=0.8"),
			transport.WithTimeout(constants.DefaultHTTPTimeout),
			transport.WithMaxBytes(constants.MaxImageBytes),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func missing(env string) error {
	return errors.NewAuthenticationError(sources.GoogleCSE.String(), "query", env+" is not set", errors.ErrAPIKeyRequired)
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// Search returns the link of the top image result for query.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("cx", c.engineID)
	q.Set("searchType", "image")
	q.Set("num", "1")
	q.Set("imgSize", "medium")

	var resp searchResponse
	if err := c.search.GetJSON(ctx, c.endpoint+"?"+q.Encode(), &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 || resp.Items[0].Link == "" {
		return "", &errors.NotFoundError{Resource: "image", ID: query}
	}
	return resp.Items[0].Link, nil
}

// Download fetches image bytes with a browser User-Agent.
func (c *Client) Download(ctx context.Context, link string) ([]byte, error) {
	return c.downloader.GetBody(ctx, link)
}
