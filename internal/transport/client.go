package transport

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	source    string
	http      *http.Client
	auth      Authenticator
	apiKey    string
	userAgent string
	accept    string
	maxBytes  int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAuth sets the credential and how it is applied.
func WithAuth(auth Authenticator, apiKey string) Option {
	return func(c *Client) {
		c.auth = auth
		c.apiKey = apiKey
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithAccept sets the Accept header.
func WithAccept(accept string) Option {
	return func(c *Client) { c.accept = accept }
}

// WithMaxBytes caps how much of a response body is read.
func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// New creates a transport client for the named source.
func New(source string, opts ...Option) *Client {
	c := &Client{
		source:   source,
		http:     &http.Client{Timeout: DefaultHTTPTimeout},
		accept:   "application/json",
		maxBytes: constants.MaxPageBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source name used in errors.
func (c *Client) Source() string {
	return c.source
}

// Do performs an HTTP request with authentication and common headers applied.
// Transport failures are mapped to TimeoutError or APIError.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.auth != nil && c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}
	if c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, c.wrapTransport(ctx, req, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}

// GetBody performs a GET request and returns the body of a 200 response.
// Any other status becomes an APIError.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ReadBody(resp, c.source, c.maxBytes)
}

// GetJSON performs a GET request and decodes a 200 JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, c.source, target)
}

func (c *Client) wrapTransport(ctx context.Context, req *http.Request, err error) error {
	ep := endpoint(req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if ctxErr == context.DeadlineExceeded {
			return errors.NewTimeoutError(ep, "", ctxErr.Error())
		}
		return ctxErr
	}

	// url.Error repeats the full URL, query included.
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTimeoutError(ep, c.http.Timeout.String(), cause.Error())
	}
	return &errors.APIError{
		Source:   c.source,
		Message:  cause.Error(),
		Endpoint: ep,
		Err:      errors.Join(errors.ErrSourceUnavailable, cause),
	}
}
