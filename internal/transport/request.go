package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/logging"
)

// maxErrorMessage bounds how much of an error body is kept in an APIError.
const maxErrorMessage = 512

// ReadBody reads and closes a response body. Non-200 responses become an
// APIError carrying the status code. limit caps the bytes read; zero means no cap.
func ReadBody(resp *http.Response, source string, limit int64) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("source", source).Msg("Failed to close response body")
		}
	}()

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := errors.NewAPIError(source, resp.StatusCode, truncate(strings.TrimSpace(string(body)), maxErrorMessage))
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = endpoint(resp.Request)
		}
		return nil, apiErr
	}
	return body, nil
}

// DecodeResponse decodes a 200 JSON response into target.
func DecodeResponse(resp *http.Response, source string, target any) error {
	body, err := ReadBody(resp, source, 0)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", source+" response", err)
	}
	return nil
}

// endpoint renders a request for errors and logs. The query is dropped since
// it may carry credentials.
func endpoint(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	u.User = nil
	return req.Method + " " + u.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
