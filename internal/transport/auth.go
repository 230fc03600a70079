package transport

import (
	"net/http"
)

// Authenticator attaches a credential to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// HeaderAuth sends the key in a named header, e.g. ElevenLabs' xi-api-key.
type HeaderAuth struct {
	Header string
}

// Apply sets the header.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth sends the key as a query parameter, as Google's JSON APIs expect.
// Other parameters already on the URL are kept.
type QueryAuth struct {
	Param string
}

// Apply adds the parameter.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}
	q := req.URL.Query()
	q.Set(a.Param, apiKey)
	req.URL.RawQuery = q.Encode()
}
