package mobli

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mobli/pkg/slogx"
)

// Request describes a single API call.
type Request struct {
	// BaseURL is prepended to Path verbatim (default: the client's API base URL)
	BaseURL string

	// Path is appended to BaseURL without any slash normalisation
	Path string

	Params Params

	// Method is the HTTP verb and must not be empty
	Method string
}

// Execute performs the request on the calling goroutine and returns the raw
// response body. When the session is valid the access token is added to
// req.Params before the transport is called. There are no retries.
func (c *Client) Execute(ctx context.Context, req Request) (string, error) {
	baseURL := req.BaseURL
	if baseURL == "" {
		baseURL = c.apiBaseURL
	}
	url := baseURL + req.Path

	if req.Method == "" {
		return "", &MalformedRequestError{URL: url, Err: errors.New("http method is required")}
	}

	if token, ok := c.session.validToken(); ok {
		if req.Params == nil {
			req.Params = Params{}
		}
		req.Params[FieldAccessToken] = token
	}

	ctx = slogx.Ensure(ctx, c.logger)
	return c.transport.Open(ctx, url, req.Method, req.Params)
}

// Get issues a GET against the API base URL.
func (c *Client) Get(ctx context.Context, path string, params Params) (string, error) {
	return c.Execute(ctx, Request{Path: path, Params: params, Method: http.MethodGet})
}

// Post issues a POST against the API base URL.
func (c *Client) Post(ctx context.Context, path string, params Params) (string, error) {
	return c.Execute(ctx, Request{Path: path, Params: params, Method: http.MethodPost})
}
