package mobli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/mobli/pkg/slogx"
)

// Params are the string parameters of a request. Execute adds the access token
// to the map it is given, so callers that keep the map will see it.
type Params map[string]string

// Values converts the parameters into url.Values.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values
}

// Transport performs a single HTTP exchange and returns the raw response body.
// Implementations report failures as *MalformedRequestError, *NotFoundError,
// *TransportError or *VendorError.
type Transport interface {
	Open(ctx context.Context, url, method string, params Params) (string, error)
}

// HTTPTransport is the default Transport built on net/http.
//
// GET, HEAD and DELETE send the parameters in the query string, every other
// method sends them as an application/x-www-form-urlencoded body.
type HTTPTransport struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewHTTPTransport creates a transport with the given timeout and cookie jar.
// A nil jar disables cookie handling.
func NewHTTPTransport(timeout time.Duration, jar http.CookieJar) *HTTPTransport {
	return &HTTPTransport{
		HTTPClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		UserAgent: "mobli-go-sdk",
	}
}

// Open implements Transport.
func (t *HTTPTransport) Open(ctx context.Context, rawURL, method string, params Params) (string, error) {
	logger := slogx.FromContext(ctx)

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &MalformedRequestError{URL: rawURL, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &MalformedRequestError{URL: rawURL, Err: errors.New("url must be absolute")}
	}

	var body io.Reader
	values := params.Values()
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		if len(values) > 0 {
			query := u.Query()
			for k, v := range values {
				query[k] = v
			}
			u.RawQuery = query.Encode()
		}
	default:
		body = strings.NewReader(values.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return "", &MalformedRequestError{URL: rawURL, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	start := time.Now()
	resp, err := t.client().Do(req)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	logger.Debug("mobli request",
		"method", method,
		"url", u.Scheme+"://"+u.Host+u.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := parseErrorResponse(rawURL, resp.StatusCode, bodyBytes); err != nil {
		return "", err
	}

	return string(bodyBytes), nil
}

func (t *HTTPTransport) client() *http.Client {
	if t.HTTPClient == nil {
		return http.DefaultClient
	}
	return t.HTTPClient
}

// ============================================================================
// Host collaborators
// ============================================================================

// CookieStore clears cookies left behind by the login dialog.
type CookieStore interface {
	ClearCookies(ctx context.Context)
}

// PermissionChecker reports whether the host allows the SDK to use the network.
type PermissionChecker interface {
	HasNetworkPermission(ctx context.Context) bool
}

// Alerter presents a message to the user.
type Alerter interface {
	Alert(title, message string)
}

// JarCookies is a CookieStore over an in-memory cookie jar. Clearing swaps in a
// fresh jar, so it can be shared with an http.Client.
type JarCookies struct {
	mu  sync.RWMutex
	jar *cookiejar.Jar
}

// NewJarCookies returns an empty cookie store.
func NewJarCookies() *JarCookies {
	jar, _ := cookiejar.New(nil) // nil options never fail
	return &JarCookies{jar: jar}
}

// SetCookies implements http.CookieJar.
func (j *JarCookies) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.jar.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (j *JarCookies) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

// ClearCookies implements CookieStore.
func (j *JarCookies) ClearCookies(context.Context) {
	jar, _ := cookiejar.New(nil)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = jar
}

type allowNetwork struct{}

func (allowNetwork) HasNetworkPermission(context.Context) bool { return true }

// logAlerter writes alerts to the client logger.
type logAlerter struct {
	client *Client
}

func (a logAlerter) Alert(title, message string) {
	a.client.logger.Warn("mobli alert", "title", title, "message", message)
}
