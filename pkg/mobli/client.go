package mobli

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Mobli endpoints and OAuth field names.
const (
	APIBaseURL          = "https://api.mobli.com/"
	AuthorizeBaseURL    = "https://oauth.mobli.com"
	DialogAuthorizePath = "/authorize"
	PublicTokenPath     = "/shared"

	RedirectURIStart = "mobli"
	RedirectURIEnd   = "://authorize"

	FieldAccessToken = "access_token"
	FieldExpiresIn   = "expires_in"
	FieldUserID      = "user_id"

	PublicScope            = "shared"
	GrantClientCredentials = "client_credentials"
)

// BasicPermissions is the scope requested by AuthorizeBasic.
var BasicPermissions = []string{"basic"}

// ClientConfig holds the optional collaborators of a Client. Zero values are
// replaced with defaults by NewClient.
type ClientConfig struct {
	// APIBaseURL overrides the Mobli API endpoint (default: APIBaseURL)
	APIBaseURL string

	// AuthBaseURL overrides the OAuth endpoint (default: AuthorizeBaseURL)
	AuthBaseURL string

	// Transport performs HTTP exchanges (default: HTTPTransport sharing Cookies)
	Transport Transport

	// Timeout is used by the default transport (default: 30s)
	Timeout time.Duration

	// Dialog presents the interactive login. Authorize fails with a
	// DialogError when it is nil.
	Dialog Dialog

	// Cookies is cleared on Logout (default: in-memory JarCookies)
	Cookies CookieStore

	// Permissions gates the login dialog (default: always allowed)
	Permissions PermissionChecker

	// Alerter shows user facing alerts (default: logs a warning)
	Alerter Alerter

	// Dispatcher configures the asynchronous request pool
	Dispatcher DispatcherConfig

	// Logger for SDK diagnostics (default: slog.Default())
	Logger *slog.Logger
}

// Client is the entry point of the SDK. It owns the Session, issues API
// requests and runs the login flows.
type Client struct {
	clientID     string
	clientSecret string

	apiBaseURL  string
	authBaseURL string

	session    *Session
	transport  Transport
	dispatcher *Dispatcher
	logger     *slog.Logger

	dialog      Dialog
	cookies     CookieStore
	permissions PermissionChecker
	alerter     Alerter

	authMu    sync.Mutex
	authState AuthState
}

// NewClient creates a client for the given application credentials. Both the
// client id and secret are required.
func NewClient(clientID, clientSecret string, cfg ClientConfig) (*Client, error) {
	if clientID == "" {
		return nil, ErrMissingClientID
	}
	if clientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiBaseURL:   cfg.APIBaseURL,
		authBaseURL:  strings.TrimSuffix(cfg.AuthBaseURL, "/"),
		session:      NewSession(),
		transport:    cfg.Transport,
		logger:       cfg.Logger,
		dialog:       cfg.Dialog,
		cookies:      cfg.Cookies,
		permissions:  cfg.Permissions,
		alerter:      cfg.Alerter,
		authState:    AuthIdle,
	}

	if c.apiBaseURL == "" {
		c.apiBaseURL = APIBaseURL
	}
	if c.authBaseURL == "" {
		c.authBaseURL = AuthorizeBaseURL
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.cookies == nil {
		c.cookies = NewJarCookies()
	}
	if c.transport == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		transport := NewHTTPTransport(timeout, nil)
		if jar, ok := c.cookies.(*JarCookies); ok {
			transport.HTTPClient.Jar = jar
		}
		c.transport = transport
	}
	if c.permissions == nil {
		c.permissions = allowNetwork{}
	}
	if c.alerter == nil {
		c.alerter = logAlerter{client: c}
	}

	c.dispatcher = NewDispatcher(c, cfg.Dispatcher, c.logger)

	return c, nil
}

// ClientID returns the application client id.
func (c *Client) ClientID() string { return c.clientID }

// ClientSecret returns the application client secret.
func (c *Client) ClientSecret() string { return c.clientSecret }

// Session returns the client's session.
func (c *Client) Session() *Session { return c.session }

// Dispatcher returns the pool running asynchronous requests.
func (c *Client) Dispatcher() *Dispatcher { return c.dispatcher }

// Close stops the asynchronous request pool after draining queued requests.
func (c *Client) Close() {
	c.dispatcher.Close()
}
