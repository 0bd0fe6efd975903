package mobli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Vendor Error Codes
// ============================================================================

const (
	// OAuth2 error codes per RFC 6749 that the Mobli endpoints are known to return
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidClient  = "invalid_client"
	ErrorCodeInvalidGrant   = "invalid_grant"
	ErrorCodeInvalidScope   = "invalid_scope"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeAccessDenied   = "access_denied"
	ErrorCodeServerError    = "server_error"

	// errorCodeAccessDeniedException is the legacy spelling the dialog uses when the user declines
	errorCodeAccessDeniedException = "OAuthAccessDeniedException"
)

// ============================================================================
// Sentinel Errors
// ============================================================================

var (
	// ErrMissingClientID is returned by NewClient when no client id is supplied.
	ErrMissingClientID = errors.New("mobli: you must specify a client id when creating a client")

	// ErrMissingClientSecret is returned by NewClient when no client secret is supplied.
	ErrMissingClientSecret = errors.New("mobli: you must specify a client secret when creating a client")

	// ErrCanceled marks a dialog the user backed out of. It is not a failure.
	ErrCanceled = errors.New("mobli: canceled by user")

	// ErrNoNetworkPermission is reported when the host denies network access to the dialog.
	ErrNoNetworkPermission = errors.New("mobli: application requires permission to access the internet")

	// ErrDispatcherBusy is reported when the dispatch queue has no free slot.
	ErrDispatcherBusy = errors.New("mobli: dispatcher queue is full")

	// ErrDispatcherClosed is reported for requests dispatched after Close.
	ErrDispatcherClosed = errors.New("mobli: dispatcher is closed")

	// ErrNoSession is returned by Session.Token when there is no valid access token.
	ErrNoSession = errors.New("mobli: no valid session")
)

// MessageMissingAccessToken is the fixed description used when a dialog completes
// without handing back a usable token.
const MessageMissingAccessToken = "failed to receive access token"

// ============================================================================
// Request Failures
// ============================================================================

// MalformedRequestError reports a request that could not be built, such as an
// invalid base URL and path combination or an empty HTTP method.
type MalformedRequestError struct {
	URL string
	Err error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request %q: %v", e.URL, e.Err)
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

// NotFoundError reports that the requested resource does not exist (HTTP 404 or 410).
type NotFoundError struct {
	URL        string
	StatusCode int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s (HTTP %d)", e.URL, e.StatusCode)
}

// TransportError reports a network or I/O failure while talking to the server.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ============================================================================
// VendorError - application level failure reported by Mobli
// ============================================================================

// VendorError represents an application-level error reported by the Mobli
// service, for example invalid client credentials. It is also used when a login
// dialog completes without delivering an access token.
type VendorError struct {
	// StatusCode is the HTTP status code, zero when the error did not come from HTTP
	StatusCode int `json:"-"`

	// Code is the error code (e.g., "invalid_client"), may be empty
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *VendorError) Error() string {
	if e.Code == "" {
		return e.Description
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// NewVendorError creates a VendorError carrying only a description.
func NewVendorError(description string) *VendorError {
	return &VendorError{Description: description}
}

// ============================================================================
// DialogError - failure of the interactive login UI
// ============================================================================

// DialogError reports a failure of the login dialog itself (the browser or web
// view could not load the page, the host refused network access, ...).
type DialogError struct {
	// Code is a dialog specific error code, zero when unknown
	Code int

	// FailingURL is the URL the dialog failed to load, if any
	FailingURL string

	Err error
}

func (e *DialogError) Error() string {
	if e.FailingURL == "" {
		return fmt.Sprintf("dialog error: %v", e.Err)
	}
	return fmt.Sprintf("dialog error loading %s: %v", e.FailingURL, e.Err)
}

func (e *DialogError) Unwrap() error { return e.Err }

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// errorResponse is the error body shape returned by the Mobli endpoints.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// parseErrorResponse turns a non-2xx response into a typed error.
// Returns nil if the status code indicates success.
func parseErrorResponse(url string, statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	if statusCode == http.StatusNotFound || statusCode == http.StatusGone {
		return &NotFoundError{URL: url, StatusCode: statusCode}
	}

	// Try parsing as a vendor error body
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &VendorError{
			StatusCode:  statusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &VendorError{
		StatusCode:  statusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode)),
	}
}
