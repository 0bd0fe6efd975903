package mobli

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRedirect interprets the URL the login page finally redirected to.
//
// The implicit grant returns its fields in the fragment; query parameters are
// merged in as well. A redirect carrying error=access_denied (or the legacy
// OAuthAccessDeniedException) is a cancellation, any other error is reported
// as a *VendorError. A URL that does not start with redirectURI, or cannot be
// parsed, is a *DialogError.
//
// Example:
//
//	res := mobli.ParseRedirect(client.RedirectURI(), "mobliabc://authorize#access_token=T&expires_in=3600")
//	// res.Kind() == mobli.DialogComplete, res.Values.Get("access_token") == "T"
func ParseRedirect(redirectURI, rawURL string) DialogResult {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, redirectURI) {
		return DialogResult{Err: &DialogError{
			FailingURL: rawURL,
			Err:        fmt.Errorf("redirect does not match %s", redirectURI),
		}}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return DialogResult{Err: &DialogError{FailingURL: rawURL, Err: fmt.Errorf("failed to parse redirect URL: %w", err)}}
	}

	values := u.Query()
	if raw := u.EscapedFragment(); raw != "" {
		fragment, err := url.ParseQuery(raw)
		if err != nil {
			return DialogResult{Err: &DialogError{FailingURL: rawURL, Err: fmt.Errorf("failed to parse redirect fragment: %w", err)}}
		}
		for k, v := range fragment {
			values[k] = v
		}
	}

	errorCode := values.Get("error")
	if errorCode == "" {
		errorCode = values.Get("error_type")
	}

	switch errorCode {
	case "":
		return DialogResult{Values: values}
	case ErrorCodeAccessDenied, errorCodeAccessDeniedException:
		return DialogResult{Err: ErrCanceled}
	default:
		return DialogResult{Err: &VendorError{
			Code:        errorCode,
			Description: values.Get("error_description"),
		}}
	}
}
