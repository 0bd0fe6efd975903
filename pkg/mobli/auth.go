package mobli

import (
	"context"
	"errors"
	"strings"
)

// AuthState is the position of the interactive login flow.
type AuthState int

const (
	AuthIdle AuthState = iota
	AuthDialogPresented
	AuthCompleted
	AuthFailed
	AuthCanceled
)

func (s AuthState) String() string {
	switch s {
	case AuthIdle:
		return "idle"
	case AuthDialogPresented:
		return "dialog_presented"
	case AuthCompleted:
		return "completed"
	case AuthFailed:
		return "failed"
	case AuthCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Dialog presents the Mobli login page and reports how it ended. Show must
// call listener exactly once, with the values carried by the final redirect to
// redirectURI, a *DialogError, a *VendorError or ErrCanceled.
type Dialog interface {
	Show(ctx context.Context, authURL, redirectURI string, listener DialogListener)
}

// DialogFunc adapts a function to the Dialog interface.
type DialogFunc func(ctx context.Context, authURL, redirectURI string, listener DialogListener)

// Show implements Dialog.
func (f DialogFunc) Show(ctx context.Context, authURL, redirectURI string, listener DialogListener) {
	f(ctx, authURL, redirectURI, listener)
}

// AuthState returns the state of the most recent login flow.
func (c *Client) AuthState() AuthState {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	return c.authState
}

func (c *Client) setAuthState(state AuthState) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	c.authState = state
}

// AuthorizeBasic runs Authorize with BasicPermissions.
func (c *Client) AuthorizeBasic(ctx context.Context, listener DialogListener) {
	c.Authorize(ctx, BasicPermissions, listener)
}

// Authorize presents the login dialog asking for permissions. On completion the
// token, expiry and user id are stored in the session. If the dialog completes
// without producing a valid session the listener receives a *VendorError with
// MessageMissingAccessToken.
func (c *Client) Authorize(ctx context.Context, permissions []string, listener DialogListener) {
	params := Params{}
	if len(permissions) > 0 {
		params["scope"] = strings.Join(permissions, " ")
	}

	c.setAuthState(AuthDialogPresented)

	c.Dialog(ctx, params, func(res DialogResult) {
		switch res.Kind() {
		case DialogComplete:
			c.session.SetAccessToken(res.Values.Get(FieldAccessToken))
			c.session.SetAccessExpiresIn(res.Values.Get(FieldExpiresIn))
			c.session.SetUserID(res.Values.Get(FieldUserID))

			if !c.session.IsValid() {
				c.setAuthState(AuthFailed)
				c.logger.Info("login failed", "error", MessageMissingAccessToken)
				res = DialogResult{Err: NewVendorError(MessageMissingAccessToken)}
				break
			}

			c.setAuthState(AuthCompleted)
			c.logger.Info("login success", "user_id", c.session.UserID(), "expires", c.session.AccessExpires())

		case DialogCanceled:
			c.setAuthState(AuthCanceled)
			c.logger.Info("login canceled")

		default:
			c.setAuthState(AuthFailed)
			c.logger.Info("login failed", "error", res.Err)
		}

		if listener != nil {
			listener(res)
		}
	})
}

// Dialog builds the authorization URL from params and hands it to the
// configured Dialog. params gains redirect_uri, client_id, response_type and,
// when the session is valid, access_token.
//
// When the host denies network access an alert is shown and the listener
// receives a *DialogError wrapping ErrNoNetworkPermission. No request is made.
func (c *Client) Dialog(ctx context.Context, params Params, listener DialogListener) {
	if params == nil {
		params = Params{}
	}
	if listener == nil {
		listener = func(DialogResult) {}
	}

	redirectURI := c.RedirectURI()
	params["redirect_uri"] = redirectURI
	params["client_id"] = c.clientID
	params["response_type"] = "token"
	if token, ok := c.session.validToken(); ok {
		params[FieldAccessToken] = token
	}

	authURL := c.authBaseURL + DialogAuthorizePath + "?" + params.Values().Encode()

	if !c.permissions.HasNetworkPermission(ctx) {
		c.alerter.Alert("Error", "Application requires permission to access the Internet")
		listener(DialogResult{Err: &DialogError{FailingURL: authURL, Err: ErrNoNetworkPermission}})
		return
	}

	if c.dialog == nil {
		listener(DialogResult{Err: &DialogError{FailingURL: authURL, Err: errors.New("no dialog configured")}})
		return
	}

	c.dialog.Show(ctx, authURL, redirectURI, listener)
}

// RedirectURI returns the redirect URI registered for this client id.
func (c *Client) RedirectURI() string {
	return RedirectURIStart + c.clientID + RedirectURIEnd
}

// Logout clears the dialog cookies and the session token. It never fails.
func (c *Client) Logout(ctx context.Context) {
	c.cookies.ClearCookies(ctx)
	c.session.Clear()
	c.logger.Info("logged out", "client_id", c.clientID)
}
