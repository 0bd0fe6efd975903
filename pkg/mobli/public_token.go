package mobli

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// ObtainPublicToken exchanges the client credentials for a shared ("public")
// access token. On success the token is stored in the session when the body
// carries one; the listener receives the raw Result either way, even if the
// body could not be decoded.
func (c *Client) ObtainPublicToken(ctx context.Context, state any, listener Listener) {
	params := Params{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"grant_type":    GrantClientCredentials,
		"scope":         PublicScope,
	}

	req := Request{
		BaseURL: c.authBaseURL,
		Path:    PublicTokenPath,
		Params:  params,
		Method:  http.MethodPost,
	}

	c.dispatcher.Dispatch(ctx, req, state, storePublicToken(c.session, c.logger, listener))
}

// storePublicToken wraps listener so a successful body updates the session
// before the result is forwarded. A present access_token overwrites the stored
// token, even when empty; numbers and booleans are stored in their text form.
// Decode failures are not reported.
func storePublicToken(session *Session, logger *slog.Logger, listener Listener) Listener {
	return func(res Result) {
		if res.Kind() == ResultSuccess {
			if token, ok, err := extractAccessToken(res.Body); err != nil {
				logger.Debug("public token response not decodable", "error", err)
			} else if !ok {
				logger.Debug("public token response has no access token")
			} else {
				session.SetAccessToken(token)
			}
		}

		if listener != nil {
			listener(res)
		}
	}
}

// extractAccessToken reads access_token from a JSON object body. ok is false
// when the field is missing or holds null, an object or an array.
func extractAccessToken(body string) (token string, ok bool, err error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return "", false, err
	}

	switch v := fields[FieldAccessToken].(type) {
	case string:
		return v, true, nil
	case json.Number:
		return v.String(), true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	default:
		return "", false, nil
	}
}
