package mobli

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", "xyz", ClientConfig{})
	require.ErrorIs(t, err, ErrMissingClientID)

	_, err = NewClient("abc", "", ClientConfig{})
	require.ErrorIs(t, err, ErrMissingClientSecret)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	t.Run("attaches token to caller params when session is valid", func(t *testing.T) {
		transport := &stubTransport{respond: func(string, string, Params) (string, error) {
			return `{"ok":true}`, nil
		}}
		client := newTestClient(t, transport, ClientConfig{})
		client.Session().SetAccessToken("T")

		params := Params{"q": "cats"}
		body, err := client.Execute(context.Background(), Request{Path: "v3/search", Params: params, Method: http.MethodGet})
		require.NoError(t, err)
		require.Equal(t, `{"ok":true}`, body)

		// The caller's map is mutated
		require.Equal(t, "T", params[FieldAccessToken])

		calls := transport.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, APIBaseURL+"v3/search", calls[0].URL)
		require.Equal(t, http.MethodGet, calls[0].Method)
		require.Equal(t, Params{"q": "cats", FieldAccessToken: "T"}, calls[0].Params)
	})

	t.Run("no token without a session", func(t *testing.T) {
		transport := &stubTransport{}
		client := newTestClient(t, transport, ClientConfig{})

		_, err := client.Get(context.Background(), "v3/me", nil)
		require.NoError(t, err)

		calls := transport.Calls()
		require.Len(t, calls, 1)
		require.NotContains(t, calls[0].Params, FieldAccessToken)
	})

	t.Run("base url and path are concatenated verbatim", func(t *testing.T) {
		transport := &stubTransport{}
		client := newTestClient(t, transport, ClientConfig{})

		_, err := client.Execute(context.Background(), Request{
			BaseURL: "https://example.com/",
			Path:    "/v3/me",
			Method:  http.MethodPost,
		})
		require.NoError(t, err)
		require.Equal(t, "https://example.com//v3/me", transport.Calls()[0].URL)
	})

	t.Run("empty method is malformed", func(t *testing.T) {
		transport := &stubTransport{}
		client := newTestClient(t, transport, ClientConfig{})

		_, err := client.Execute(context.Background(), Request{Path: "v3/me"})

		var malformed *MalformedRequestError
		require.ErrorAs(t, err, &malformed)
		require.Empty(t, transport.Calls())
	})

	t.Run("transport failures are returned unchanged", func(t *testing.T) {
		want := &NotFoundError{URL: "x", StatusCode: http.StatusNotFound}
		transport := &stubTransport{respond: func(string, string, Params) (string, error) {
			return "", want
		}}
		client := newTestClient(t, transport, ClientConfig{})

		_, err := client.Get(context.Background(), "v3/missing", nil)
		require.Same(t, want, err)
	})

	t.Run("single attempt", func(t *testing.T) {
		transport := &stubTransport{respond: func(string, string, Params) (string, error) {
			return "", &TransportError{Err: errors.New("connection reset")}
		}}
		client := newTestClient(t, transport, ClientConfig{})

		_, err := client.Post(context.Background(), "v3/like", nil)
		require.Error(t, err)
		require.Len(t, transport.Calls(), 1)
	})
}
