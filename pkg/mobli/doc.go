/*
Package mobli provides a client SDK for the Mobli REST API and its OAuth 2.0 login flows.

# Overview

A Client owns a Session holding the current access token, its expiry and the id of the
user that logged in. Every API request made through the Client carries the access token
as the access_token parameter while the session is valid.

	client, err := mobli.NewClient("client-id", "client-secret", mobli.ClientConfig{})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

# Obtaining a Token

There are two ways to obtain an access token.

Public token (client credentials grant, no user interaction):

	client.ObtainPublicToken(ctx, nil, func(res mobli.Result) {
		if res.Err != nil {
			// handle failure
		}
		// client.Session().AccessToken() now holds the shared token
	})

The token is extracted from the response on a best effort basis. The listener always
receives the raw response, even when no token could be read from it.

Interactive login (implicit grant):

	client, _ := mobli.NewClient(id, secret, mobli.ClientConfig{Dialog: myDialog})
	client.Authorize(ctx, []string{"shared", "basic"}, func(res mobli.DialogResult) {
		switch res.Kind() {
		case mobli.DialogComplete:
			// logged in as client.Session().UserID()
		case mobli.DialogCanceled:
			// user backed out
		default:
			// res.Err is a *mobli.VendorError or *mobli.DialogError
		}
	})

The Dialog is supplied by the host application. It presents the login page, waits for the
redirect to Client.RedirectURI() and reports the result; ParseRedirect turns the final
redirect URL into a DialogResult.

# Requests

Execute blocks the calling goroutine:

	body, err := client.Get(ctx, "v3/media/popular", mobli.Params{"max_results": "10"})

RequestAsync (and Dispatcher.Dispatch) return immediately and deliver a Result to the
listener from a worker goroutine. Results carry the caller supplied state value unchanged,
so concurrent requests can be told apart. Completions arrive in no particular order.

	client.RequestAsync(ctx, mobli.Request{Path: "v3/me", Method: http.MethodGet}, "me",
		func(res mobli.Result) {
			fmt.Println(res.State, res.Kind(), res.Body)
		})

Listeners run on dispatcher workers. Anything bound to the caller's goroutine (UI state
for instance) must be handed back by the listener itself.

A Session is also an oauth2.TokenSource, so a logged in client can back a plain
http.Client for endpoints the SDK does not wrap:

	httpClient := oauth2.NewClient(ctx, client.Session())
	resp, err := httpClient.Get("https://api.mobli.com/v3/me")

Token fails with ErrNoSession once the session is cleared or has expired.

# Error Handling

Request failures are reported as distinct types:

  - *MalformedRequestError: the URL could not be built or the method is empty
  - *NotFoundError: the resource does not exist (HTTP 404/410)
  - *TransportError: network or I/O failure
  - *VendorError: Mobli reported an application level failure

Login flows additionally report *DialogError for failures of the dialog itself and
ErrCanceled when the user backs out. A dialog that completes without a usable token is
reported as a *VendorError with MessageMissingAccessToken.

Nothing is retried; retry policy belongs to the caller.

# Thread Safety

Client, Session and Dispatcher are safe for concurrent use. The Session is guarded by a
read/write lock so requests can read it while a login completes.
*/
package mobli
