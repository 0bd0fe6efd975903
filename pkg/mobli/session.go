package mobli

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Session holds the access token, its expiry and the authenticated user id for
// a Client. It is safe for concurrent use: asynchronous requests read it while a
// login or public token exchange may be writing it.
//
// An empty access token means there is no session. A zero expiry means the token
// never expires.
type Session struct {
	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	userID      string

	now func() time.Time
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// SetAccessToken overwrites the access token. An empty token clears it.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// SetAccessExpires overwrites the absolute expiry. The zero time means never.
func (s *Session) SetAccessExpires(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = t
}

// SetAccessExpiresIn sets the expiry from a lifetime in seconds as returned by
// the server. "0" means the token never expires. An empty or non-numeric value
// leaves the current expiry untouched. Lifetimes beyond what time.Duration can
// hold are capped, and a negative lifetime marks the token as already expired.
func (s *Session) SetAccessExpiresIn(expiresIn string) {
	if expiresIn == "" {
		return
	}

	var expiresAt time.Time
	if expiresIn != "0" {
		seconds, err := strconv.ParseInt(expiresIn, 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return
		}
		expiresAt = s.now().Add(lifetime(seconds))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = expiresAt
}

// maxLifetimeSeconds is the longest lifetime a time.Duration can hold.
const maxLifetimeSeconds = math.MaxInt64 / int64(time.Second)

// lifetime converts seconds to a duration, clamped to what a time.Duration can
// represent. Negative lifetimes yield an expiry in the past.
func lifetime(seconds int64) time.Duration {
	switch {
	case seconds > maxLifetimeSeconds:
		seconds = maxLifetimeSeconds
	case seconds < -maxLifetimeSeconds:
		seconds = -maxLifetimeSeconds
	}
	return time.Duration(seconds) * time.Second
}

// IsValid reports whether there is an access token that has not yet expired.
func (s *Session) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isValidLocked()
}

func (s *Session) isValidLocked() bool {
	return s.accessToken != "" && (s.expiresAt.IsZero() || s.now().Before(s.expiresAt))
}

// validToken returns the access token together with its validity, read under
// a single lock so a concurrent logout cannot split the two.
func (s *Session) validToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isValidLocked() {
		return "", false
	}
	return s.accessToken, true
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// AccessExpires returns the absolute expiry, the zero time meaning never.
func (s *Session) AccessExpires() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// UserID returns the id of the user that logged in through the dialog.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// SetUserID overwrites the authenticated user id.
func (s *Session) SetUserID(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// Clear drops the access token and resets the expiry.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.expiresAt = time.Time{}
}

// Token implements oauth2.TokenSource so a session can back an oauth2 HTTP
// client. It fails with ErrNoSession when the session is not valid.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isValidLocked() {
		return nil, ErrNoSession
	}

	return &oauth2.Token{
		AccessToken: s.accessToken,
		TokenType:   "Bearer",
		Expiry:      s.expiresAt,
	}, nil
}
