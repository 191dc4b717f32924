// Package web provides the HTTP surface: the OAuth login flow, the
// bearer-gated Spotify proxy API, the calculator API, and the two HTML
// pages.
package web

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName     = "spotify-insights"
	sessionTokenKey = "access_token"
)

// SessionStore holds one Spotify access token per browser session. The
// token lives in a signed cookie, so the server keeps no session state;
// the token expires with the browser session.
type SessionStore struct {
	store *sessions.CookieStore
}

// NewSessionStore creates a cookie-backed session store signed with the
// given secret.
func NewSessionStore(secret string) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

// Token returns the access token from the request's session, or "" when
// the session is absent or fails signature verification.
func (s *SessionStore) Token(r *http.Request) string {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[sessionTokenKey].(string)
	return token
}

// SetToken writes the access token into the session cookie on the
// response.
func (s *SessionStore) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[sessionTokenKey] = token
	return session.Save(r, w)
}
