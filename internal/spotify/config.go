// Package spotify implements the outbound client for the Spotify accounts
// service and Web API: building the authorization URL, exchanging a code for
// a token, and the read-only resource fetches behind the proxy routes.
package spotify

import "os"

// CallbackPath is the suffix every redirect URI must end with.
const CallbackPath = "/callback"

// Config holds the Spotify application credentials.
//
// Reading the environment never fails. Each client operation validates the
// values it needs and returns a missing-config error when they are absent,
// so a process without credentials still starts and serves everything that
// does not touch Spotify.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// ConfigFromEnv reads SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and
// SPOTIFY_REDIRECT_URI.
func ConfigFromEnv() Config {
	return Config{
		ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("SPOTIFY_REDIRECT_URI"),
	}
}
