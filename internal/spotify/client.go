package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"spotify-insights/internal/apierr"
)

const (
	authorizeEndpoint = "https://accounts.spotify.com/authorize"
	tokenEndpoint     = "https://accounts.spotify.com/api/token"
	apiBaseURL        = "https://api.spotify.com/v1"
)

// Defaults for the top-artists/top-tracks endpoints.
const (
	defaultTimeRange = "medium_term"
	defaultLimit     = 20
)

// scopes are requested during authorization; they cover the profile and
// top-items reads the proxy exposes.
var scopes = []string{"user-read-private", "user-read-email", "user-top-read"}

// Client calls the Spotify accounts service and Web API. Every operation is
// a single HTTP round trip with no retry or caching; failures come back as
// tagged apierr values the HTTP surface renders directly.
type Client struct {
	cfg        Config
	httpClient *http.Client

	// Endpoint fields default to the production URLs, overridden in tests.
	authorizeURL string
	tokenURL     string
	apiBase      string
}

// NewClient creates a Spotify client with the given credentials.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		authorizeURL: authorizeEndpoint,
		tokenURL:     tokenEndpoint,
		apiBase:      apiBaseURL,
	}
}

// AuthURL returns the authorization URL requesting the three read scopes.
func (c *Client) AuthURL() (string, error) {
	if err := c.checkConfig(false); err != nil {
		return "", err
	}
	return c.oauthConfig().AuthCodeURL(""), nil
}

// ExchangeCode trades an authorization code for a token. The token endpoint
// receives the client credentials in the form body. On a non-2xx response
// the error_description from the body (defaulting to "Unknown error") is
// folded into the returned error.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, apierr.New(apierr.KindToken, "Authorization code is required")
	}
	if err := c.checkConfig(true); err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			msg := retrieveErr.ErrorDescription
			if msg == "" {
				msg = "Unknown error"
			}
			return nil, apierr.NewAPI("Failed to get access token: "+msg, 0)
		}
		return nil, apierr.NewAPI(fmt.Sprintf("Failed to get access token: %v", err), 0)
	}
	return token, nil
}

// Profile fetches the authenticated user's profile verbatim.
func (c *Client) Profile(ctx context.Context, token string) (json.RawMessage, error) {
	return c.get(ctx, token, "/me", "profile")
}

// TopArtists fetches the user's top artists. Zero values select the
// defaults (medium_term, 20). A 2xx body must be an object with an items
// field; anything else is an invalid-response error, never an empty success.
func (c *Client) TopArtists(ctx context.Context, token, timeRange string, limit int) (json.RawMessage, error) {
	body, err := c.get(ctx, token, topPath("/me/top/artists", timeRange, limit), "top artists")
	if err != nil {
		return nil, err
	}
	return requireItems(body, "top artists")
}

// TopTracks mirrors TopArtists for the user's top tracks.
func (c *Client) TopTracks(ctx context.Context, token, timeRange string, limit int) (json.RawMessage, error) {
	body, err := c.get(ctx, token, topPath("/me/top/tracks", timeRange, limit), "top tracks")
	if err != nil {
		return nil, err
	}
	return requireItems(body, "top tracks")
}

// Artist fetches one artist by id, verbatim.
func (c *Client) Artist(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.get(ctx, token, "/artists/"+url.PathEscape(id), "artist")
}

// Album fetches one album by id, verbatim.
func (c *Client) Album(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.get(ctx, token, "/albums/"+url.PathEscape(id), "album")
}

// Track fetches one track by id, verbatim.
func (c *Client) Track(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.get(ctx, token, "/tracks/"+url.PathEscape(id), "track")
}

// Playlist fetches one playlist by id, verbatim.
func (c *Client) Playlist(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.get(ctx, token, "/playlists/"+url.PathEscape(id), "playlist")
}

// checkConfig validates the credentials an operation needs. A redirect URI
// that does not end in /callback is a deployment mistake; it is rejected
// here rather than silently rewritten.
func (c *Client) checkConfig(needSecret bool) error {
	if c.cfg.ClientID == "" || c.cfg.RedirectURI == "" {
		return apierr.New(apierr.KindMissingConfig,
			"Missing required environment variables: SPOTIFY_CLIENT_ID or SPOTIFY_REDIRECT_URI")
	}
	if needSecret && c.cfg.ClientSecret == "" {
		return apierr.New(apierr.KindMissingConfig,
			"Missing required environment variable: SPOTIFY_CLIENT_SECRET")
	}
	if !strings.HasSuffix(c.cfg.RedirectURI, CallbackPath) {
		return apierr.New(apierr.KindMissingConfig,
			"SPOTIFY_REDIRECT_URI must end with "+CallbackPath)
	}
	return nil
}

func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.authorizeURL,
			TokenURL: c.tokenURL,
			// Spotify accepts the client credentials in the POST body.
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// get performs one authenticated GET against the Web API. what names the
// resource in error messages ("profile", "artist", ...).
func (c *Client) get(ctx context.Context, token, path, what string) (json.RawMessage, error) {
	if token == "" {
		return nil, apierr.New(apierr.KindToken, "Access token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return nil, apierr.NewAPI(fmt.Sprintf("Failed to get %s: %v", what, err), 0)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures surface the same way as upstream rejections.
		return nil, apierr.NewAPI(fmt.Sprintf("Failed to get %s: %v", what, err), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.NewAPI(fmt.Sprintf("Failed to get %s: %v", what, err), 0)
	}

	if resp.StatusCode != http.StatusOK {
		status := 0
		if resp.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		return nil, apierr.NewAPI(fmt.Sprintf("Failed to get %s: %s", what, upstreamMessage(body)), status)
	}

	return body, nil
}

func topPath(base, timeRange string, limit int) string {
	if timeRange == "" {
		timeRange = defaultTimeRange
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	params := url.Values{
		"time_range": {timeRange},
		"limit":      {strconv.Itoa(limit)},
	}
	return base + "?" + params.Encode()
}

// requireItems enforces the structural contract of the top-* endpoints:
// a JSON object carrying an items field.
func requireItems(body json.RawMessage, what string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, apierr.New(apierr.KindInvalidResponse, "Invalid response format from Spotify API for "+what)
	}
	if _, ok := obj["items"]; !ok {
		return nil, apierr.New(apierr.KindInvalidResponse, "Invalid response format from Spotify API for "+what)
	}
	return body, nil
}

// upstreamMessage pulls error.message out of a Spotify error body,
// defaulting to "Unknown error" for bodies with any other shape.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return "Unknown error"
	}
	return envelope.Error.Message
}
