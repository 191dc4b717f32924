package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"spotify-insights/internal/models"
	"spotify-insights/internal/spotify"
)

// SpotifyClient is the outbound surface the handlers depend on. Tests
// substitute a stub; production wires *spotify.Client.
type SpotifyClient interface {
	AuthURL() (string, error)
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	Profile(ctx context.Context, token string) (json.RawMessage, error)
	TopArtists(ctx context.Context, token, timeRange string, limit int) (json.RawMessage, error)
	TopTracks(ctx context.Context, token, timeRange string, limit int) (json.RawMessage, error)
	Artist(ctx context.Context, token, id string) (json.RawMessage, error)
	Album(ctx context.Context, token, id string) (json.RawMessage, error)
	Track(ctx context.Context, token, id string) (json.RawMessage, error)
	Playlist(ctx context.Context, token, id string) (json.RawMessage, error)
}

var _ SpotifyClient = (*spotify.Client)(nil)

// Handlers contains the HTTP handlers for the application.
type Handlers struct {
	spotify     SpotifyClient
	sessions    *SessionStore
	templates   *Templates
	logger      *log.Logger
	frontendURL string
	instanceID  string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client SpotifyClient, sessions *SessionStore, templates *Templates, logger *log.Logger, frontendURL string) *Handlers {
	return &Handlers{
		spotify:     client,
		sessions:    sessions,
		templates:   templates,
		logger:      logger,
		frontendURL: frontendURL,
		instanceID:  uuid.NewString(),
	}
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := HomePageData{
		PageData: PageData{
			Title:       "Spotify Insights",
			CurrentPath: r.URL.Path,
		},
		Authenticated: h.sessions.Token(r) != "",
	}
	h.renderPage(w, "index", data)
}

// Login starts the Spotify OAuth flow (GET /login) with a redirect to the
// authorization URL.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.spotify.AuthURL()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles the OAuth callback (GET /callback?code=...): exchanges
// the code, stores the access token in the session, and redirects to the
// frontend. The redirect carries the token in the query string for the
// legacy frontend contract.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	token, err := h.spotify.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.sessions.SetToken(w, r, token.AccessToken); err != nil {
		h.respondError(w, r, fmt.Errorf("saving session: %w", err))
		return
	}

	dest := h.frontendURL + "?access_token=" + url.QueryEscape(token.AccessToken)
	http.Redirect(w, r, dest, http.StatusFound)
}

// ProfilePage handles the legacy profile page (GET /profile). Failures
// render an error string inside the page rather than a JSON body.
func (h *Handlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	data := ProfilePageData{
		PageData: PageData{
			Title:       "Your Spotify Profile",
			CurrentPath: r.URL.Path,
		},
	}

	token := h.sessions.Token(r)
	if token == "" {
		data.Error = "Not authenticated. Please log in first."
		h.renderPage(w, "profile", data)
		return
	}

	profile, artists, tracks, err := h.fetchProfileData(r.Context(), token)
	if err != nil {
		h.logger.Error("fetching profile page data", "err", err)
		data.Error = "Failed to get Spotify profile info: " + err.Error()
		h.renderPage(w, "profile", data)
		return
	}

	data.Profile = profile
	data.TopArtists = artists
	data.TopTracks = tracks
	h.renderPage(w, "profile", data)
}

// Health reports liveness (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"instance_id": h.instanceID,
	})
}

// fetchProfileData issues the three upstream calls sequentially; the first
// failure aborts the whole page.
func (h *Handlers) fetchProfileData(ctx context.Context, token string) (*models.User, []*models.Artist, []*models.Song, error) {
	rawProfile, err := h.spotify.Profile(ctx, token)
	if err != nil {
		return nil, nil, nil, err
	}
	profile, err := models.UserFromJSON(rawProfile)
	if err != nil {
		return nil, nil, nil, err
	}

	rawArtists, err := h.spotify.TopArtists(ctx, token, "", 0)
	if err != nil {
		return nil, nil, nil, err
	}
	artists, err := artistItems(rawArtists)
	if err != nil {
		return nil, nil, nil, err
	}

	rawTracks, err := h.spotify.TopTracks(ctx, token, "", 0)
	if err != nil {
		return nil, nil, nil, err
	}
	tracks, err := songItems(rawTracks)
	if err != nil {
		return nil, nil, nil, err
	}

	return profile, artists, tracks, nil
}

// artistItems reshapes the items of a top-artists response.
func artistItems(body json.RawMessage) ([]*models.Artist, error) {
	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding top artists: %w", err)
	}

	artists := make([]*models.Artist, 0, len(page.Items))
	for _, item := range page.Items {
		artist, err := models.ArtistFromJSON(item)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, nil
}

// songItems reshapes the items of a top-tracks response.
func songItems(body json.RawMessage) ([]*models.Song, error) {
	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding top tracks: %w", err)
	}

	songs := make([]*models.Song, 0, len(page.Items))
	for _, item := range page.Items {
		song, err := models.SongFromJSON(item)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// renderPage writes an HTML page, falling back to a plain 500 when the
// template itself fails.
func (h *Handlers) renderPage(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		h.logger.Error("rendering template", "page", page, "err", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}
