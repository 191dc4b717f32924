package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"spotify-insights/internal/apierr"
	"spotify-insights/internal/models"
)

type ctxKey int

const bearerTokenKey ctxKey = 0

// RequireBearer gates the /api group on an Authorization header with the
// exact "Bearer " prefix. Without it the Spotify client is never invoked.
// An empty token after the prefix passes through and fails in the client.
func RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			respondClientError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}
		ctx := context.WithValue(r.Context(), bearerTokenKey, header[len(prefix):])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the token extracted by RequireBearer.
func bearerToken(r *http.Request) string {
	token, _ := r.Context().Value(bearerTokenKey).(string)
	return token
}

// APIProfile handles GET /api/profile: the upstream profile body passed
// through unchanged.
func (h *Handlers) APIProfile(w http.ResponseWriter, r *http.Request) {
	body, err := h.spotify.Profile(r.Context(), bearerToken(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// APITopArtists handles GET /api/top-artists. Optional time_range and
// limit query parameters fall back to the client defaults.
func (h *Handlers) APITopArtists(w http.ResponseWriter, r *http.Request) {
	timeRange, limit := topParams(r)
	body, err := h.spotify.TopArtists(r.Context(), bearerToken(r), timeRange, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// APITopTracks handles GET /api/top-tracks.
func (h *Handlers) APITopTracks(w http.ResponseWriter, r *http.Request) {
	timeRange, limit := topParams(r)
	body, err := h.spotify.TopTracks(r.Context(), bearerToken(r), timeRange, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// APIUser handles GET /api/user: the profile reshaped through the User
// model, unlike /api/profile's raw pass-through.
func (h *Handlers) APIUser(w http.ResponseWriter, r *http.Request) {
	body, err := h.spotify.Profile(r.Context(), bearerToken(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondModel(w, r, func() (any, error) { return models.UserFromJSON(body) })
}

// APIArtist handles GET /api/artist/{id}.
func (h *Handlers) APIArtist(w http.ResponseWriter, r *http.Request) {
	body, err := h.spotify.Artist(r.Context(), bearerToken(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondModel(w, r, func() (any, error) { return models.ArtistFromJSON(body) })
}

// APIAlbum handles GET /api/album/{id}.
func (h *Handlers) APIAlbum(w http.ResponseWriter, r *http.Request) {
	body, err := h.spotify.Album(r.Context(), bearerToken(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondModel(w, r, func() (any, error) { return models.AlbumFromJSON(body) })
}

// APISong handles GET /api/song/{id}, backed by the upstream track
// resource.
func (h *Handlers) APISong(w http.ResponseWriter, r *http.Request) {
	body, err := h.spotify.Track(r.Context(), bearerToken(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondModel(w, r, func() (any, error) { return models.SongFromJSON(body) })
}

// APIPlaylist handles GET /api/playlist/{id}.
func (h *Handlers) APIPlaylist(w http.ResponseWriter, r *http.Request) {
	body, err := h.spotify.Playlist(r.Context(), bearerToken(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondModel(w, r, func() (any, error) { return models.PlaylistFromJSON(body) })
}

// respondModel runs one reshape and writes the result. A 2xx upstream body
// that fails the reshape is a structural contract violation, rendered as
// an invalid-response error.
func (h *Handlers) respondModel(w http.ResponseWriter, r *http.Request, reshape func() (any, error)) {
	model, err := reshape()
	if err != nil {
		h.logger.Error("reshaping upstream body", "path", r.URL.Path, "err", err)
		h.respondError(w, r, apierr.New(apierr.KindInvalidResponse, ""))
		return
	}
	respondJSON(w, http.StatusOK, model)
}

// topParams reads the optional time_range and limit query parameters;
// zero values select the client defaults.
func topParams(r *http.Request) (string, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return r.URL.Query().Get("time_range"), limit
}
