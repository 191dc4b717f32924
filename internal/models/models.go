// Package models defines the data-transfer objects the proxy API serves.
//
// Each type is built from exactly one upstream Spotify payload and
// serialized back out once; there is no update path and no persistence.
// Decoding into the struct is the reshape: upstream fields without a
// matching tag are dropped. String fields default to "", lists and maps to
// empty, and created_at records when the object was materialized here - it
// is not an upstream timestamp.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMissingField is returned when a payload lacks a required identifying field.
var ErrMissingField = errors.New("missing required field")

// Image is one entry of an upstream image list, largest first.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers carries the follower count for a user, artist, or playlist.
type Followers struct {
	Total int `json:"total"`
}

// User is the outward shape of a Spotify user profile.
type User struct {
	ID           string            `json:"id"`
	DisplayName  string            `json:"display_name"`
	Email        string            `json:"email"`
	Country      string            `json:"country"`
	Product      string            `json:"product"`
	Followers    Followers         `json:"followers"`
	Images       []Image           `json:"images"`
	ExternalURLs map[string]string `json:"external_urls"`
	Href         string            `json:"href"`
	URI          string            `json:"uri"`
	CreatedAt    time.Time         `json:"created_at"`
}

// UserFromJSON builds a User from one upstream profile payload.
// The id field is required; everything else takes a default.
func UserFromJSON(data []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decoding user payload: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("user: %w: id", ErrMissingField)
	}
	u.setDefaults()
	return &u, nil
}

func (u *User) setDefaults() {
	if u.Images == nil {
		u.Images = []Image{}
	}
	if u.ExternalURLs == nil {
		u.ExternalURLs = map[string]string{}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
}

// Artist is the outward shape of a Spotify artist.
type Artist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Genres       []string          `json:"genres"`
	Popularity   int               `json:"popularity"`
	Images       []Image           `json:"images"`
	ExternalURLs map[string]string `json:"external_urls"`
	Href         string            `json:"href"`
	URI          string            `json:"uri"`
	Followers    Followers         `json:"followers"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ArtistFromJSON builds an Artist from one upstream artist payload.
// Both id and name are required.
func ArtistFromJSON(data []byte) (*Artist, error) {
	var a Artist
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding artist payload: %w", err)
	}
	if a.ID == "" {
		return nil, fmt.Errorf("artist: %w: id", ErrMissingField)
	}
	if a.Name == "" {
		return nil, fmt.Errorf("artist: %w: name", ErrMissingField)
	}
	a.setDefaults()
	return &a, nil
}

func (a *Artist) setDefaults() {
	if a.Genres == nil {
		a.Genres = []string{}
	}
	if a.Images == nil {
		a.Images = []Image{}
	}
	if a.ExternalURLs == nil {
		a.ExternalURLs = map[string]string{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
}

// Album is the outward shape of a Spotify album. Artist entries stay
// untyped references, passed through as the upstream sent them.
type Album struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	AlbumType            string            `json:"album_type"`
	Artists              []map[string]any  `json:"artists"`
	AvailableMarkets     []string          `json:"available_markets"`
	ExternalURLs         map[string]string `json:"external_urls"`
	Href                 string            `json:"href"`
	Images               []Image           `json:"images"`
	ReleaseDate          string            `json:"release_date"`
	ReleaseDatePrecision string            `json:"release_date_precision"`
	TotalTracks          int               `json:"total_tracks"`
	URI                  string            `json:"uri"`
	Genres               []string          `json:"genres"`
	Label                string            `json:"label"`
	Popularity           int               `json:"popularity"`
	CreatedAt            time.Time         `json:"created_at"`
}

// AlbumFromJSON builds an Album from one upstream album payload.
// Both id and name are required.
func AlbumFromJSON(data []byte) (*Album, error) {
	var a Album
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding album payload: %w", err)
	}
	if a.ID == "" {
		return nil, fmt.Errorf("album: %w: id", ErrMissingField)
	}
	if a.Name == "" {
		return nil, fmt.Errorf("album: %w: name", ErrMissingField)
	}
	a.setDefaults()
	return &a, nil
}

func (a *Album) setDefaults() {
	if a.Artists == nil {
		a.Artists = []map[string]any{}
	}
	if a.AvailableMarkets == nil {
		a.AvailableMarkets = []string{}
	}
	if a.ExternalURLs == nil {
		a.ExternalURLs = map[string]string{}
	}
	if a.Images == nil {
		a.Images = []Image{}
	}
	if a.Genres == nil {
		a.Genres = []string{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
}

// Song is the outward shape of a Spotify track.
//
// The audio-feature block comes from a separate upstream endpoint that this
// client does not call, and last_played/play_count have no producer yet;
// those fields serialize as null/zero until something populates them.
type Song struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Album            map[string]any    `json:"album"`
	Artists          []map[string]any  `json:"artists"`
	AvailableMarkets []string          `json:"available_markets"`
	DiscNumber       int               `json:"disc_number"`
	DurationMS       int               `json:"duration_ms"`
	Explicit         bool              `json:"explicit"`
	ExternalURLs     map[string]string `json:"external_urls"`
	Href             string            `json:"href"`
	IsLocal          bool              `json:"is_local"`
	Popularity       int               `json:"popularity"`
	PreviewURL       *string           `json:"preview_url"`
	TrackNumber      int               `json:"track_number"`
	URI              string            `json:"uri"`

	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Key              *int     `json:"key"`
	Loudness         *float64 `json:"loudness"`
	Mode             *int     `json:"mode"`
	Speechiness      *float64 `json:"speechiness"`
	Acousticness     *float64 `json:"acousticness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Liveness         *float64 `json:"liveness"`
	Valence          *float64 `json:"valence"`
	Tempo            *float64 `json:"tempo"`
	TimeSignature    *int     `json:"time_signature"`

	LastPlayed *time.Time `json:"last_played"`
	PlayCount  int        `json:"play_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SongFromJSON builds a Song from one upstream track payload.
// Both id and name are required.
func SongFromJSON(data []byte) (*Song, error) {
	var s Song
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding song payload: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("song: %w: id", ErrMissingField)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("song: %w: name", ErrMissingField)
	}
	s.setDefaults()
	return &s, nil
}

func (s *Song) setDefaults() {
	if s.Album == nil {
		s.Album = map[string]any{}
	}
	if s.Artists == nil {
		s.Artists = []map[string]any{}
	}
	if s.AvailableMarkets == nil {
		s.AvailableMarkets = []string{}
	}
	if s.ExternalURLs == nil {
		s.ExternalURLs = map[string]string{}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
}

// Playlist is the outward shape of a Spotify playlist.
//
// The analysis block (analysis_score through recommendations) is reserved
// schema with no producer; it serializes as null/empty.
type Playlist struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Owner         map[string]any    `json:"owner"`
	Public        bool              `json:"public"`
	Collaborative bool              `json:"collaborative"`
	ExternalURLs  map[string]string `json:"external_urls"`
	Href          string            `json:"href"`
	Images        []Image           `json:"images"`
	SnapshotID    string            `json:"snapshot_id"`
	Tracks        map[string]any    `json:"tracks"`
	URI           string            `json:"uri"`
	Followers     Followers         `json:"followers"`

	AnalysisScore    *float64  `json:"analysis_score"`
	TempoConsistency *float64  `json:"tempo_consistency"`
	KeyConsistency   *float64  `json:"key_consistency"`
	EnergyFlow       *float64  `json:"energy_flow"`
	GenreDiversity   *float64  `json:"genre_diversity"`
	Recommendations  []string  `json:"recommendations"`
	CreatedAt        time.Time `json:"created_at"`
}

// PlaylistFromJSON builds a Playlist from one upstream playlist payload.
// Both id and name are required.
func PlaylistFromJSON(data []byte) (*Playlist, error) {
	var p Playlist
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding playlist payload: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("playlist: %w: id", ErrMissingField)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("playlist: %w: name", ErrMissingField)
	}
	p.setDefaults()
	return &p, nil
}

func (p *Playlist) setDefaults() {
	if p.Owner == nil {
		p.Owner = map[string]any{}
	}
	if p.ExternalURLs == nil {
		p.ExternalURLs = map[string]string{}
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
	if p.Tracks == nil {
		p.Tracks = map[string]any{}
	}
	if p.Recommendations == nil {
		p.Recommendations = []string{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}
