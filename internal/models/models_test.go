package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestUserFromJSON(t *testing.T) {
	payload := []byte(`{
		"id": "mock_user_id",
		"display_name": "Test User",
		"email": "test@example.com",
		"country": "DE",
		"product": "premium",
		"followers": {"href": null, "total": 42},
		"images": [
			{"url": "https://example.com/large.jpg", "height": 640, "width": 640},
			{"url": "https://example.com/small.jpg", "height": 64, "width": 64}
		],
		"external_urls": {"spotify": "https://open.spotify.com/user/mock_user_id"},
		"href": "https://api.spotify.com/v1/users/mock_user_id",
		"uri": "spotify:user:mock_user_id",
		"type": "user"
	}`)

	u, err := UserFromJSON(payload)
	if err != nil {
		t.Fatalf("UserFromJSON() error = %v", err)
	}

	if u.ID != "mock_user_id" {
		t.Errorf("ID = %q, want mock_user_id", u.ID)
	}
	if u.DisplayName != "Test User" {
		t.Errorf("DisplayName = %q, want Test User", u.DisplayName)
	}
	if u.Followers.Total != 42 {
		t.Errorf("Followers.Total = %d, want 42", u.Followers.Total)
	}
	if len(u.Images) != 2 || u.Images[0].Height != 640 {
		t.Errorf("Images = %+v, want two entries largest first", u.Images)
	}
	if u.ExternalURLs["spotify"] != "https://open.spotify.com/user/mock_user_id" {
		t.Errorf("ExternalURLs = %v, want spotify entry", u.ExternalURLs)
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want construction timestamp")
	}

	// The upstream "type" field has no place in the model.
	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var shape map[string]any
	if err := json.Unmarshal(out, &shape); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := shape["type"]; ok {
		t.Error("serialized user still carries the upstream type field")
	}
	if _, ok := shape["created_at"]; !ok {
		t.Error("serialized user is missing created_at")
	}
}

func TestUserFromJSON_Defaults(t *testing.T) {
	u, err := UserFromJSON([]byte(`{"id": "bare"}`))
	if err != nil {
		t.Fatalf("UserFromJSON() error = %v", err)
	}

	if u.Followers.Total != 0 {
		t.Errorf("Followers.Total = %d, want 0", u.Followers.Total)
	}
	if u.Images == nil || len(u.Images) != 0 {
		t.Errorf("Images = %v, want empty non-nil slice", u.Images)
	}
	if u.ExternalURLs == nil || len(u.ExternalURLs) != 0 {
		t.Errorf("ExternalURLs = %v, want empty non-nil map", u.ExternalURLs)
	}
	if u.DisplayName != "" {
		t.Errorf("DisplayName = %q, want empty", u.DisplayName)
	}
}

func TestUserFromJSON_MissingID(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"absent", `{"display_name": "No ID"}`},
		{"empty", `{"id": "", "display_name": "Empty ID"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UserFromJSON([]byte(tt.payload))
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("UserFromJSON() error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestUserFromJSON_InvalidJSON(t *testing.T) {
	_, err := UserFromJSON([]byte(`not json`))
	if err == nil {
		t.Fatal("UserFromJSON() error = nil, want decode error")
	}
	if errors.Is(err, ErrMissingField) {
		t.Errorf("UserFromJSON() error = %v, want a decode error, not ErrMissingField", err)
	}
}

func TestArtistFromJSON(t *testing.T) {
	payload := []byte(`{
		"id": "artist1",
		"name": "Artist One",
		"genres": ["rock", "indie"],
		"popularity": 73,
		"images": [{"url": "https://example.com/artist1.jpg", "height": 640, "width": 640}],
		"followers": {"total": 120345}
	}`)

	a, err := ArtistFromJSON(payload)
	if err != nil {
		t.Fatalf("ArtistFromJSON() error = %v", err)
	}

	if a.Name != "Artist One" {
		t.Errorf("Name = %q, want Artist One", a.Name)
	}
	if len(a.Genres) != 2 || a.Genres[0] != "rock" {
		t.Errorf("Genres = %v, want [rock indie]", a.Genres)
	}
	if a.Popularity != 73 {
		t.Errorf("Popularity = %d, want 73", a.Popularity)
	}
	if a.Followers.Total != 120345 {
		t.Errorf("Followers.Total = %d, want 120345", a.Followers.Total)
	}
}

func TestArtistFromJSON_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing id", `{"name": "Nameless"}`},
		{"missing name", `{"id": "artist1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ArtistFromJSON([]byte(tt.payload))
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("ArtistFromJSON() error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestAlbumFromJSON(t *testing.T) {
	payload := []byte(`{
		"id": "album1",
		"name": "Album One",
		"album_type": "album",
		"artists": [{"id": "artist1", "name": "Artist One", "uri": "spotify:artist:artist1"}],
		"available_markets": ["DE", "US"],
		"release_date": "2001-06-12",
		"release_date_precision": "day",
		"total_tracks": 11,
		"label": "Some Label",
		"popularity": 64
	}`)

	a, err := AlbumFromJSON(payload)
	if err != nil {
		t.Fatalf("AlbumFromJSON() error = %v", err)
	}

	if a.AlbumType != "album" {
		t.Errorf("AlbumType = %q, want album", a.AlbumType)
	}
	if len(a.Artists) != 1 || a.Artists[0]["name"] != "Artist One" {
		t.Errorf("Artists = %v, want the upstream reference passed through", a.Artists)
	}
	if a.TotalTracks != 11 {
		t.Errorf("TotalTracks = %d, want 11", a.TotalTracks)
	}
	if a.ReleaseDatePrecision != "day" {
		t.Errorf("ReleaseDatePrecision = %q, want day", a.ReleaseDatePrecision)
	}
}

func TestAlbumFromJSON_Defaults(t *testing.T) {
	a, err := AlbumFromJSON([]byte(`{"id": "album1", "name": "Bare Album"}`))
	if err != nil {
		t.Fatalf("AlbumFromJSON() error = %v", err)
	}

	if a.TotalTracks != 0 {
		t.Errorf("TotalTracks = %d, want 0", a.TotalTracks)
	}
	if a.Artists == nil || a.AvailableMarkets == nil || a.Genres == nil {
		t.Error("reference lists should default to empty, not nil")
	}
}

func TestSongFromJSON(t *testing.T) {
	payload := []byte(`{
		"id": "track1",
		"name": "Track One",
		"album": {"id": "album1", "name": "Album One", "images": [{"url": "https://example.com/album1.jpg"}]},
		"artists": [{"id": "artist1", "name": "Artist One"}],
		"duration_ms": 215000,
		"explicit": true,
		"is_local": false,
		"popularity": 58,
		"preview_url": "https://p.scdn.co/mp3-preview/track1",
		"track_number": 3,
		"disc_number": 1
	}`)

	s, err := SongFromJSON(payload)
	if err != nil {
		t.Fatalf("SongFromJSON() error = %v", err)
	}

	if s.DurationMS != 215000 {
		t.Errorf("DurationMS = %d, want 215000", s.DurationMS)
	}
	if !s.Explicit {
		t.Error("Explicit = false, want true")
	}
	if s.PreviewURL == nil || *s.PreviewURL != "https://p.scdn.co/mp3-preview/track1" {
		t.Errorf("PreviewURL = %v, want preview link", s.PreviewURL)
	}
	if s.Album["name"] != "Album One" {
		t.Errorf("Album = %v, want the upstream reference passed through", s.Album)
	}
	if s.PlayCount != 0 {
		t.Errorf("PlayCount = %d, want 0", s.PlayCount)
	}
}

// Audio features come from an endpoint this backend never calls; the fields
// must stay null in the serialized output rather than collapsing to zero.
func TestSong_UnpopulatedFieldsSerializeNull(t *testing.T) {
	s, err := SongFromJSON([]byte(`{"id": "track1", "name": "Track One"}`))
	if err != nil {
		t.Fatalf("SongFromJSON() error = %v", err)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var shape map[string]any
	if err := json.Unmarshal(out, &shape); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, field := range []string{"danceability", "energy", "tempo", "time_signature", "preview_url", "last_played"} {
		v, ok := shape[field]
		if !ok {
			t.Errorf("serialized song is missing %q", field)
			continue
		}
		if v != nil {
			t.Errorf("%s = %v, want null", field, v)
		}
	}
}

func TestPlaylistFromJSON(t *testing.T) {
	payload := []byte(`{
		"id": "playlist1",
		"name": "Road Trip",
		"description": "Songs for the road",
		"owner": {"id": "mock_user_id", "display_name": "Test User"},
		"public": true,
		"collaborative": false,
		"snapshot_id": "snap123",
		"tracks": {"href": "https://api.spotify.com/v1/playlists/playlist1/tracks", "total": 25},
		"followers": {"total": 7}
	}`)

	p, err := PlaylistFromJSON(payload)
	if err != nil {
		t.Fatalf("PlaylistFromJSON() error = %v", err)
	}

	if p.Owner["display_name"] != "Test User" {
		t.Errorf("Owner = %v, want the upstream reference passed through", p.Owner)
	}
	if !p.Public {
		t.Error("Public = false, want true")
	}
	if p.Tracks["total"] != float64(25) {
		t.Errorf("Tracks = %v, want total 25", p.Tracks)
	}
	if p.AnalysisScore != nil || p.TempoConsistency != nil {
		t.Error("analysis fields should stay nil without a producer")
	}
	if p.Recommendations == nil || len(p.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want empty non-nil slice", p.Recommendations)
	}
}

func TestPlaylistFromJSON_RequiredFields(t *testing.T) {
	_, err := PlaylistFromJSON([]byte(`{"id": "playlist1"}`))
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("PlaylistFromJSON() error = %v, want ErrMissingField", err)
	}
}
