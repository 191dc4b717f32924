package spotify

import (
	"os"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	vars := []string{"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REDIRECT_URI"}

	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "all set",
			env: map[string]string{
				"SPOTIFY_CLIENT_ID":     "client123",
				"SPOTIFY_CLIENT_SECRET": "secret456",
				"SPOTIFY_REDIRECT_URI":  "http://127.0.0.1:8080/callback",
			},
			want: Config{
				ClientID:     "client123",
				ClientSecret: "secret456",
				RedirectURI:  "http://127.0.0.1:8080/callback",
			},
		},
		{
			name: "none set",
			env:  map[string]string{},
			want: Config{},
		},
		{
			name: "partial",
			env:  map[string]string{"SPOTIFY_CLIENT_ID": "client123"},
			want: Config{ClientID: "client123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore env vars
			for _, key := range vars {
				original, had := os.LookupEnv(key)
				defer func(key, original string, had bool) {
					if had {
						os.Setenv(key, original)
					} else {
						os.Unsetenv(key)
					}
				}(key, original, had)
				os.Unsetenv(key)
			}
			for key, value := range tt.env {
				os.Setenv(key, value)
			}

			if got := ConfigFromEnv(); got != tt.want {
				t.Errorf("ConfigFromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
