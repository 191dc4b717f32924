// Command spotify-insights runs the Spotify profile proxy and calculator API.
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"spotify-insights/internal/spotify"
	"spotify-insights/internal/web"
	webfs "spotify-insights/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is a development convenience; a missing file is not an error
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
	})

	// The Spotify credentials are validated lazily per operation; the
	// session secret is the one startup requirement.
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return fmt.Errorf("please set the SESSION_SECRET environment variable")
	}

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:          os.Getenv("ADDR"),
		SessionSecret: sessionSecret,
		FrontendURL:   os.Getenv("FRONTEND_URL"),
		Spotify:       spotify.ConfigFromEnv(),
		Logger:        logger,
		TemplatesFS:   templates,
		StaticFS:      static,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
