package web

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"spotify-insights/internal/spotify"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultFrontendURL is where the callback sends the browser after a
	// successful token exchange.
	DefaultFrontendURL = "/profile"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr          string
	SessionSecret string
	FrontendURL   string
	Spotify       spotify.Config
	Logger        *log.Logger
	TemplatesFS   fs.FS
	StaticFS      fs.FS
}

// Server is the HTTP server for the application.
type Server struct {
	router   chi.Router
	server   *http.Server
	logger   *log.Logger
	sessions *SessionStore
	handlers *Handlers
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = DefaultFrontendURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	sessions := NewSessionStore(cfg.SessionSecret)
	client := spotify.NewClient(cfg.Spotify)
	handlers := NewHandlers(client, sessions, templates, logger, cfg.FrontendURL)

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		logger:   logger,
		sessions: sessions,
		handlers: handlers,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(requireJSONBody)
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(staticFS fs.FS) {
	h := s.handlers

	// Static files
	fileServer := http.FileServer(http.FS(staticFS))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Pages
	s.router.Get("/", h.Home)
	s.router.Get("/profile", h.ProfilePage)

	// Auth flow
	s.router.Get("/login", h.Login)
	s.router.Get("/callback", h.Callback)

	// Bearer-gated proxy API
	s.router.Route("/api", func(r chi.Router) {
		r.Use(RequireBearer)
		r.Get("/profile", h.APIProfile)
		r.Get("/top-artists", h.APITopArtists)
		r.Get("/top-tracks", h.APITopTracks)
		r.Get("/user", h.APIUser)
		r.Get("/artist/{id}", h.APIArtist)
		r.Get("/album/{id}", h.APIAlbum)
		r.Get("/song/{id}", h.APISong)
		r.Get("/playlist/{id}", h.APIPlaylist)
	})

	// Calculator
	s.router.Post("/add", h.Add)
	s.router.Options("/add", h.AddOptions)
	s.router.Post("/subtract", h.Subtract)
	s.router.Post("/multiply", h.Multiply)
	s.router.Post("/square", h.Square)
	s.router.Post("/divide", h.Divide)

	// Operational
	s.router.Get("/health", h.Health)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondClientError(w, http.StatusNotFound, "Not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondClientError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
