// Package web serves the portfolio chat over HTTP: an HTML chat page and a
// small JSON API, both backed by per-visitor folio sessions.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/fwojciec/folio"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	// SessionCookie holds the visitor's session ID.
	SessionCookie = "folio_session"

	DefaultSessionIdleTimeout = 30 * time.Minute

	reapInterval    = time.Minute
	shutdownTimeout = 10 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/chat.html"))

// Topics are listed on the chat page as suggested subjects.
var Topics = []string{"Technology", "Machine Learning", "Web Development", "Data Science"}

// Config configures a [Server].
type Config struct {
	Addr    string
	Factory GatewayFactory
	Logger  zerolog.Logger
	// SessionIdleTimeout is how long an untouched session is kept.
	SessionIdleTimeout time.Duration
	// AvatarURI is a data URI for the profile picture. Empty shows a
	// placeholder.
	AvatarURI string
	// Title is the page heading.
	Title string
	// ModelName is shown under the heading.
	ModelName string
}

// Server is the HTTP chat surface.
type Server struct {
	router   *chi.Mux
	sessions *Sessions
	logger   zerolog.Logger
	config   Config
}

// NewServer returns a Server with routes and middleware installed.
func NewServer(cfg Config) *Server {
	if cfg.SessionIdleTimeout == 0 {
		cfg.SessionIdleTimeout = DefaultSessionIdleTimeout
	}
	if cfg.Title == "" {
		cfg.Title = "AI Assistant"
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(cfg.Logger))
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		sessions: NewSessions(cfg.Factory),
		logger:   cfg.Logger,
		config:   cfg,
	}

	router.Get("/health", s.health)
	router.Get("/", s.page)
	router.Post("/chat", s.chat)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/messages", s.listMessages)
		r.Post("/messages", s.sendMessage)
		r.Post("/session/reset", s.resetSession)
	})

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Sessions returns the session registry.
func (s *Server) Sessions() *Sessions { return s.sessions }

// Start serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.janitor(ctx, reapInterval, s.config.SessionIdleTimeout, func(n int) {
		s.logger.Info().Int("sessions", n).Msg("reaped idle sessions")
	})

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("web server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("web server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// session returns the caller's session, creating one and setting the cookie
// when the request has none or it has expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*folio.Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, err := s.sessions.Get(c.Value); err == nil {
			return sess, nil
		}
	}
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("session", sess.ID()).Msg("session created")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// existingSession returns the caller's session without creating one.
func (s *Server) existingSession(r *http.Request) (*folio.Session, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, folio.ErrSessionNotFound
	}
	return s.sessions.Get(c.Value)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
