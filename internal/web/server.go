package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/session"
)

const (
	sessionCookie   = "talent_scout_session"
	shutdownTimeout = 5 * time.Second
)

//go:embed templates/*.html
var templatesFS embed.FS

// Config holds the HTTP server settings.
type Config struct {
	Listen     string
	SessionTTL time.Duration
}

// Generator is the question generator used by the handlers.
type Generator interface {
	session.Generator
	AIEnabled() bool
}

// Server serves the candidate form, the generated questions and the chat.
type Server struct {
	cfg    Config
	gen    Generator
	store  *session.Store
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the server and its routes.
func New(cfg Config, gen Generator, log *zap.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("question generator is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := candidate.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("register validators: %w", err)
		}
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		gen:    gen,
		store:  session.NewStore(cfg.SessionTTL),
		logger: log,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(securityHeaders())
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.index)
	engine.POST("/candidates", s.submitCandidate)
	engine.POST("/chat", s.chat)
	engine.GET("/questions.xlsx", s.exportQuestions)
	engine.GET("/healthz", s.health)

	api := engine.Group("/api")
	api.POST("/questions", s.generateQuestions)

	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", s.cfg.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if s.cfg.SessionTTL > 0 {
		go s.pruneSessions(ctx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SessionTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.store.Prune(); removed > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", removed))
			}
		}
	}
}

// currentSession returns the session referenced by the request cookie.
func (s *Server) currentSession(c *gin.Context) (session.State, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return session.State{}, false
	}

	state, err := s.store.Get(id)
	if err != nil {
		return session.State{}, false
	}
	return state, true
}

func (s *Server) setSessionCookie(c *gin.Context, id string) {
	maxAge := 0
	if s.cfg.SessionTTL > 0 {
		maxAge = int(s.cfg.SessionTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, maxAge, "/", "", false, true)
}
