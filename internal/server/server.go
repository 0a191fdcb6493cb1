package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/router"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New creates a new server instance
func New(cfg *config.Config, db *gorm.DB, limiter middleware.Limiter, log *zap.Logger) *Server {
	r := router.SetupRouter(cfg, db, limiter, log)

	return &Server{
		router: r,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the routed engine, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.http.Shutdown(ctx)
}
