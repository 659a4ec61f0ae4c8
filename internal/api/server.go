package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fitness-score-server/internal/domain"
	"github.com/fitness-score-server/internal/history"
	"github.com/fitness-score-server/internal/repository"
	"github.com/fitness-score-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	config *domain.Config
	log    *logrus.Logger
	scorer *service.Scorer
	store  history.Store
	trends *repository.TrendRepository
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance. The trend repository may be
// nil when the deployment runs on the SQLite backend; the monthly trend
// endpoint then falls back to range queries on the store.
func NewServer(
	cfg *domain.Config,
	logger *logrus.Logger,
	scorer *service.Scorer,
	store history.Store,
	trends *repository.TrendRepository,
) *Server {
	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	if cfg.Server.RequestsPerSecond > 0 {
		router.Use(rateLimitMiddleware(cfg.Server.RequestsPerSecond, cfg.Server.RequestBurst))
	}

	server := &Server{
		config: cfg,
		log:    logger,
		scorer: scorer,
		store:  store,
		trends: trends,
		router: router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/score", s.handleScore)
		v1.POST("/score/daily", s.handleDailyScore)
		v1.POST("/score/history", s.handleHistoryScores)
		v1.POST("/score/monthly", s.handleMonthlyAverage)
		v1.GET("/levels", s.handleLevels)

		v1.POST("/days", s.handleSaveDay)
		v1.GET("/days", s.handleListDays)
		v1.GET("/days/:date", s.handleGetDay)
		v1.GET("/days/:date/score", s.handleScoreStoredDay)

		v1.GET("/trend/monthly", s.handleMonthlyTrend)
	}
}
