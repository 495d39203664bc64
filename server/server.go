// Package server exposes the scoring pipeline over HTTP.
package server

import (
	// Go Internal Packages
	"context"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	models "fraud-service/models"

	// External Packages
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DetectorService is the scoring surface the handlers call into.
type DetectorService interface {
	Analyze(ctx context.Context, tx models.Transaction, source string) (models.AnalysisResult, error)
	UserRiskScore(ctx context.Context, userID string) (models.UserRiskScore, error)
}

type Server struct {
	logger   *zap.Logger
	detector DetectorService
	router   *gin.Engine
}

func New(logger *zap.Logger, detector DetectorService) *Server {
	s := &Server{logger: logger, detector: detector}

	router := gin.New()
	router.Use(gin.Recovery())
	s.registerRoutes(router)
	s.router = router
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.Health)
	router.POST("/analyze", s.AnalyzeTransaction)
	router.GET("/risk-score/:user_id", s.GetUserRiskScore)
}

// Handler returns the underlying http handler (used by tests).
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.Int("port", port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
