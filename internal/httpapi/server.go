// Package httpapi exposes the WBS services over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/wbs/internal/service"
	"github.com/gin-gonic/gin"
)

// Services are the use cases the HTTP surface is wired to.
type Services struct {
	Projects service.ProjectService
	Wbs      service.WbsService
	Export   service.ExportService
	Import   service.ImportService
}

type Server struct {
	svc    Services
	logger *slog.Logger
	router *gin.Engine
}

func NewServer(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{svc: svc, logger: logger, router: router}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/v1")
	v1.GET("/projects", s.handleListProjects)

	p := v1.Group("/projects/:project")
	{
		p.GET("/wbs", s.handleTree)
		p.GET("/timeline", s.handleTimeline)
		p.POST("/nodes", s.handleCreateNode)
		p.PATCH("/nodes/:id", s.handleUpdateNode)
		p.DELETE("/nodes/:id", s.handleDeleteNode)
		p.POST("/nodes/:id/:action", s.handleStructural)
		p.GET("/export.csv", s.handleExportCSV)
		p.GET("/export.json", s.handleExportJSON)
		p.POST("/import", s.handleImport)
	}
}

// Handler returns the router for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
