// Package server provides the HTTP transport around the anonymization
// pipeline: the JSON API, the review dashboard, health and metrics.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/digimosa/pii-redact/internal/config"
	"github.com/digimosa/pii-redact/internal/pipeline"
	"github.com/digimosa/pii-redact/internal/storage"
	"github.com/digimosa/pii-redact/internal/whitelist"
)

// Server wraps the Echo instance and its collaborators.
type Server struct {
	echo    *echo.Echo
	handler *Handler
}

// New wires the routes. store may be nil (auditing disabled).
func New(cfg *config.Config, p *pipeline.Pipeline, wl *whitelist.Whitelist, store *storage.Store) *Server {
	e := echo.New()
	e.HideBanner = true

	h := &Handler{pipeline: p, whitelist: wl, store: store, cfg: cfg}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	e.GET("/", h.Dashboard)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/anonymize", h.Anonymize)
	api.POST("/anonymize/batch", h.AnonymizeBatch)
	api.GET("/whitelist", h.WhitelistList)
	api.POST("/whitelist", h.WhitelistAdd)
	api.GET("/audit", h.AuditRecent)

	return &Server{echo: e, handler: h}
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
