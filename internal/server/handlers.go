package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/digimosa/pii-redact/internal/config"
	"github.com/digimosa/pii-redact/internal/models"
	"github.com/digimosa/pii-redact/internal/pipeline"
	"github.com/digimosa/pii-redact/internal/storage"
	"github.com/digimosa/pii-redact/internal/templates"
	"github.com/digimosa/pii-redact/internal/whitelist"
)

type Handler struct {
	pipeline  *pipeline.Pipeline
	whitelist *whitelist.Whitelist
	store     *storage.Store
	cfg       *config.Config
}

// AnonymizeRequest is the single-text request body.
type AnonymizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// AnonymizeResponse augments the pipeline record with call-level timing.
type AnonymizeResponse struct {
	HasPII           bool               `json:"has_pii"`
	Detections       []models.Detection `json:"detections"`
	AnonymizedText   string             `json:"anonymized_text"`
	ProcessingTimeMs float64            `json:"processing_time_ms"`
}

// BatchRequest carries multiple independent texts.
type BatchRequest struct {
	Texts []string `json:"texts"`
}

// BatchResponse returns one record per input, same order.
type BatchResponse struct {
	Results          []models.ResultRecord `json:"results"`
	ProcessingTimeMs float64               `json:"processing_time_ms"`
}

// Anonymize handles POST /api/v1/anonymize.
func (h *Handler) Anonymize(c echo.Context) error {
	var req AnonymizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Language != "" && req.Language != "de" {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported language: "+req.Language)
	}

	start := time.Now()
	results, err := h.pipeline.ProcessBatch([]string{req.Text})
	if err != nil {
		return h.pipelineError(c, err)
	}
	elapsed := time.Since(start)

	h.audit(results, len(req.Text), elapsed)
	observe(results, elapsed)

	rec := results[0]
	return c.JSON(http.StatusOK, AnonymizeResponse{
		HasPII:           rec.HasPII,
		Detections:       rec.Detections,
		AnonymizedText:   rec.AnonymizedText,
		ProcessingTimeMs: roundMs(elapsed),
	})
}

// AnonymizeBatch handles POST /api/v1/anonymize/batch.
func (h *Handler) AnonymizeBatch(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	start := time.Now()
	results, err := h.pipeline.ProcessBatch(req.Texts)
	if err != nil {
		return h.pipelineError(c, err)
	}
	elapsed := time.Since(start)

	total := 0
	for _, t := range req.Texts {
		total += len(t)
	}
	h.audit(results, total, elapsed)
	observe(results, elapsed)

	return c.JSON(http.StatusOK, BatchResponse{
		Results:          results,
		ProcessingTimeMs: roundMs(elapsed),
	})
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":       "healthy",
		"model_loaded": h.pipeline != nil,
	})
}

// Dashboard serves the embedded review page.
func (h *Handler) Dashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, templates.DashboardHTML)
}

// WhitelistList handles GET /api/v1/whitelist.
func (h *Handler) WhitelistList(c echo.Context) error {
	if h.whitelist == nil {
		return c.JSON(http.StatusOK, []string{})
	}
	return c.JSON(http.StatusOK, h.whitelist.Items())
}

// WhitelistAdd handles POST /api/v1/whitelist.
func (h *Handler) WhitelistAdd(c echo.Context) error {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil || req.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "value cannot be empty")
	}
	if h.whitelist == nil {
		return echo.NewHTTPError(http.StatusConflict, "whitelist disabled")
	}
	if err := h.whitelist.Add(req.Value); err != nil {
		slog.Error("whitelist update failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save whitelist")
	}
	return c.NoContent(http.StatusOK)
}

// AuditRecent handles GET /api/v1/audit.
func (h *Handler) AuditRecent(c echo.Context) error {
	if h.store == nil {
		return c.JSON(http.StatusOK, []storage.RequestModel{})
	}
	reqs, err := h.store.RecentRequests(50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "audit query failed")
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *Handler) pipelineError(c echo.Context, err error) error {
	requestsTotal.WithLabelValues("error").Inc()
	if errors.Is(err, pipeline.ErrResourceUnavailable) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "PII pipeline not initialized")
	}
	slog.Error("inference failed", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "inference error")
}

func (h *Handler) audit(results []models.ResultRecord, inputLen int, elapsed time.Duration) {
	if h.store == nil {
		return
	}
	if err := h.store.RecordBatch(results, inputLen, elapsed); err != nil {
		slog.Warn("audit record failed", "error", err)
	}
}

func observe(results []models.ResultRecord, elapsed time.Duration) {
	requestsTotal.WithLabelValues("ok").Inc()
	requestDuration.Observe(elapsed.Seconds())
	for _, rec := range results {
		for _, d := range rec.Detections {
			detectionsTotal.WithLabelValues(string(d.Category)).Inc()
		}
	}
}

func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10.0) / 100.0
}
