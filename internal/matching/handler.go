package matching

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-scribe/project-portal/methodology-engine/internal/matching/export"
	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

// Handler handles HTTP requests for methodology matching
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new matching handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers matching routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	methodologies := router.Group("/methodologies")
	{
		methodologies.GET("", h.listMethodologies)
		methodologies.GET("/:id", h.getMethodology)
		methodologies.POST("/match", h.matchMethodologies)
		methodologies.POST("/match/export", h.exportMatches)
	}

	feasibility := router.Group("/feasibility")
	{
		feasibility.POST("", h.assessFeasibility)
		feasibility.POST("/export", h.exportFeasibility)
	}
}

// listMethodologies handles GET /api/v1/methodologies
func (h *Handler) listMethodologies(c *gin.Context) {
	methodologies, err := h.service.ListMethodologies(c.Request.Context(), c.Query("standard"))
	if err != nil {
		h.respondError(c, err, "Failed to list methodologies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"methodologies": methodologies,
		"count":         len(methodologies),
	})
}

// getMethodology handles GET /api/v1/methodologies/:id
func (h *Handler) getMethodology(c *gin.Context) {
	m, err := h.service.GetMethodology(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get methodology", zap.String("methodology_id", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, m)
}

// matchMethodologies handles POST /api/v1/methodologies/match
func (h *Handler) matchMethodologies(c *gin.Context) {
	var project methodology.ProjectDescriptor
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := h.service.Match(c.Request.Context(), project, c.Query("mode"))
	if err != nil {
		h.respondError(c, err, "Failed to match methodologies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// assessFeasibility handles POST /api/v1/feasibility
func (h *Handler) assessFeasibility(c *gin.Context) {
	var project methodology.ProjectDescriptor
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.service.Assess(c.Request.Context(), project)
	if err != nil {
		h.respondError(c, err, "Failed to assess feasibility")
		return
	}

	c.JSON(http.StatusOK, results)
}

// exportMatches handles POST /api/v1/methodologies/match/export
func (h *Handler) exportMatches(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}

	var project methodology.ProjectDescriptor
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := h.service.Match(c.Request.Context(), project, c.Query("mode"))
	if err != nil {
		h.respondError(c, err, "Failed to match methodologies")
		return
	}

	h.writeExport(c, format, "methodology-matches", export.MatchTable(matches))
}

// exportFeasibility handles POST /api/v1/feasibility/export
func (h *Handler) exportFeasibility(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}

	var project methodology.ProjectDescriptor
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.service.Assess(c.Request.Context(), project)
	if err != nil {
		h.respondError(c, err, "Failed to assess feasibility")
		return
	}

	h.writeExport(c, format, "feasibility", export.FeasibilityTable(results))
}

func (h *Handler) exportFormat(c *gin.Context) (export.Format, bool) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return format, true
}

func (h *Handler) writeExport(c *gin.Context, format export.Format, name string, table export.Table) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, name, table); err != nil {
		h.logger.Error("Failed to export results", zap.Error(err), zap.String("format", string(format)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export results"})
		return
	}

	filename := fmt.Sprintf("%s.%s", name, format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// respondError maps service errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error, msg string, fields ...zap.Field) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, methodology.ErrInvalidMode),
		errors.Is(err, methodology.ErrUnknownStandard),
		errors.Is(err, ErrInvalidBoundary):
		status = http.StatusBadRequest
	case errors.Is(err, ErrMethodologyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, append(fields, zap.Error(err))...)
	} else {
		h.logger.Debug(msg, append(fields, zap.Error(err))...)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
