package handler

import (
	"errors"

	"logistics-insight/internal/features/analytics/domain"
	"logistics-insight/internal/features/analytics/service"

	"github.com/gofiber/fiber/v2"
)

// AnalyzeHandler handles HTTP requests for dataset analysis.
type AnalyzeHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analyticsService *service.AnalyticsService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyticsService: analyticsService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Success is always false for errors.
	Success bool `json:"success"`
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ReportResponse wraps a computed analysis report.
type ReportResponse struct {
	Success bool           `json:"success"`
	Report  *domain.Report `json:"report"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// Analyze computes the full report over the current dataset.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	report, err := h.analyticsService.Analyze(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "no shipment data to analyze, upload a CSV file first",
				RayID:   rayID(c),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(ReportResponse{Success: true, Report: report})
}

// LatestReport returns the cached snapshot of the last analysis.
func (h *AnalyzeHandler) LatestReport(c *fiber.Ctx) error {
	report, err := h.analyticsService.LatestReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "no cached analysis available",
			RayID:   rayID(c),
		})
	}

	return c.JSON(ReportResponse{Success: true, Report: report})
}
