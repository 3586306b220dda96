package handler

import (
	"errors"

	"logistics-insight/internal/features/shipments/domain"
	"logistics-insight/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
)

// ShipmentHandler handles HTTP requests for shipment queries.
type ShipmentHandler struct {
	shipmentService *service.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(shipmentService *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
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

// ShipmentListResponse wraps a page of shipments.
type ShipmentListResponse struct {
	Success bool              `json:"success"`
	Data    []domain.Shipment `json:"data"`
}

// ShipmentDetailResponse carries one shipment with its event timeline.
type ShipmentDetailResponse struct {
	Success  bool                   `json:"success"`
	Shipment *domain.Shipment       `json:"shipment"`
	Events   []domain.ShipmentEvent `json:"events"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// ListShipments returns the current dataset, newest first, bounded by the
// optional limit query parameter.
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	shipments, err := h.shipmentService.List(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(ShipmentListResponse{Success: true, Data: shipments})
}

// GetShipment returns one shipment together with its event timeline.
func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "shipment id is required",
			RayID:   rayID(c),
		})
	}

	shipment, err := h.shipmentService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShipmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "shipment not found",
				RayID:   rayID(c),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	events, err := h.shipmentService.Events(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(ShipmentDetailResponse{Success: true, Shipment: shipment, Events: events})
}

// ListEvents returns the event timeline of a shipment.
func (h *ShipmentHandler) ListEvents(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "shipment id is required",
			RayID:   rayID(c),
		})
	}

	events, err := h.shipmentService.Events(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{"success": true, "events": events})
}

// DailyStats returns the per-day summary for the optional date query
// parameter (YYYY-MM-DD, defaults to today).
func (h *ShipmentHandler) DailyStats(c *fiber.Ctx) error {
	stats, err := h.shipmentService.DailyStats(c.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{"success": true, "statistics": stats})
}

// Reset clears the whole dataset.
func (h *ShipmentHandler) Reset(c *fiber.Ctx) error {
	if err := h.shipmentService.Reset(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "all shipment data cleared"})
}
