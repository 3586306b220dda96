package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics-insight/internal/features/shipments/domain"
	"logistics-insight/internal/features/shipments/ports"
)

// ErrShipmentNotFound is returned when the requested shipment does not exist.
var ErrShipmentNotFound = errors.New("shipment not found")

// ErrInvalidDate is returned when a stats date is not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ShipmentService exposes the query surface over the current dataset.
type ShipmentService struct {
	repo ports.ShipmentRepository
}

// NewShipmentService creates a new ShipmentService.
func NewShipmentService(repo ports.ShipmentRepository) *ShipmentService {
	return &ShipmentService{
		repo: repo,
	}
}

// List returns up to limit shipments, most recently created first.
func (s *ShipmentService) List(ctx context.Context, limit int) ([]domain.Shipment, error) {
	shipments, err := s.repo.ListAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return shipments, nil
}

// Get returns one shipment by id.
func (s *ShipmentService) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	shipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	return shipment, nil
}

// Events returns the timeline of a shipment ordered by timestamp.
func (s *ShipmentService) Events(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error) {
	events, err := s.repo.ListEvents(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list events: %w", err)
	}
	return events, nil
}

// DailyStats returns the per-day summary for the given YYYY-MM-DD date.
// An empty date defaults to today.
func (s *ShipmentService) DailyStats(ctx context.Context, date string) (*domain.DailyStats, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	stats, err := s.repo.DailyStats(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("service: failed to compute daily stats: %w", err)
	}
	return stats, nil
}

// Reset clears the whole dataset.
func (s *ShipmentService) Reset(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return fmt.Errorf("service: failed to clear dataset: %w", err)
	}
	return nil
}
