package ports

import (
	"context"

	"logistics-insight/internal/features/shipments/domain"
)

// ShipmentRepository defines the secondary port for shipment persistence.
//
// All bulk writes are transactional as a whole: either every record in the
// batch is applied or none is. Lookup misses return (nil, nil); services
// translate those into their own sentinel errors.
type ShipmentRepository interface {
	// UpsertBatch inserts or fully overwrites each record by id.
	UpsertBatch(ctx context.Context, shipments []domain.Shipment) error

	// ReplaceAll atomically swaps the whole dataset: existing events and
	// shipments are deleted and the given records inserted in one
	// transaction. A failure leaves the previous dataset untouched.
	ReplaceAll(ctx context.Context, shipments []domain.Shipment) error

	// GetByID returns the shipment with the given id, or (nil, nil) when it
	// does not exist.
	GetByID(ctx context.Context, id string) (*domain.Shipment, error)

	// ListAll returns up to limit shipments, most recently created first.
	// A non-positive limit applies the default cap.
	ListAll(ctx context.Context, limit int) ([]domain.Shipment, error)

	// ListEvents returns the events of a shipment ordered by timestamp.
	ListEvents(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error)

	// ClearAll deletes all events and shipments in one transaction.
	ClearAll(ctx context.Context) error

	// DailyStats computes the per-day summary for a YYYY-MM-DD date directly
	// against the persisted rows.
	DailyStats(ctx context.Context, date string) (*domain.DailyStats, error)
}
