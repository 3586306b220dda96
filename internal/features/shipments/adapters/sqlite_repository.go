package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"logistics-insight/internal/core/logger"
	"logistics-insight/internal/features/shipments/domain"

	"go.uber.org/zap"
)

const (
	// defaultListLimit caps ListAll when the caller does not bound the query.
	defaultListLimit = 10000

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// SqliteShipmentRepository implements the ShipmentRepository port on SQLite.
type SqliteShipmentRepository struct {
	db *sql.DB
}

// NewSqliteShipmentRepository creates a new SqliteShipmentRepository.
func NewSqliteShipmentRepository(db *sql.DB) *SqliteShipmentRepository {
	return &SqliteShipmentRepository{db: db}
}

const upsertShipmentQuery = `
INSERT OR REPLACE INTO shipments
	(id, origin, destination, origin_city, destination_city, status,
	 estimated_delivery, actual_delivery, weight, dimensions, customer_id,
	 courier_company, courier, package_type, priority, customer_type,
	 payment_method, shipping_fee, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// UpsertBatch inserts or overwrites each shipment by id inside a single
// transaction. Any row failure rolls the whole batch back.
func (r *SqliteShipmentRepository) UpsertBatch(ctx context.Context, shipments []domain.Shipment) error {
	if r.db == nil {
		return errors.New("sqlite shipment repository: DB is nil")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert shipments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertAll(ctx, tx, shipments); err != nil {
		return fmt.Errorf("upsert shipments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert shipments: commit tx: %w", err)
	}

	logger.Get().Info("Shipments upserted", zap.Int("count", len(shipments)))
	return nil
}

// ReplaceAll swaps the entire dataset in one transaction: delete events,
// delete shipments, insert the new batch. A reader never observes the
// mid-replace empty state and a failure leaves the old dataset in place.
func (r *SqliteShipmentRepository) ReplaceAll(ctx context.Context, shipments []domain.Shipment) error {
	if r.db == nil {
		return errors.New("sqlite shipment repository: DB is nil")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace shipments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Events first: the FK references shipments.
	if _, err := tx.ExecContext(ctx, `DELETE FROM shipment_events;`); err != nil {
		return fmt.Errorf("replace shipments: clear events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shipments;`); err != nil {
		return fmt.Errorf("replace shipments: clear shipments: %w", err)
	}

	if err := upsertAll(ctx, tx, shipments); err != nil {
		return fmt.Errorf("replace shipments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace shipments: commit tx: %w", err)
	}

	logger.Get().Info("Dataset replaced", zap.Int("count", len(shipments)))
	return nil
}

func upsertAll(ctx context.Context, tx *sql.Tx, shipments []domain.Shipment) error {
	stmt, err := tx.PrepareContext(ctx, upsertShipmentQuery)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range shipments {
		dims, err := json.Marshal(s.Dimensions)
		if err != nil {
			return fmt.Errorf("encode dimensions for id=%s: %w", s.ID, err)
		}

		createdAt := s.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		_, err = stmt.ExecContext(ctx,
			s.ID,
			s.Origin,
			s.Destination,
			s.OriginCity,
			s.DestinationCity,
			s.Status,
			nullableDate(s.EstimatedDelivery),
			nullableDate(s.ActualDelivery),
			s.Weight,
			string(dims),
			s.CustomerID,
			s.CourierCompany,
			s.Courier,
			s.PackageType,
			s.Priority,
			s.CustomerType,
			s.PaymentMethod,
			s.ShippingFee,
			createdAt.Format(timestampLayout),
		)
		if err != nil {
			return fmt.Errorf("insert shipment id=%s: %w", s.ID, err)
		}
	}

	return nil
}

const selectShipmentColumns = `
	id, origin, destination, origin_city, destination_city, status,
	estimated_delivery, actual_delivery, weight, dimensions, customer_id,
	courier_company, courier, package_type, priority, customer_type,
	payment_method, shipping_fee, created_at
`

// GetByID returns the shipment with the given id, or (nil, nil) when missing.
func (r *SqliteShipmentRepository) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	query := `SELECT ` + selectShipmentColumns + ` FROM shipments WHERE id = ?;`

	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanShipment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shipment id=%s: %w", id, err)
	}
	return s, nil
}

// ListAll returns up to limit shipments ordered by creation time, newest
// first. Non-positive limits fall back to the default cap.
func (r *SqliteShipmentRepository) ListAll(ctx context.Context, limit int) ([]domain.Shipment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + selectShipmentColumns + ` FROM shipments ORDER BY created_at DESC LIMIT ?;`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query: %w", err)
	}
	defer rows.Close()

	shipments := make([]domain.Shipment, 0, 64)
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("list shipments: scan row: %w", err)
		}
		shipments = append(shipments, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}

	return shipments, nil
}

// ListEvents returns the timeline of a shipment ordered by timestamp.
func (r *SqliteShipmentRepository) ListEvents(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error) {
	query := `
	SELECT id, shipment_id, event_type, location, description, timestamp
	FROM shipment_events
	WHERE shipment_id = ?
	ORDER BY timestamp;
	`

	rows, err := r.db.QueryContext(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list events: query: %w", err)
	}
	defer rows.Close()

	events := make([]domain.ShipmentEvent, 0, 16)
	for rows.Next() {
		var (
			e  domain.ShipmentEvent
			ts sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ShipmentID, &e.EventType, &e.Location, &e.Description, &ts); err != nil {
			return nil, fmt.Errorf("list events: scan row: %w", err)
		}
		if t := parseTimestamp(ts); t != nil {
			e.Timestamp = *t
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: row iteration: %w", err)
	}

	return events, nil
}

// ClearAll deletes all events and shipments in one transaction.
func (r *SqliteShipmentRepository) ClearAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear shipments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shipment_events;`); err != nil {
		return fmt.Errorf("clear shipments: clear events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shipments;`); err != nil {
		return fmt.Errorf("clear shipments: clear shipments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clear shipments: commit tx: %w", err)
	}

	logger.Get().Info("Dataset cleared")
	return nil
}

// DailyStats computes the per-day summary for a YYYY-MM-DD date directly
// against the persisted rows.
//
// The on-time rate is the non-delayed fraction of deliveries landing on the
// date, not a whole-history on-time percentage. Consumers depend on this
// exact formula.
func (r *SqliteShipmentRepository) DailyStats(ctx context.Context, date string) (*domain.DailyStats, error) {
	var totalShipments int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shipments WHERE DATE(created_at) = ?;`, date,
	).Scan(&totalShipments)
	if err != nil {
		return nil, fmt.Errorf("daily stats: count created: %w", err)
	}

	var delivered int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shipments WHERE DATE(actual_delivery) = ?;`, date,
	).Scan(&delivered)
	if err != nil {
		return nil, fmt.Errorf("daily stats: count delivered: %w", err)
	}

	var delayed int
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shipments
		WHERE status = ? AND actual_delivery > estimated_delivery
		AND DATE(actual_delivery) = ?;`,
		domain.StatusDelivered, date,
	).Scan(&delayed)
	if err != nil {
		return nil, fmt.Errorf("daily stats: count delayed: %w", err)
	}

	onTimeRate := 0.0
	if delivered > 0 {
		onTimeRate = float64(delivered-delayed) / float64(delivered) * 100
	}

	return &domain.DailyStats{
		Date:           date,
		TotalShipments: totalShipments,
		Delivered:      delivered,
		Delayed:        delayed,
		OnTimeRate:     onTimeRate,
	}, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanShipment(sc scanner) (*domain.Shipment, error) {
	var (
		s         domain.Shipment
		estimated sql.NullString
		actual    sql.NullString
		dims      sql.NullString
		createdAt sql.NullString
	)

	err := sc.Scan(
		&s.ID,
		&s.Origin,
		&s.Destination,
		&s.OriginCity,
		&s.DestinationCity,
		&s.Status,
		&estimated,
		&actual,
		&s.Weight,
		&dims,
		&s.CustomerID,
		&s.CourierCompany,
		&s.Courier,
		&s.PackageType,
		&s.Priority,
		&s.CustomerType,
		&s.PaymentMethod,
		&s.ShippingFee,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	s.EstimatedDelivery = parseTimestamp(estimated)
	s.ActualDelivery = parseTimestamp(actual)
	if t := parseTimestamp(createdAt); t != nil {
		s.CreatedAt = *t
	}

	if dims.Valid && dims.String != "" {
		if err := json.Unmarshal([]byte(dims.String), &s.Dimensions); err != nil {
			return nil, fmt.Errorf("decode dimensions for id=%s: %w", s.ID, err)
		}
	}

	return &s, nil
}

// nullableDate converts an optional time into a DATE column value.
func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// parseTimestamp reads a stored date or timestamp column back into a time.
func parseTimestamp(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	for _, layout := range []string{timestampLayout, dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, v.String); err == nil {
			return &t
		}
	}
	return nil
}
