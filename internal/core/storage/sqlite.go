package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at the given path and verifies the
// connection. Foreign keys are enabled so shipment events cascade with their
// shipment.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite database %q: %w", path, err)
	}

	// modernc sqlite serializes writers itself; a single connection avoids
	// SQLITE_BUSY on concurrent transactions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: enable foreign keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: verify sqlite connection to %q: %w", path, err)
	}

	return db, nil
}

// InitSchema creates the shipment tables if they do not exist yet.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		id TEXT PRIMARY KEY,
		origin TEXT,
		destination TEXT,
		origin_city TEXT,
		destination_city TEXT,
		status TEXT,
		estimated_delivery DATE,
		actual_delivery DATE,
		weight REAL,
		dimensions TEXT,
		customer_id TEXT,
		courier_company TEXT,
		courier TEXT,
		package_type TEXT,
		priority TEXT,
		customer_type TEXT,
		payment_method TEXT,
		shipping_fee REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	createEventsQuery := `
	CREATE TABLE IF NOT EXISTS shipment_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		shipment_id TEXT,
		event_type TEXT,
		location TEXT,
		description TEXT,
		timestamp TIMESTAMP,
		FOREIGN KEY (shipment_id) REFERENCES shipments (id) ON DELETE CASCADE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipment_events_shipment_id
	ON shipment_events(shipment_id);
	`

	statements := []string{
		createShipmentsQuery,
		createEventsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
