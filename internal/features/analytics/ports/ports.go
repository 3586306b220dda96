package ports

import (
	"context"

	"logistics-insight/internal/features/analytics/domain"
)

// ReportSnapshotRepository defines the secondary port for keeping the most
// recent analysis report available without recomputation.
type ReportSnapshotRepository interface {
	// Save stores the report as the latest snapshot.
	Save(ctx context.Context, report *domain.Report) error
	// Latest returns the most recent snapshot, or (nil, nil) when none exists.
	Latest(ctx context.Context) (*domain.Report, error)
}
