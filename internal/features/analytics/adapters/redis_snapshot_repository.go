package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"logistics-insight/internal/core/cache"
	"logistics-insight/internal/features/analytics/domain"
)

const reportSnapshotKey = "analysis_report"

// RedisSnapshotRepository implements ports.ReportSnapshotRepository using the
// cache adaptation.
type RedisSnapshotRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisSnapshotRepository creates a new RedisSnapshotRepository. A zero
// ttl keeps snapshots until the next analysis overwrites them.
func NewRedisSnapshotRepository(c cache.Cache, ttl time.Duration) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Save stores the report as the latest snapshot.
func (r *RedisSnapshotRepository) Save(ctx context.Context, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := r.cache.Set(ctx, reportSnapshotKey, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save report snapshot: %w", err)
	}

	return nil
}

// Latest retrieves the most recent snapshot from the cache.
func (r *RedisSnapshotRepository) Latest(ctx context.Context) (*domain.Report, error) {
	data, err := r.cache.Get(ctx, reportSnapshotKey)
	if err != nil {
		if err.Error() == fmt.Sprintf("key not found: %s", reportSnapshotKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report snapshot: %w", err)
	}

	return &report, nil
}
