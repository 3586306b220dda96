package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics-insight/internal/core/logger"
	"logistics-insight/internal/features/analytics/domain"
	"logistics-insight/internal/features/analytics/ports"
	shipmentports "logistics-insight/internal/features/shipments/ports"

	"go.uber.org/zap"
)

// ErrNoData is returned when there is nothing to analyze yet.
var ErrNoData = errors.New("no shipment data to analyze")

// analysisLimit bounds how many records one analysis run considers.
const analysisLimit = 10000

// AnalyticsService derives the aggregate views over the current dataset.
// It only reads the store; all aggregation happens on the in-memory records.
type AnalyticsService struct {
	repo      shipmentports.ShipmentRepository
	snapshots ports.ReportSnapshotRepository
}

// NewAnalyticsService creates a new AnalyticsService. The snapshot
// repository is optional; a nil value disables report caching.
func NewAnalyticsService(repo shipmentports.ShipmentRepository, snapshots ports.ReportSnapshotRepository) *AnalyticsService {
	return &AnalyticsService{
		repo:      repo,
		snapshots: snapshots,
	}
}

// Analyze loads the current dataset and computes the full report: today's
// daily statistics, the dataset summary and every chart-feeding aggregate.
func (s *AnalyticsService) Analyze(ctx context.Context) (*domain.Report, error) {
	records, err := s.repo.ListAll(ctx, analysisLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	today := time.Now().Format("2006-01-02")
	stats, err := s.repo.DailyStats(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("service: failed to compute daily stats: %w", err)
	}

	report := &domain.Report{
		Statistics: *stats,
		Summary: domain.Summary{
			TotalRecords:       len(records),
			StatusDistribution: domain.StatusDistribution(records),
			AverageWeight:      domain.AverageWeight(records),
		},
		Charts: domain.ChartData{
			Trend:            domain.Trend(records),
			TopLocations:     domain.TopLocations(records),
			DeliveryCube:     domain.BuildDeliveryCube(records),
			WeightFeeScatter: domain.WeightFeeScatter(records),
			CategoryCube:     domain.BuildCategoryCube(records),
		},
		GeneratedAt: time.Now(),
	}

	// Snapshot failures must never fail the analysis itself.
	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, report); err != nil {
			logger.Get().Warn("Failed to cache analysis snapshot", zap.Error(err))
		}
	}

	return report, nil
}

// LatestReport returns the cached snapshot of the last analysis, or
// (nil, nil) when no snapshot is available.
func (s *AnalyticsService) LatestReport(ctx context.Context) (*domain.Report, error) {
	if s.snapshots == nil {
		return nil, nil
	}

	report, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load report snapshot: %w", err)
	}
	return report, nil
}
