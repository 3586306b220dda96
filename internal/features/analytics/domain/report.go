package domain

import (
	"time"

	shipments "logistics-insight/internal/features/shipments/domain"
)

// Summary condenses the whole dataset for report consumers.
type Summary struct {
	// TotalRecords is the number of records analyzed.
	TotalRecords int `json:"total_records"`
	// StatusDistribution maps each status to its record count.
	StatusDistribution map[string]int `json:"status_distribution"`
	// AverageWeight is the mean package weight in kilograms.
	AverageWeight float64 `json:"average_weight"`
}

// ChartData bundles every derived view consumed by the reporting and
// visualization collaborators.
type ChartData struct {
	Trend            TrendSeries     `json:"trend"`
	TopLocations     []LocationCount `json:"top_locations"`
	DeliveryCube     DeliveryCube    `json:"delivery_cube"`
	WeightFeeScatter []ScatterPoint  `json:"weight_fee_scatter"`
	CategoryCube     CategoryCube    `json:"category_cube"`
}

// Report is the full analysis of the current dataset.
type Report struct {
	// Statistics is the daily summary for the report date.
	Statistics shipments.DailyStats `json:"statistics"`
	// Summary condenses the dataset.
	Summary Summary `json:"summary"`
	// Charts carries the aggregate views.
	Charts ChartData `json:"charts"`
	// GeneratedAt is when the report was computed.
	GeneratedAt time.Time `json:"generated_at"`
}
