package domain

import (
	"fmt"
	"testing"
	"time"

	shipments "logistics-insight/internal/features/shipments/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createdOn(day string) shipments.Shipment {
	t, _ := time.Parse("2006-01-02", day)
	return shipments.Shipment{CreatedAt: t}
}

// TestTrend_LastSevenDays verifies that 10 distinct days collapse to the
// most recent 7, ascending.
func TestTrend_LastSevenDays(t *testing.T) {
	var records []shipments.Shipment
	for day := 1; day <= 10; day++ {
		records = append(records, createdOn(fmt.Sprintf("2024-03-%02d", day)))
	}

	series := Trend(records)

	require.Len(t, series.Labels, 7)
	require.Len(t, series.Counts, 7)
	assert.Equal(t, "03-04", series.Labels[0])
	assert.Equal(t, "03-10", series.Labels[6])
	for _, count := range series.Counts {
		assert.Equal(t, 1, count)
	}
}

// TestTrend_TimezoneSuffix verifies ISO timestamps with a Z suffix bucket by
// their date portion.
func TestTrend_TimezoneSuffix(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2024-03-05T23:30:00Z")
	require.NoError(t, err)

	series := Trend([]shipments.Shipment{{CreatedAt: ts}, createdOn("2024-03-05")})

	require.Len(t, series.Labels, 1)
	assert.Equal(t, "03-05", series.Labels[0])
	assert.Equal(t, 2, series.Counts[0])
}

// TestTrend_SkipsZeroCreatedAt verifies records without a creation time are
// excluded rather than crashing.
func TestTrend_SkipsZeroCreatedAt(t *testing.T) {
	series := Trend([]shipments.Shipment{{}, createdOn("2024-03-01")})

	require.Len(t, series.Labels, 1)
	assert.Equal(t, 1, series.Counts[0])
}

// TestTopLocations_TieOrder checks counts {A:10, B:7, C:7, D:3} rank as
// A, B, C, D with first-seen winning the tie.
func TestTopLocations_TieOrder(t *testing.T) {
	var records []shipments.Shipment
	add := func(city string, n int) {
		for i := 0; i < n; i++ {
			records = append(records, shipments.Shipment{OriginCity: city})
		}
	}
	add("A", 3)
	add("B", 7) // B appears before C: first-seen wins the 7-7 tie
	add("C", 7)
	add("A", 7)
	add("D", 3)
	records = append(records, shipments.Shipment{OriginCity: ""}) // skipped

	top := TopLocations(records)

	require.Len(t, top, 4)
	assert.Equal(t, LocationCount{City: "A", Count: 10}, top[0])
	assert.Equal(t, LocationCount{City: "B", Count: 7}, top[1])
	assert.Equal(t, LocationCount{City: "C", Count: 7}, top[2])
	assert.Equal(t, LocationCount{City: "D", Count: 3}, top[3])
}

// TestTopLocations_TruncatesToFive verifies the top-5 cut.
func TestTopLocations_TruncatesToFive(t *testing.T) {
	var records []shipments.Shipment
	for i := 0; i < 8; i++ {
		city := string(rune('A' + i))
		for j := 0; j <= i; j++ {
			records = append(records, shipments.Shipment{OriginCity: city})
		}
	}

	top := TopLocations(records)

	require.Len(t, top, 5)
	assert.Equal(t, "H", top[0].City)
	assert.Equal(t, 8, top[0].Count)
}

// TestStatusDistribution verifies per-status counts and the unknown bucket.
func TestStatusDistribution(t *testing.T) {
	records := []shipments.Shipment{
		{Status: shipments.StatusDelivered},
		{Status: shipments.StatusDelivered},
		{Status: shipments.StatusInTransit},
		{Status: ""},
	}

	distribution := StatusDistribution(records)

	assert.Equal(t, 2, distribution[shipments.StatusDelivered])
	assert.Equal(t, 1, distribution[shipments.StatusInTransit])
	assert.Equal(t, 1, distribution[UnknownBucket])
}

// TestAverageWeight verifies the mean and the empty-set guard.
func TestAverageWeight(t *testing.T) {
	records := []shipments.Shipment{{Weight: 2}, {Weight: 4}, {Weight: 6}}
	assert.Equal(t, 4.0, AverageWeight(records))
	assert.Equal(t, 0.0, AverageWeight(nil))
}

func cubeRecord(day, city, status string) shipments.Shipment {
	delivered, _ := time.Parse("2006-01-02", day)
	return shipments.Shipment{
		Status:          status,
		DestinationCity: city,
		ActualDelivery:  &delivered,
	}
}

// TestBuildDeliveryCube_Axes verifies date/city truncation and the canonical
// status vocabulary.
func TestBuildDeliveryCube_Axes(t *testing.T) {
	var records []shipments.Shipment
	for day := 1; day <= 10; day++ {
		records = append(records, cubeRecord(fmt.Sprintf("2024-03-%02d", day), "Beijing", "delivered"))
	}
	for i := 0; i < 10; i++ {
		city := fmt.Sprintf("City%c", rune('A'+i))
		records = append(records, cubeRecord("2024-03-10", city, "delivered"))
	}
	records = append(records, cubeRecord("2024-03-10", "Beijing", "customs_hold"))

	cube := BuildDeliveryCube(records)

	assert.Len(t, cube.Dates, 7)
	assert.Equal(t, "2024-03-04", cube.Dates[0])
	assert.Equal(t, "2024-03-10", cube.Dates[6])

	assert.Len(t, cube.Cities, 8)
	assert.Equal(t, "Beijing", cube.Cities[0], "cities truncate alphabetically")

	// Observed statuses plus the fixed vocabulary, even when unused.
	assert.Contains(t, cube.Statuses, "customs_hold")
	for _, s := range shipments.CanonicalStatuses {
		assert.Contains(t, cube.Statuses, s)
	}

	// Every matrix is dense: dates x cities.
	for _, status := range cube.Statuses {
		matrix := cube.Counts[status]
		require.Len(t, matrix, len(cube.Dates))
		for _, row := range matrix {
			require.Len(t, row, len(cube.Cities))
		}
	}
}

// TestBuildDeliveryCube_DateFallback verifies actual delivery wins over the
// creation date and dateless records are excluded.
func TestBuildDeliveryCube_DateFallback(t *testing.T) {
	delivered, _ := time.Parse("2006-01-02", "2024-03-05")
	created, _ := time.Parse("2006-01-02", "2024-03-01")

	records := []shipments.Shipment{
		{Status: "delivered", DestinationCity: "Beijing", ActualDelivery: &delivered, CreatedAt: created},
		{Status: "pending", DestinationCity: "Beijing", CreatedAt: created},
		{Status: "pending", DestinationCity: "Beijing"}, // no dates at all
	}

	cube := BuildDeliveryCube(records)

	assert.Equal(t, []string{"2024-03-01", "2024-03-05"}, cube.Dates)
	total := 0
	for _, matrix := range cube.Counts {
		for _, row := range matrix {
			for _, n := range row {
				total += n
			}
		}
	}
	assert.Equal(t, 2, total, "the dateless record is excluded")
}

// TestBuildDeliveryCube_Deterministic verifies repeated builds over the same
// dataset are identical.
func TestBuildDeliveryCube_Deterministic(t *testing.T) {
	var records []shipments.Shipment
	cities := []string{"Wuhan", "Beijing", "Xi'an", "Chengdu"}
	statuses := []string{"delivered", "in_transit", "returned"}
	for day := 1; day <= 9; day++ {
		for i, city := range cities {
			records = append(records, cubeRecord(
				fmt.Sprintf("2024-03-%02d", day), city, statuses[(day+i)%len(statuses)],
			))
		}
	}

	first := BuildDeliveryCube(records)
	second := BuildDeliveryCube(records)

	assert.Equal(t, first, second)
}

// TestBuildDeliveryCube_Empty verifies an empty dataset yields empty axes,
// not a crash.
func TestBuildDeliveryCube_Empty(t *testing.T) {
	cube := BuildDeliveryCube(nil)

	assert.Empty(t, cube.Dates)
	assert.Empty(t, cube.Cities)
	// The canonical vocabulary is always present.
	assert.Len(t, cube.Statuses, len(shipments.CanonicalStatuses))
	for _, status := range cube.Statuses {
		assert.Empty(t, cube.Counts[status])
	}
}

// TestWeightFeeScatter verifies filtering on weight, fee and city.
func TestWeightFeeScatter(t *testing.T) {
	records := []shipments.Shipment{
		{Weight: 2.5, ShippingFee: 12, OriginCity: "Beijing"},
		{Weight: 0, ShippingFee: 12, OriginCity: "Beijing"},
		{Weight: 2.5, ShippingFee: 0, OriginCity: "Beijing"},
		{Weight: 2.5, ShippingFee: 12, OriginCity: ""},
	}

	points := WeightFeeScatter(records)

	require.Len(t, points, 1)
	assert.Equal(t, ScatterPoint{Weight: 2.5, ShippingFee: 12, City: "Beijing"}, points[0])
}

// TestBuildCategoryCube verifies axis ordering, density and the exclusion of
// records with unknown dimensions.
func TestBuildCategoryCube(t *testing.T) {
	records := []shipments.Shipment{
		{Priority: "standard", CustomerType: "individual", Status: "delivered"},
		{Priority: "standard", CustomerType: "business", Status: "delivered"},
		{Priority: "express", CustomerType: "business", Status: "in_transit"},
		{Priority: "", CustomerType: "business", Status: "delivered"},
		{Priority: "standard", CustomerType: UnknownBucket, Status: "delivered"},
		{Priority: "standard", CustomerType: "business", Status: ""},
	}

	cube := BuildCategoryCube(records)

	assert.Equal(t, []string{"express", "standard"}, cube.Priorities)
	assert.Equal(t, []string{"business", "individual"}, cube.CustomerTypes)
	assert.Equal(t, []string{"delivered", "in_transit"}, cube.Statuses)

	delivered := cube.Counts["delivered"]
	require.Len(t, delivered, 2)
	// standard x business and standard x individual each count once.
	assert.Equal(t, []int{0, 0}, delivered[0])
	assert.Equal(t, []int{1, 1}, delivered[1])

	inTransit := cube.Counts["in_transit"]
	assert.Equal(t, []int{1, 0}, inTransit[0])
	assert.Equal(t, []int{0, 0}, inTransit[1])
}

// TestBuildCategoryCube_Deterministic verifies repeated builds are identical.
func TestBuildCategoryCube_Deterministic(t *testing.T) {
	records := []shipments.Shipment{
		{Priority: "urgent", CustomerType: "vip", Status: "delivered"},
		{Priority: "standard", CustomerType: "individual", Status: "pending"},
	}

	assert.Equal(t, BuildCategoryCube(records), BuildCategoryCube(records))
}
