package domain

import (
	"sort"
	"time"

	shipments "logistics-insight/internal/features/shipments/domain"
)

const (
	// trendDays bounds the trend series to the most recent calendar dates.
	trendDays = 7
	// topLocationCount bounds the top-locations ranking.
	topLocationCount = 5
	// cubeDateLimit bounds the delivery cube to the last distinct dates.
	cubeDateLimit = 7
	// cubeCityLimit bounds the delivery cube to the alphabetically first cities.
	cubeCityLimit = 8

	// UnknownBucket collects records without a usable categorical value.
	UnknownBucket = "unknown"

	dateLayout  = "2006-01-02"
	labelLayout = "01-02"
)

// TrendSeries holds parallel label/count sequences for the shipment volume
// of the most recent days, oldest first.
type TrendSeries struct {
	// Labels are MM-DD day labels in ascending order.
	Labels []string `json:"labels"`
	// Counts are the shipments created on each labeled day.
	Counts []int `json:"counts"`
}

// LocationCount is one entry of the top-locations ranking.
type LocationCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// ScatterPoint is one weight/fee observation for a known origin city.
type ScatterPoint struct {
	Weight      float64 `json:"weight"`
	ShippingFee float64 `json:"shipping_fee"`
	City        string  `json:"city"`
}

// DeliveryCube is a dense date x city count matrix per status. Rows follow
// Dates, columns follow Cities; both axes are deterministically ordered so
// repeated builds over the same dataset are identical.
type DeliveryCube struct {
	// Dates are the row labels, chronological, at most the last 7 distinct.
	Dates []string `json:"dates"`
	// Cities are the column labels, alphabetical, at most 8.
	Cities []string `json:"cities"`
	// Statuses lists the matrix keys: every observed status plus the
	// canonical vocabulary, sorted.
	Statuses []string `json:"statuses"`
	// Counts maps each status to its dates x cities matrix.
	Counts map[string][][]int `json:"counts"`
}

// CategoryCube is a dense priority x customer-type count matrix per status.
type CategoryCube struct {
	// Priorities are the row labels, alphabetical.
	Priorities []string `json:"priorities"`
	// CustomerTypes are the column labels, alphabetical.
	CustomerTypes []string `json:"customer_types"`
	// Statuses lists the matrix keys, alphabetical.
	Statuses []string `json:"statuses"`
	// Counts maps each status to its priorities x customer-types matrix.
	Counts map[string][][]int `json:"counts"`
}

// Trend buckets records by the calendar date of their creation time and
// returns the last 7 buckets (fewer when less history exists), ascending.
func Trend(records []shipments.Shipment) TrendSeries {
	counts := make(map[string]int)
	for _, r := range records {
		if r.CreatedAt.IsZero() {
			continue
		}
		counts[r.CreatedAt.Format(dateLayout)]++
	}

	dates := sortedKeys(counts)
	if len(dates) > trendDays {
		dates = dates[len(dates)-trendDays:]
	}

	series := TrendSeries{
		Labels: make([]string, 0, len(dates)),
		Counts: make([]int, 0, len(dates)),
	}
	for _, d := range dates {
		day, _ := time.Parse(dateLayout, d)
		series.Labels = append(series.Labels, day.Format(labelLayout))
		series.Counts = append(series.Counts, counts[d])
	}

	return series
}

// TopLocations counts records by origin city, skipping blanks, and returns
// the top 5 by count. Ties keep first-encountered order.
func TopLocations(records []shipments.Shipment) []LocationCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, r := range records {
		city := r.OriginCity
		if city == "" {
			continue
		}
		if _, ok := counts[city]; !ok {
			firstSeen[city] = i
		}
		counts[city]++
	}

	ranked := make([]LocationCount, 0, len(counts))
	for city, count := range counts {
		ranked = append(ranked, LocationCount{City: city, Count: count})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].City] < firstSeen[ranked[j].City]
	})

	if len(ranked) > topLocationCount {
		ranked = ranked[:topLocationCount]
	}
	return ranked
}

// StatusDistribution counts records per status value. Records without a
// status land in the "unknown" bucket.
func StatusDistribution(records []shipments.Shipment) map[string]int {
	distribution := make(map[string]int)
	for _, r := range records {
		status := r.Status
		if status == "" {
			status = UnknownBucket
		}
		distribution[status]++
	}
	return distribution
}

// AverageWeight is the arithmetic mean weight of the record set, 0 for an
// empty set.
func AverageWeight(records []shipments.Shipment) float64 {
	if len(records) == 0 {
		return 0.0
	}

	total := 0.0
	for _, r := range records {
		total += r.Weight
	}
	return total / float64(len(records))
}

// BuildDeliveryCube cross-tabulates records over date, destination city and
// status. The date is the actual delivery when present, otherwise the
// creation date; records with neither, or without a city, are excluded.
func BuildDeliveryCube(records []shipments.Shipment) DeliveryCube {
	type cell struct {
		date, city, status string
	}

	counts := make(map[cell]int)
	dateSet := make(map[string]struct{})
	citySet := make(map[string]struct{})
	statusSet := make(map[string]struct{})
	for _, s := range shipments.CanonicalStatuses {
		statusSet[s] = struct{}{}
	}

	for _, r := range records {
		var day string
		switch {
		case r.ActualDelivery != nil:
			day = r.ActualDelivery.Format(dateLayout)
		case !r.CreatedAt.IsZero():
			day = r.CreatedAt.Format(dateLayout)
		default:
			continue
		}

		city := r.DestinationCity
		if city == "" {
			continue
		}

		status := r.Status
		if status == "" {
			status = UnknownBucket
		}

		counts[cell{date: day, city: city, status: status}]++
		dateSet[day] = struct{}{}
		citySet[city] = struct{}{}
		statusSet[status] = struct{}{}
	}

	dates := sortedSet(dateSet)
	if len(dates) > cubeDateLimit {
		dates = dates[len(dates)-cubeDateLimit:]
	}

	cities := sortedSet(citySet)
	if len(cities) > cubeCityLimit {
		cities = cities[:cubeCityLimit]
	}

	statuses := sortedSet(statusSet)

	cube := DeliveryCube{
		Dates:    dates,
		Cities:   cities,
		Statuses: statuses,
		Counts:   make(map[string][][]int, len(statuses)),
	}

	for _, status := range statuses {
		matrix := make([][]int, len(dates))
		for di, day := range dates {
			matrix[di] = make([]int, len(cities))
			for ci, city := range cities {
				matrix[di][ci] = counts[cell{date: day, city: city, status: status}]
			}
		}
		cube.Counts[status] = matrix
	}

	return cube
}

// WeightFeeScatter returns the weight/fee/city triples of every record with
// positive weight, positive shipping fee and a known origin city. No binning
// is applied.
func WeightFeeScatter(records []shipments.Shipment) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(records))
	for _, r := range records {
		if r.Weight <= 0 || r.ShippingFee <= 0 || r.OriginCity == "" {
			continue
		}
		points = append(points, ScatterPoint{
			Weight:      r.Weight,
			ShippingFee: r.ShippingFee,
			City:        r.OriginCity,
		})
	}
	return points
}

// BuildCategoryCube cross-tabulates records over priority, customer type and
// status. Records with any blank or unknown dimension are excluded.
func BuildCategoryCube(records []shipments.Shipment) CategoryCube {
	type cell struct {
		priority, customerType, status string
	}

	counts := make(map[cell]int)
	prioritySet := make(map[string]struct{})
	typeSet := make(map[string]struct{})
	statusSet := make(map[string]struct{})

	for _, r := range records {
		if !knownDimension(r.Priority) || !knownDimension(r.CustomerType) || !knownDimension(r.Status) {
			continue
		}

		counts[cell{priority: r.Priority, customerType: r.CustomerType, status: r.Status}]++
		prioritySet[r.Priority] = struct{}{}
		typeSet[r.CustomerType] = struct{}{}
		statusSet[r.Status] = struct{}{}
	}

	priorities := sortedSet(prioritySet)
	customerTypes := sortedSet(typeSet)
	statuses := sortedSet(statusSet)

	cube := CategoryCube{
		Priorities:    priorities,
		CustomerTypes: customerTypes,
		Statuses:      statuses,
		Counts:        make(map[string][][]int, len(statuses)),
	}

	for _, status := range statuses {
		matrix := make([][]int, len(priorities))
		for pi, priority := range priorities {
			matrix[pi] = make([]int, len(customerTypes))
			for ti, customerType := range customerTypes {
				matrix[pi][ti] = counts[cell{priority: priority, customerType: customerType, status: status}]
			}
		}
		cube.Counts[status] = matrix
	}

	return cube
}

func knownDimension(value string) bool {
	return value != "" && value != UnknownBucket
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
