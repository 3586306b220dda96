package domain

import (
	"testing"
	"time"

	shipments "logistics-insight/internal/features/shipments/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRawRow_GetString verifies string coercion and NaN-like handling.
func TestRawRow_GetString(t *testing.T) {
	row := RawRow{
		"origin":   "  Beijing Hub  ",
		"blank":    "",
		"nan_cell": "NaN",
		"null":     "null",
	}

	assert.Equal(t, "Beijing Hub", row.GetString("origin", ""))
	assert.Equal(t, "fallback", row.GetString("blank", "fallback"))
	assert.Equal(t, "fallback", row.GetString("nan_cell", "fallback"))
	assert.Equal(t, "fallback", row.GetString("null", "fallback"))
	assert.Equal(t, "fallback", row.GetString("absent", "fallback"))
}

// TestRawRow_GetFloat verifies numeric coercion never fails.
func TestRawRow_GetFloat(t *testing.T) {
	row := RawRow{
		"weight":  "2.5",
		"garbage": "heavy",
		"blank":   "",
		"spaced":  " 12.25 ",
	}

	assert.Equal(t, 2.5, row.GetFloat("weight", 0))
	assert.Equal(t, 0.0, row.GetFloat("garbage", 0))
	assert.Equal(t, 0.0, row.GetFloat("blank", 0))
	assert.Equal(t, 12.25, row.GetFloat("spaced", 0))
	assert.Equal(t, 0.0, row.GetFloat("absent", 0))
}

// TestRawRow_GetDate verifies every accepted date shape parses.
func TestRawRow_GetDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-05":           "2024-01-05",
		"2024-01-05 14:30:00":  "2024-01-05",
		"2024-01-05T14:30:00":  "2024-01-05",
		"2024-01-05T14:30:00Z": "2024-01-05",
	}

	for raw, wantDay := range cases {
		row := RawRow{"estimated_delivery": raw}
		got := row.GetDate("estimated_delivery")
		require.NotNil(t, got, "input %q", raw)
		assert.Equal(t, wantDay, got.Format("2006-01-02"), "input %q", raw)
	}

	assert.Nil(t, RawRow{"estimated_delivery": ""}.GetDate("estimated_delivery"))
	assert.Nil(t, RawRow{"estimated_delivery": "soon"}.GetDate("estimated_delivery"))
	assert.Nil(t, RawRow{}.GetDate("estimated_delivery"))
}

// TestNormalize_EmptyRow verifies every field of a fully empty row gets its
// type-correct default.
func TestNormalize_EmptyRow(t *testing.T) {
	got := Normalize(RawRow{})

	assert.Equal(t, "", got.ID)
	assert.Equal(t, "", got.Origin)
	assert.Equal(t, "", got.OriginCity)
	assert.Equal(t, shipments.StatusPending, got.Status)
	assert.Equal(t, "standard", got.Priority)
	assert.Nil(t, got.EstimatedDelivery)
	assert.Nil(t, got.ActualDelivery)
	assert.Equal(t, 0.0, got.Weight)
	assert.Equal(t, shipments.Dimensions{}, got.Dimensions)
	assert.Equal(t, 0.0, got.ShippingFee)
	assert.True(t, got.CreatedAt.IsZero())
}

// TestNormalize_FullRow verifies a complete row maps field for field.
func TestNormalize_FullRow(t *testing.T) {
	got := Normalize(RawRow{
		"id":                 "SF123456",
		"origin":             "Beijing Chaoyang Hub",
		"destination":        "Shanghai Pudong",
		"origin_city":        "Beijing",
		"destination_city":   "Shanghai",
		"status":             "delivered",
		"estimated_delivery": "2024-01-04",
		"actual_delivery":    "2024-01-05",
		"weight":             "3.2",
		"length":             "30",
		"width":              "20",
		"height":             "10",
		"customer_id":        "CUST0042",
		"courier_company":    "SF Express",
		"courier":            "Courier A01",
		"package_type":       "electronics",
		"priority":           "express",
		"customer_type":      "business",
		"payment_method":     "online",
		"shipping_fee":       "18.5",
		"created_at":         "2024-01-01 09:00:00",
	})

	assert.Equal(t, "SF123456", got.ID)
	assert.Equal(t, "delivered", got.Status)
	assert.Equal(t, "express", got.Priority)
	require.NotNil(t, got.EstimatedDelivery)
	require.NotNil(t, got.ActualDelivery)
	assert.Equal(t, "2024-01-04", got.EstimatedDelivery.Format("2006-01-02"))
	assert.Equal(t, "2024-01-05", got.ActualDelivery.Format("2006-01-02"))
	assert.Equal(t, 3.2, got.Weight)
	assert.Equal(t, shipments.Dimensions{Length: 30, Width: 20, Height: 10}, got.Dimensions)
	assert.Equal(t, 18.5, got.ShippingFee)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), got.CreatedAt)
}

// TestNormalize_DegradedCells verifies invalid cells fall back to defaults
// without rejecting the row.
func TestNormalize_DegradedCells(t *testing.T) {
	got := Normalize(RawRow{
		"id":                 "SF123457",
		"status":             "",
		"priority":           "nan",
		"weight":             "not-a-number",
		"shipping_fee":       "-",
		"estimated_delivery": "tomorrow",
	})

	assert.Equal(t, "SF123457", got.ID)
	assert.Equal(t, shipments.StatusPending, got.Status)
	assert.Equal(t, "standard", got.Priority)
	assert.Equal(t, 0.0, got.Weight)
	assert.Equal(t, 0.0, got.ShippingFee)
	assert.Nil(t, got.EstimatedDelivery)
}

// TestNormalize_UnknownStatusPassesThrough verifies the open vocabulary.
func TestNormalize_UnknownStatusPassesThrough(t *testing.T) {
	got := Normalize(RawRow{"status": "customs_hold"})
	assert.Equal(t, "customs_hold", got.Status)
}
