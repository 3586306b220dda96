package domain

import (
	"time"

	shipments "logistics-insight/internal/features/shipments/domain"
)

// Normalize converts one raw row into a canonical shipment record.
//
// It is a pure function and total: every field of the result is populated
// with a type-correct default even for a completely empty row. Invalid cells
// degrade to their defaults rather than rejecting the row.
func Normalize(row RawRow) shipments.Shipment {
	createdAt := time.Time{}
	if t := row.GetDate("created_at"); t != nil {
		createdAt = *t
	}

	return shipments.Shipment{
		ID:                row.GetString("id", ""),
		Origin:            row.GetString("origin", ""),
		Destination:       row.GetString("destination", ""),
		OriginCity:        row.GetString("origin_city", ""),
		DestinationCity:   row.GetString("destination_city", ""),
		Status:            row.GetString("status", shipments.StatusPending),
		EstimatedDelivery: row.GetDate("estimated_delivery"),
		ActualDelivery:    row.GetDate("actual_delivery"),
		Weight:            row.GetFloat("weight", 0),
		Dimensions: shipments.Dimensions{
			Length: row.GetFloat("length", 0),
			Width:  row.GetFloat("width", 0),
			Height: row.GetFloat("height", 0),
		},
		CustomerID:     row.GetString("customer_id", ""),
		CourierCompany: row.GetString("courier_company", ""),
		Courier:        row.GetString("courier", ""),
		PackageType:    row.GetString("package_type", ""),
		Priority:       row.GetString("priority", "standard"),
		CustomerType:   row.GetString("customer_type", ""),
		PaymentMethod:  row.GetString("payment_method", ""),
		ShippingFee:    row.GetFloat("shipping_fee", 0),
		// Zero means "assign at insert"; the store fills the insertion time.
		CreatedAt: createdAt,
	}
}

// ImportResult is the outcome of a dataset import.
type ImportResult struct {
	// Success reports whether the dataset was replaced.
	Success bool `json:"success"`
	// Message is a human-readable outcome description, shown verbatim.
	Message string `json:"message"`
	// Count is the number of records imported.
	Count int `json:"count,omitempty"`
}
