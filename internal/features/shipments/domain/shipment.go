package domain

import "time"

// Known shipment statuses. The status vocabulary is open: values outside this
// list pass through the pipeline verbatim.
const (
	StatusPending        = "pending"
	StatusProcessing     = "processing"
	StatusPickedUp       = "picked_up"
	StatusInTransit      = "in_transit"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusFailedDelivery = "failed_delivery"
	StatusReturned       = "returned"
)

// CanonicalStatuses is the fixed vocabulary charted by reporting consumers.
// Aggregation cubes always carry these statuses even when no record uses them.
var CanonicalStatuses = []string{
	StatusDelivered,
	StatusFailedDelivery,
	StatusInTransit,
	StatusOutForDelivery,
	StatusPending,
	StatusPickedUp,
}

// Dimensions represents the physical size of a package in centimeters.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shipment represents one tracked package moving from origin to destination.
type Shipment struct {
	// ID is the unique shipment/tracking number.
	ID string `json:"id"`
	// Origin is the free-text pickup address.
	Origin string `json:"origin"`
	// Destination is the free-text delivery address.
	Destination string `json:"destination"`
	// OriginCity is the pickup city, may be empty for partial records.
	OriginCity string `json:"origin_city"`
	// DestinationCity is the delivery city, may be empty for partial records.
	DestinationCity string `json:"destination_city"`
	// Status is the current shipment status (open vocabulary, see constants).
	Status string `json:"status"`
	// EstimatedDelivery is the promised delivery date, nil when unknown.
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	// ActualDelivery is the real delivery date, populated once the shipment
	// is delivered, failed or returned.
	ActualDelivery *time.Time `json:"actual_delivery"`
	// Weight is the package weight in kilograms.
	Weight float64 `json:"weight"`
	// Dimensions holds the package size.
	Dimensions Dimensions `json:"dimensions"`
	// CustomerID identifies the sending customer.
	CustomerID string `json:"customer_id"`
	// CourierCompany is the carrier operating the shipment.
	CourierCompany string `json:"courier_company"`
	// Courier is the individual courier assigned for the last mile.
	Courier string `json:"courier"`
	// PackageType describes the contents category.
	PackageType string `json:"package_type"`
	// Priority is the service level (standard, express, urgent, same_day).
	Priority string `json:"priority"`
	// CustomerType is the customer segment.
	CustomerType string `json:"customer_type"`
	// PaymentMethod is how the shipping fee was settled.
	PaymentMethod string `json:"payment_method"`
	// ShippingFee is the charged fee.
	ShippingFee float64 `json:"shipping_fee"`
	// CreatedAt is when the shipment entered the system. The store assigns
	// the insertion time when the zero value is given.
	CreatedAt time.Time `json:"created_at"`
}

// ShipmentEvent represents a single timeline entry for a shipment.
type ShipmentEvent struct {
	// ID is the auto-assigned event sequence number.
	ID int64 `json:"id"`
	// ShipmentID references the owning shipment; events are removed together
	// with their shipment.
	ShipmentID string `json:"shipment_id"`
	// EventType classifies the event (status change, location update, ...).
	EventType string `json:"event_type"`
	// Location is where the event occurred.
	Location string `json:"location"`
	// Description is the free-text event detail.
	Description string `json:"description"`
	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
}

// DailyStats summarizes shipment activity for a single calendar date.
type DailyStats struct {
	// Date is the calendar date in YYYY-MM-DD form.
	Date string `json:"date"`
	// TotalShipments counts shipments created on the date.
	TotalShipments int `json:"total_shipments"`
	// Delivered counts shipments whose actual delivery landed on the date.
	Delivered int `json:"delivered"`
	// Delayed counts deliveries on the date that missed their estimate.
	Delayed int `json:"delayed"`
	// OnTimeRate is (delivered-delayed)/delivered*100 for deliveries landing
	// on the date, 0 when nothing was delivered.
	OnTimeRate float64 `json:"on_time_rate"`
}
