package domain

import "time"

// TripInput holds the parameters of a single freight quotation.
type TripInput struct {
	Distance            float64      `json:"distance"`               // km
	FuelUnitPrice       float64      `json:"fuel_unit_price"`        // R$/L
	TollPerDistanceUnit float64      `json:"toll_per_distance_unit"` // R$/km
	VehicleClass        VehicleClass `json:"vehicle_class"`
	Urgency             UrgencyLevel `json:"urgency"`
	HasEscort           bool         `json:"has_escort,omitempty"`
	EscortCost          *float64     `json:"escort_cost,omitempty"` // flat fee, required when HasEscort
}

// CostBreakdown is the itemized result of an estimate.
// Values are unrounded; currency formatting is a presentation concern.
type CostBreakdown struct {
	FuelConsumption     float64 `json:"fuel_consumption"`
	FuelCost            float64 `json:"fuel_cost"`
	TollCost            float64 `json:"toll_cost"`
	MaintenanceCost     float64 `json:"maintenance_cost"`
	DriverCost          float64 `json:"driver_cost"`
	BaseFreight         float64 `json:"base_freight"`
	InsuranceCost       float64 `json:"insurance_cost"`
	Subtotal            float64 `json:"subtotal"`
	UrgencySurcharge    float64 `json:"urgency_surcharge"`
	EscortCost          float64 `json:"escort_cost"`
	Total               float64 `json:"total"`
	CostPerDistanceUnit float64 `json:"cost_per_distance_unit"`
}

// QuotationRequest is a trip plus the client metadata saved alongside it.
type QuotationRequest struct {
	Client      string    `json:"client,omitempty"`
	CNPJ        string    `json:"cnpj,omitempty"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Trip        TripInput `json:"trip"`
}

// Quotation is a saved history entry.
type Quotation struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Client      string        `json:"client,omitempty"`
	CNPJ        string        `json:"cnpj,omitempty"`
	Origin      string        `json:"origin,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Trip        TripInput     `json:"trip"`
	Breakdown   CostBreakdown `json:"breakdown"`
}
