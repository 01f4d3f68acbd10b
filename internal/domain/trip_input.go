package domain

import (
	"math"
	"strconv"
	"strings"
)

// Field names reported by InvalidInputError. They match the JSON field names of TripInput.
const (
	FieldDistance            = "distance"
	FieldFuelUnitPrice       = "fuel_unit_price"
	FieldTollPerDistanceUnit = "toll_per_distance_unit"
	FieldVehicleClass        = "vehicle_class"
	FieldUrgency             = "urgency"
	FieldEscortCost          = "escort_cost"
)

// Validate checks the preconditions of Estimate. Fields are checked in
// declaration order and the first failure is returned.
func (in TripInput) Validate() error {
	if !finite(in.Distance) || in.Distance <= 0 {
		return invalid(FieldDistance, "must be a positive number")
	}
	if !finite(in.FuelUnitPrice) || in.FuelUnitPrice <= 0 {
		return invalid(FieldFuelUnitPrice, "must be a positive number")
	}
	if !finite(in.TollPerDistanceUnit) || in.TollPerDistanceUnit < 0 {
		return invalid(FieldTollPerDistanceUnit, "must be a non-negative number")
	}
	if !in.VehicleClass.Valid() {
		return invalid(FieldVehicleClass, "is required")
	}
	if !in.Urgency.Valid() {
		return invalid(FieldUrgency, "is required")
	}
	if in.HasEscort {
		if in.EscortCost == nil {
			return invalid(FieldEscortCost, "is required when escort is requested")
		}
		if !finite(*in.EscortCost) || *in.EscortCost < 0 {
			return invalid(FieldEscortCost, "must be a non-negative number")
		}
	}
	return nil
}

// RawTripInput is a trip as typed into the quotation form, every number still a string.
type RawTripInput struct {
	Distance            string
	FuelUnitPrice       string
	TollPerDistanceUnit string
	VehicleClass        string
	Urgency             string
	HasEscort           bool
	EscortCost          string
}

// ParseTripInput converts form values into a validated TripInput.
// Decimal commas ("6,50") are accepted. An escort cost is ignored unless HasEscort is set.
func ParseTripInput(raw RawTripInput) (TripInput, error) {
	var (
		in  TripInput
		err error
	)

	if in.Distance, err = parseAmount(FieldDistance, raw.Distance); err != nil {
		return TripInput{}, err
	}
	if in.FuelUnitPrice, err = parseAmount(FieldFuelUnitPrice, raw.FuelUnitPrice); err != nil {
		return TripInput{}, err
	}
	if in.TollPerDistanceUnit, err = parseAmount(FieldTollPerDistanceUnit, raw.TollPerDistanceUnit); err != nil {
		return TripInput{}, err
	}
	if in.VehicleClass, err = ParseVehicleClass(raw.VehicleClass); err != nil {
		return TripInput{}, err
	}
	if in.Urgency, err = ParseUrgencyLevel(raw.Urgency); err != nil {
		return TripInput{}, err
	}

	in.HasEscort = raw.HasEscort
	if raw.HasEscort && strings.TrimSpace(raw.EscortCost) != "" {
		cost, costErr := parseAmount(FieldEscortCost, raw.EscortCost)
		if costErr != nil {
			return TripInput{}, costErr
		}
		in.EscortCost = &cost
	}

	if err = in.Validate(); err != nil {
		return TripInput{}, err
	}
	return in, nil
}

func parseAmount(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid(field, "is required")
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid(field, "must be a number")
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
