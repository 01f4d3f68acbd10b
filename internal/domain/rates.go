package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// InsuranceRate is the fraction of base freight charged as cargo insurance.
const InsuranceRate = 0.01

// VehicleClass is the coarse category of vehicle used for a shipment.
// The zero value is not a valid class.
type VehicleClass int

// Vehicle classes.
const (
	VehicleTruck VehicleClass = iota + 1
	VehiclePickupTruck
	VehicleVan
)

// VehicleClasses lists every vehicle class in display order.
func VehicleClasses() []VehicleClass {
	return []VehicleClass{VehicleTruck, VehiclePickupTruck, VehicleVan}
}

// String returns the canonical name of the class.
func (c VehicleClass) String() string {
	switch c {
	case VehicleTruck:
		return "truck"
	case VehiclePickupTruck:
		return "pickup_truck"
	case VehicleVan:
		return "van"
	default:
		return fmt.Sprintf("VehicleClass(%d)", int(c))
	}
}

// Valid reports whether c is one of the declared classes.
func (c VehicleClass) Valid() bool {
	return c >= VehicleTruck && c <= VehicleVan
}

// MarshalText implements encoding.TextMarshaler.
func (c VehicleClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown vehicle class %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *VehicleClass) UnmarshalText(text []byte) error {
	parsed, err := ParseVehicleClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseVehicleClass accepts canonical names and the dashboard's Portuguese labels.
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch normalizeLabel(s) {
	case "truck", "caminhao", "caminhão":
		return VehicleTruck, nil
	case "pickup_truck", "pickuptruck", "pickup", "picape":
		return VehiclePickupTruck, nil
	case "van":
		return VehicleVan, nil
	default:
		return 0, invalid(FieldVehicleClass, fmt.Sprintf("unknown vehicle class %q", s))
	}
}

// UrgencyLevel is the customer-facing speed tier of a quotation.
// The zero value is not a valid level.
type UrgencyLevel int

// Urgency levels.
const (
	UrgencyLow UrgencyLevel = iota + 1
	UrgencyMedium
	UrgencyHigh
)

// UrgencyLevels lists every urgency level from lowest to highest.
func UrgencyLevels() []UrgencyLevel {
	return []UrgencyLevel{UrgencyLow, UrgencyMedium, UrgencyHigh}
}

// String returns the canonical name of the level.
func (u UrgencyLevel) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	default:
		return fmt.Sprintf("UrgencyLevel(%d)", int(u))
	}
}

// Valid reports whether u is one of the declared levels.
func (u UrgencyLevel) Valid() bool {
	return u >= UrgencyLow && u <= UrgencyHigh
}

// MarshalText implements encoding.TextMarshaler.
func (u UrgencyLevel) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("unknown urgency level %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UrgencyLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseUrgencyLevel(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUrgencyLevel accepts canonical names and the dashboard's Portuguese labels.
func ParseUrgencyLevel(s string) (UrgencyLevel, error) {
	switch normalizeLabel(s) {
	case "low", "baixa":
		return UrgencyLow, nil
	case "medium", "media", "média":
		return UrgencyMedium, nil
	case "high", "alta":
		return UrgencyHigh, nil
	default:
		return 0, invalid(FieldUrgency, fmt.Sprintf("unknown urgency level %q", s))
	}
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// VehicleRates contains the per-distance rate constants of a vehicle class.
type VehicleRates struct {
	ConsumptionRate float64 `json:"consumption_rate" yaml:"consumption_rate"` // distance units per fuel unit
	MaintenanceRate float64 `json:"maintenance_rate" yaml:"maintenance_rate"` // currency per distance unit
	DriverRate      float64 `json:"driver_rate"      yaml:"driver_rate"`      // currency per distance unit
}

func (r VehicleRates) validate() error {
	switch {
	case !(r.ConsumptionRate > 0) || math.IsInf(r.ConsumptionRate, 0):
		return errors.New("consumption rate must be a positive number")
	case !(r.MaintenanceRate >= 0) || math.IsInf(r.MaintenanceRate, 0):
		return errors.New("maintenance rate must be a non-negative number")
	case !(r.DriverRate >= 0) || math.IsInf(r.DriverRate, 0):
		return errors.New("driver rate must be a non-negative number")
	}
	return nil
}

// RateTable is an immutable lookup of vehicle and urgency rates.
// Lookups are total over the closed enumerations; an undeclared class or
// level is a programming error and panics.
type RateTable struct {
	truck       VehicleRates
	pickupTruck VehicleRates
	van         VehicleRates

	low    float64
	medium float64
	high   float64
}

// DefaultRateTable returns the rates EcoLog quotes with.
func DefaultRateTable() RateTable {
	return RateTable{
		truck:       VehicleRates{ConsumptionRate: 5, MaintenanceRate: 0.80, DriverRate: 1.5},
		pickupTruck: VehicleRates{ConsumptionRate: 8, MaintenanceRate: 0.40, DriverRate: 0.9},
		van:         VehicleRates{ConsumptionRate: 10, MaintenanceRate: 0.35, DriverRate: 0.9},
		low:         0,
		medium:      0.15,
		high:        0.30,
	}
}

// NewRateTable builds a table from explicit entries. Every class and level must be present.
func NewRateTable(
	vehicles map[VehicleClass]VehicleRates,
	urgency map[UrgencyLevel]float64,
) (RateTable, error) {
	var table RateTable

	for _, class := range VehicleClasses() {
		rates, ok := vehicles[class]
		if !ok {
			return RateTable{}, fmt.Errorf("missing rates for vehicle class %s", class)
		}
		if err := rates.validate(); err != nil {
			return RateTable{}, fmt.Errorf("vehicle class %s: %w", class, err)
		}
		*table.vehicleSlot(class) = rates
	}

	for _, level := range UrgencyLevels() {
		factor, ok := urgency[level]
		if !ok {
			return RateTable{}, fmt.Errorf("missing factor for urgency level %s", level)
		}
		if !(factor >= 0 && factor < 1) {
			return RateTable{}, fmt.Errorf("urgency level %s: factor %v outside [0, 1)", level, factor)
		}
		*table.urgencySlot(level) = factor
	}

	return table, nil
}

func (t *RateTable) vehicleSlot(class VehicleClass) *VehicleRates {
	switch class {
	case VehicleTruck:
		return &t.truck
	case VehiclePickupTruck:
		return &t.pickupTruck
	case VehicleVan:
		return &t.van
	default:
		panic(fmt.Sprintf("domain: undeclared vehicle class %d", int(class)))
	}
}

func (t *RateTable) urgencySlot(level UrgencyLevel) *float64 {
	switch level {
	case UrgencyLow:
		return &t.low
	case UrgencyMedium:
		return &t.medium
	case UrgencyHigh:
		return &t.high
	default:
		panic(fmt.Sprintf("domain: undeclared urgency level %d", int(level)))
	}
}

// Vehicle returns all rates for a class.
func (t RateTable) Vehicle(class VehicleClass) VehicleRates {
	return *t.vehicleSlot(class)
}

// ConsumptionRate returns distance units per fuel unit for a class.
func (t RateTable) ConsumptionRate(class VehicleClass) float64 {
	return t.Vehicle(class).ConsumptionRate
}

// MaintenanceRate returns maintenance cost per distance unit for a class.
func (t RateTable) MaintenanceRate(class VehicleClass) float64 {
	return t.Vehicle(class).MaintenanceRate
}

// DriverRate returns driver and helper cost per distance unit for a class.
func (t RateTable) DriverRate(class VehicleClass) float64 {
	return t.Vehicle(class).DriverRate
}

// UrgencyFactor returns the surcharge fraction applied to the subtotal.
func (t RateTable) UrgencyFactor(level UrgencyLevel) float64 {
	return *t.urgencySlot(level)
}

// Vehicles returns a copy of the per-class rates keyed by class.
func (t RateTable) Vehicles() map[VehicleClass]VehicleRates {
	out := make(map[VehicleClass]VehicleRates, len(VehicleClasses()))
	for _, class := range VehicleClasses() {
		out[class] = t.Vehicle(class)
	}
	return out
}

// UrgencyFactors returns a copy of the per-level factors keyed by level.
func (t RateTable) UrgencyFactors() map[UrgencyLevel]float64 {
	out := make(map[UrgencyLevel]float64, len(UrgencyLevels()))
	for _, level := range UrgencyLevels() {
		out[level] = t.UrgencyFactor(level)
	}
	return out
}
