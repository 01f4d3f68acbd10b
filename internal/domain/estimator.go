package domain

// FreightEstimator computes cost breakdowns against a fixed rate table.
// It holds no mutable state and is safe for concurrent use.
type FreightEstimator struct {
	rates RateTable
}

// NewFreightEstimator creates an estimator bound to rates.
func NewFreightEstimator(rates RateTable) *FreightEstimator {
	return &FreightEstimator{
		rates: rates,
	}
}

// Rates returns the table the estimator prices with.
func (e *FreightEstimator) Rates() RateTable {
	return e.rates
}

// Estimate validates input and computes the full cost breakdown.
// The only error returned is *InvalidInputError.
func (e *FreightEstimator) Estimate(input TripInput) (CostBreakdown, error) {
	if err := input.Validate(); err != nil {
		return CostBreakdown{}, err
	}

	class := input.VehicleClass

	// Products are converted explicitly so they are rounded before being
	// summed; a fused multiply-add would break the reported totals.
	fuelConsumption := input.Distance / e.rates.ConsumptionRate(class)
	fuelCost := float64(fuelConsumption * input.FuelUnitPrice)
	tollCost := float64(input.Distance * input.TollPerDistanceUnit)
	maintenanceCost := float64(input.Distance * e.rates.MaintenanceRate(class))
	driverCost := float64(input.Distance * e.rates.DriverRate(class))

	baseFreight := fuelCost + tollCost + maintenanceCost + driverCost
	insuranceCost := float64(baseFreight * InsuranceRate)
	subtotal := baseFreight + insuranceCost

	// The surcharge applies to the subtotal, insurance included. Saved
	// quotations were priced this way.
	urgencySurcharge := float64(subtotal * e.rates.UrgencyFactor(input.Urgency))

	escortCost := 0.0
	if input.HasEscort {
		escortCost = *input.EscortCost
	}

	total := subtotal + urgencySurcharge + escortCost

	return CostBreakdown{
		FuelConsumption:     fuelConsumption,
		FuelCost:            fuelCost,
		TollCost:            tollCost,
		MaintenanceCost:     maintenanceCost,
		DriverCost:          driverCost,
		BaseFreight:         baseFreight,
		InsuranceCost:       insuranceCost,
		Subtotal:            subtotal,
		UrgencySurcharge:    urgencySurcharge,
		EscortCost:          escortCost,
		Total:               total,
		CostPerDistanceUnit: total / input.Distance,
	}, nil
}
