package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecolog/freightquote/internal/domain"
)

func TestDefaultRateTable(t *testing.T) {
	rates := domain.DefaultRateTable()

	tests := []struct {
		class       domain.VehicleClass
		consumption float64
		maintenance float64
		driver      float64
	}{
		{domain.VehicleTruck, 5, 0.80, 1.5},
		{domain.VehiclePickupTruck, 8, 0.40, 0.9},
		{domain.VehicleVan, 10, 0.35, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			require.InDelta(t, tt.consumption, rates.ConsumptionRate(tt.class), 1e-12)
			require.InDelta(t, tt.maintenance, rates.MaintenanceRate(tt.class), 1e-12)
			require.InDelta(t, tt.driver, rates.DriverRate(tt.class), 1e-12)
		})
	}

	require.InDelta(t, 0.0, rates.UrgencyFactor(domain.UrgencyLow), 1e-12)
	require.InDelta(t, 0.15, rates.UrgencyFactor(domain.UrgencyMedium), 1e-12)
	require.InDelta(t, 0.30, rates.UrgencyFactor(domain.UrgencyHigh), 1e-12)
	require.InDelta(t, 0.01, domain.InsuranceRate, 1e-12)
}

func TestRateTable_UndeclaredValuesPanic(t *testing.T) {
	rates := domain.DefaultRateTable()

	require.Panics(t, func() { rates.ConsumptionRate(domain.VehicleClass(0)) })
	require.Panics(t, func() { rates.DriverRate(domain.VehicleClass(42)) })
	require.Panics(t, func() { rates.UrgencyFactor(domain.UrgencyLevel(0)) })
}

func TestNewRateTable_Validation(t *testing.T) {
	validVehicles := func() map[domain.VehicleClass]domain.VehicleRates {
		return domain.DefaultRateTable().Vehicles()
	}
	validUrgency := func() map[domain.UrgencyLevel]float64 {
		return domain.DefaultRateTable().UrgencyFactors()
	}

	t.Run("round trips the default table", func(t *testing.T) {
		rates, err := domain.NewRateTable(validVehicles(), validUrgency())
		require.NoError(t, err)
		require.Equal(t, domain.DefaultRateTable(), rates)
	})

	t.Run("missing vehicle class", func(t *testing.T) {
		vehicles := validVehicles()
		delete(vehicles, domain.VehicleVan)

		_, err := domain.NewRateTable(vehicles, validUrgency())
		require.ErrorContains(t, err, "van")
	})

	t.Run("zero consumption rate", func(t *testing.T) {
		vehicles := validVehicles()
		vehicles[domain.VehicleTruck] = domain.VehicleRates{ConsumptionRate: 0, MaintenanceRate: 1, DriverRate: 1}

		_, err := domain.NewRateTable(vehicles, validUrgency())
		require.Error(t, err)
	})

	t.Run("negative driver rate", func(t *testing.T) {
		vehicles := validVehicles()
		vehicles[domain.VehicleVan] = domain.VehicleRates{ConsumptionRate: 10, MaintenanceRate: 0, DriverRate: -1}

		_, err := domain.NewRateTable(vehicles, validUrgency())
		require.Error(t, err)
	})

	t.Run("urgency factor of one", func(t *testing.T) {
		urgency := validUrgency()
		urgency[domain.UrgencyHigh] = 1

		_, err := domain.NewRateTable(validVehicles(), urgency)
		require.Error(t, err)
	})

	t.Run("missing urgency level", func(t *testing.T) {
		urgency := validUrgency()
		delete(urgency, domain.UrgencyLow)

		_, err := domain.NewRateTable(validVehicles(), urgency)
		require.ErrorContains(t, err, "low")
	})
}

func TestParseVehicleClass(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.VehicleClass
	}{
		{"truck", domain.VehicleTruck},
		{"Caminhão", domain.VehicleTruck},
		{" TRUCK ", domain.VehicleTruck},
		{"pickup_truck", domain.VehiclePickupTruck},
		{"Pickup Truck", domain.VehiclePickupTruck},
		{"Picape", domain.VehiclePickupTruck},
		{"van", domain.VehicleVan},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			class, err := domain.ParseVehicleClass(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, class)
		})
	}

	_, err := domain.ParseVehicleClass("bicycle")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseUrgencyLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.UrgencyLevel
	}{
		{"low", domain.UrgencyLow},
		{"Baixa", domain.UrgencyLow},
		{"medium", domain.UrgencyMedium},
		{"Média", domain.UrgencyMedium},
		{"media", domain.UrgencyMedium},
		{"HIGH", domain.UrgencyHigh},
		{"Alta", domain.UrgencyHigh},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := domain.ParseUrgencyLevel(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, level)
		})
	}

	_, err := domain.ParseUrgencyLevel("critical")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTripInput_JSON(t *testing.T) {
	t.Run("decodes labels", func(t *testing.T) {
		var in domain.TripInput
		err := json.Unmarshal([]byte(`{
			"distance": 500,
			"fuel_unit_price": 6,
			"toll_per_distance_unit": 0.1,
			"vehicle_class": "Caminhão",
			"urgency": "medium",
			"has_escort": true,
			"escort_cost": 300
		}`), &in)
		require.NoError(t, err)
		require.Equal(t, domain.VehicleTruck, in.VehicleClass)
		require.Equal(t, domain.UrgencyMedium, in.Urgency)
		require.NotNil(t, in.EscortCost)
		require.InDelta(t, 300.0, *in.EscortCost, 1e-12)
	})

	t.Run("unknown vehicle class reports the field", func(t *testing.T) {
		var in domain.TripInput
		err := json.Unmarshal([]byte(`{"vehicle_class": "bicycle"}`), &in)

		var invalidErr *domain.InvalidInputError
		require.ErrorAs(t, err, &invalidErr)
		require.Equal(t, domain.FieldVehicleClass, invalidErr.Field)
	})

	t.Run("encodes canonical names", func(t *testing.T) {
		data, err := json.Marshal(baseTrip())
		require.NoError(t, err)
		require.Contains(t, string(data), `"vehicle_class":"truck"`)
		require.Contains(t, string(data), `"urgency":"medium"`)
	})
}
