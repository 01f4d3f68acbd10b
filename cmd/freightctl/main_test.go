package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecolog/freightquote/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateCmd(t *testing.T) {
	t.Run("prints the breakdown", func(t *testing.T) {
		out, err := execute(t, "estimate",
			"--distance", "500", "--fuel-price", "6,00", "--toll", "0.10",
			"--vehicle", "Caminhão", "--urgency", "Média")
		require.NoError(t, err)
		require.Contains(t, out, "Total")
		require.Contains(t, out, "2090.70")
		require.Contains(t, out, "272.70")
	})

	t.Run("prints JSON with escort", func(t *testing.T) {
		out, err := execute(t, "estimate",
			"--distance", "500", "--fuel-price", "6", "--toll", "0.10",
			"--vehicle", "truck", "--urgency", "medium", "--escort-cost", "300", "--json")
		require.NoError(t, err)

		var result estimateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.True(t, result.Input.HasEscort)
		require.InDelta(t, 300.0, result.Breakdown.EscortCost, 1e-9)
		require.InDelta(t, 2390.70, result.Breakdown.Total, 1e-9)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := execute(t, "estimate",
			"--distance", "-1", "--fuel-price", "6", "--vehicle", "truck")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("requires the vehicle flag", func(t *testing.T) {
		_, err := execute(t, "estimate", "--distance", "10", "--fuel-price", "6")
		require.ErrorContains(t, err, "vehicle")
	})

	t.Run("uses the rate file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.yaml")
		require.NoError(t, os.WriteFile(path, []byte("urgency:\n  low: 0.5\n"), 0o600))

		out, err := execute(t, "estimate", "--rates-file", path,
			"--distance", "500", "--fuel-price", "6", "--toll", "0.10",
			"--vehicle", "truck", "--urgency", "low", "--json")
		require.NoError(t, err)

		var result estimateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.InDelta(t, 909.0, result.Breakdown.UrgencySurcharge, 1e-9)
	})
}

func TestRatesCmd(t *testing.T) {
	t.Run("prints the default table", func(t *testing.T) {
		out, err := execute(t, "rates")
		require.NoError(t, err)
		require.Contains(t, out, "pickup_truck")
		require.Contains(t, out, "0.30")
	})

	t.Run("prints JSON", func(t *testing.T) {
		out, err := execute(t, "rates", "--json")
		require.NoError(t, err)

		var result ratesJSON
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result.Vehicles, 3)
		require.InDelta(t, 5.0, result.Vehicles["truck"].ConsumptionRate, 1e-12)
		require.InDelta(t, 0.15, result.Urgency["medium"], 1e-12)
		require.InDelta(t, 0.01, result.InsuranceRate, 1e-12)
	})

	t.Run("reports missing rate file", func(t *testing.T) {
		_, err := execute(t, "rates", "--rates-file", filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}
