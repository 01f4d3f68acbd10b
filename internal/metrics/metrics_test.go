package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ecolog/freightquote/internal/metrics"
)

func TestMetrics_Observations(t *testing.T) {
	m := metrics.New()

	m.ObserveEstimate("truck", "medium", 2090.70)
	m.ObserveEstimate("truck", "medium", 1500)
	m.ObserveEstimate("van", "low", 300)
	m.ObserveRejection("distance")
	m.ObserveRequest(http.MethodPost, "POST /v1/quotations/estimate", http.StatusOK, 15*time.Millisecond)

	expected := `
# HELP freight_estimates_total Freight estimates computed.
# TYPE freight_estimates_total counter
freight_estimates_total{urgency="low",vehicle_class="van"} 1
freight_estimates_total{urgency="medium",vehicle_class="truck"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "freight_estimates_total"))

	expected = `
# HELP freight_input_rejections_total Trip inputs rejected by field.
# TYPE freight_input_rejections_total counter
freight_input_rejections_total{field="distance"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "freight_input_rejections_total"))

	count, err := testutil.GatherAndCount(m.Registry(), "http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveRejection("fuel_unit_price")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `freight_input_rejections_total{field="fuel_unit_price"} 1`)
	require.Contains(t, w.Body.String(), "go_goroutines")
}
