package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ecolog/freightquote/internal/observability"
)

func TestFromContext_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(nil) })

	ctx := context.Background()
	ctx = observability.WithTraceID(ctx, "trace-1")
	ctx = observability.WithRequestID(ctx, "req-1")
	ctx = observability.WithQuotationID(ctx, "q-1")
	ctx = observability.WithVehicleClass(ctx, "truck")

	observability.FromContext(ctx).Info("priced")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "trace-1", fields["trace_id"])
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "q-1", fields["quotation_id"])
	require.Equal(t, "truck", fields["vehicle_class"])
	require.NotContains(t, fields, "span_id")
}

func TestGenerateIDs(t *testing.T) {
	require.NotEqual(t, observability.GenerateTraceID(), observability.GenerateTraceID())
	require.NotEmpty(t, observability.GenerateSpanID())
	require.NotEmpty(t, observability.GenerateRequestID())
	require.Empty(t, observability.GetTraceID(context.Background()))
}

func TestEventBus_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := observability.NewEventBus(zap.New(core))

	ctx := observability.WithRequestID(context.Background(), "req-7")
	bus.Publish(ctx, "quotation.saved", map[string]interface{}{
		"quotation_id": "q-7",
		"total":        2090.7,
	})

	entries := logs.FilterMessage("event published").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "quotation.saved", fields["event"])
	require.Equal(t, "q-7", fields["quotation_id"])
	require.InDelta(t, 2090.7, fields["total"], 1e-9)
	require.Equal(t, "req-7", fields["request_id"])

	require.NotPanics(t, func() {
		observability.NewEventBus(nil).Publish(ctx, "ignored", nil)
	})
}
