package domain

import "context"

// Estimator computes a cost breakdown for a trip.
type Estimator interface {
	// Estimate returns the breakdown or an *InvalidInputError.
	Estimate(input TripInput) (CostBreakdown, error)

	// Rates returns the rate table in use.
	Rates() RateTable
}

// QuotationStore persists saved quotations, newest first.
type QuotationStore interface {
	// Save stores a quotation, evicting the oldest entries beyond the history limit.
	Save(ctx context.Context, quotation *Quotation) error

	// List returns up to limit quotations, newest first.
	List(ctx context.Context, limit int) ([]*Quotation, error)

	// Get retrieves a quotation by ID.
	Get(ctx context.Context, id string) (*Quotation, error)

	// Delete removes a quotation by ID.
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// QuotationRecorder receives estimate outcomes for metrics.
type QuotationRecorder interface {
	// ObserveEstimate records a successful estimate.
	ObserveEstimate(vehicleClass, urgency string, total float64)

	// ObserveRejection records input rejected on the given field.
	ObserveRejection(field string)
}
