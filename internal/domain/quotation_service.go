package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecolog/freightquote/internal/observability"
)

// Event types published by QuotationService.
const (
	EventQuotationEstimated = "quotation.estimated"
	EventQuotationSaved     = "quotation.saved"
	EventQuotationDeleted   = "quotation.deleted"
)

// QuotationService orchestrates estimates and the quotation history.
type QuotationService struct {
	estimator Estimator
	store     QuotationStore
	events    EventPublisher
	recorder  QuotationRecorder
	now       func() time.Time
}

// NewQuotationService creates a new quotation service (DI constructor).
func NewQuotationService(
	estimator Estimator,
	store QuotationStore,
	events EventPublisher,
	recorder QuotationRecorder,
) *QuotationService {
	return &QuotationService{
		estimator: estimator,
		store:     store,
		events:    events,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Rates returns the rate table used for estimates.
func (s *QuotationService) Rates() RateTable {
	return s.estimator.Rates()
}

// Estimate prices a trip without saving it.
func (s *QuotationService) Estimate(ctx context.Context, input TripInput) (CostBreakdown, error) {
	if input.VehicleClass.Valid() {
		ctx = observability.WithVehicleClass(ctx, input.VehicleClass.String())
	}
	logger := observability.FromContext(ctx)

	breakdown, err := s.estimator.Estimate(input)
	if err != nil {
		var invalidErr *InvalidInputError
		if errors.As(err, &invalidErr) {
			logger.Info("trip input rejected",
				observability.String("field", invalidErr.Field),
				observability.String("reason", invalidErr.Reason))
			s.observeRejection(invalidErr.Field)
		}
		return CostBreakdown{}, err
	}

	logger.Info("freight estimated",
		observability.String("urgency", input.Urgency.String()),
		observability.Float64("distance", input.Distance),
		observability.Float64("total", breakdown.Total))

	if s.recorder != nil {
		s.recorder.ObserveEstimate(input.VehicleClass.String(), input.Urgency.String(), breakdown.Total)
	}
	s.publish(ctx, EventQuotationEstimated, map[string]interface{}{
		"vehicle_class": input.VehicleClass.String(),
		"urgency":       input.Urgency.String(),
		"total":         breakdown.Total,
	})

	return breakdown, nil
}

// Create prices a trip and saves it to the history.
func (s *QuotationService) Create(ctx context.Context, req *QuotationRequest) (*Quotation, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	breakdown, err := s.Estimate(ctx, req.Trip)
	if err != nil {
		return nil, err
	}

	quotation := &Quotation{
		ID:          uuid.New().String(),
		CreatedAt:   s.now().UTC(),
		Client:      req.Client,
		CNPJ:        req.CNPJ,
		Origin:      req.Origin,
		Destination: req.Destination,
		Trip:        req.Trip,
		Breakdown:   breakdown,
	}

	ctx = observability.WithQuotationID(ctx, quotation.ID)
	logger := observability.FromContext(ctx)

	if saveErr := s.store.Save(ctx, quotation); saveErr != nil {
		logger.Error("failed to save quotation", observability.Error(saveErr))
		return nil, fmt.Errorf("failed to save quotation: %w", saveErr)
	}

	logger.Info("quotation saved",
		observability.String("client", quotation.Client),
		observability.String("origin", quotation.Origin),
		observability.String("destination", quotation.Destination))
	s.publish(ctx, EventQuotationSaved, map[string]interface{}{
		"quotation_id": quotation.ID,
		"total":        breakdown.Total,
	})

	return quotation, nil
}

// List returns saved quotations, newest first. A non-positive limit returns
// the whole history; the store caps it at its configured history limit.
func (s *QuotationService) List(ctx context.Context, limit int) ([]*Quotation, error) {
	if limit < 0 {
		limit = 0
	}

	quotations, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	return quotations, nil
}

// Get returns a saved quotation.
func (s *QuotationService) Get(ctx context.Context, id string) (*Quotation, error) {
	if id == "" {
		return nil, ErrQuotationNotFound
	}

	quotation, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotation %s: %w", id, err)
	}
	return quotation, nil
}

// Delete removes a saved quotation.
func (s *QuotationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrQuotationNotFound
	}

	ctx = observability.WithQuotationID(ctx, id)

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation %s: %w", id, err)
	}

	observability.FromContext(ctx).Info("quotation deleted")
	s.publish(ctx, EventQuotationDeleted, map[string]interface{}{
		"quotation_id": id,
	})
	return nil
}

func (s *QuotationService) observeRejection(field string) {
	if s.recorder != nil {
		s.recorder.ObserveRejection(field)
	}
}

func (s *QuotationService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events != nil {
		s.events.Publish(ctx, eventType, data)
	}
}
