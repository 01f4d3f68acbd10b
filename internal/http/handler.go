package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ecolog/freightquote/internal/domain"
	"github.com/ecolog/freightquote/internal/observability"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests.
type Handler struct {
	quotations *domain.QuotationService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(quotations *domain.QuotationService) *Handler {
	return &Handler{
		quotations: quotations,
	}
}

// RatesResponse is the body of GET /v1/rates.
type RatesResponse struct {
	Vehicles      map[domain.VehicleClass]domain.VehicleRates `json:"vehicles"`
	Urgency       map[domain.UrgencyLevel]float64             `json:"urgency"`
	InsuranceRate float64                                     `json:"insurance_rate"`
}

// ListResponse is the body of GET /v1/quotations.
type ListResponse struct {
	Quotations []*domain.Quotation `json:"quotations"`
}

// HandleEstimate prices a trip without saving it.
func (h *Handler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.TripInput
	if !decodeBody(w, r, &input) {
		return
	}

	breakdown, err := h.quotations.Estimate(ctx, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if encodeErr := writeJSON(w, http.StatusOK, breakdown); encodeErr != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleCreate prices a trip and saves it to the history.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.QuotationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quotation, err := h.quotations.Create(ctx, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/quotations/"+quotation.ID)
	if encodeErr := writeJSON(w, http.StatusCreated, quotation); encodeErr != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleList returns the quotation history, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeProblem(w, r, http.StatusBadRequest, "Invalid query", "limit must be a non-negative integer", "limit")
			return
		}
		limit = parsed
	}

	quotations, err := h.quotations.List(ctx, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if encodeErr := writeJSON(w, http.StatusOK, ListResponse{Quotations: quotations}); encodeErr != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleGet returns one saved quotation.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	quotation, err := h.quotations.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if encodeErr := writeJSON(w, http.StatusOK, quotation); encodeErr != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleDelete removes a saved quotation.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.quotations.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRates returns the rate table in use.
func (h *Handler) HandleRates(w http.ResponseWriter, r *http.Request) {
	rates := h.quotations.Rates()
	resp := RatesResponse{
		Vehicles:      rates.Vehicles(),
		Urgency:       rates.UrgencyFactors(),
		InsuranceRate: domain.InsuranceRate,
	}

	if encodeErr := writeJSON(w, http.StatusOK, resp); encodeErr != nil {
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it.
		return
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		var invalidErr *domain.InvalidInputError
		if errors.As(err, &invalidErr) {
			writeProblem(w, r, http.StatusBadRequest, "Invalid trip input", invalidErr.Error(), invalidErr.Field)
			return false
		}
		writeProblem(w, r, http.StatusBadRequest, "Invalid request body", fmt.Sprintf("invalid request body: %v", err), "")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidErr *domain.InvalidInputError
	switch {
	case errors.As(err, &invalidErr):
		writeProblem(w, r, http.StatusBadRequest, "Invalid trip input", invalidErr.Error(), invalidErr.Field)
	case errors.Is(err, domain.ErrQuotationNotFound):
		writeProblem(w, r, http.StatusNotFound, "Quotation not found", err.Error(), "")
	default:
		observability.FromContext(r.Context()).Error("request failed", observability.Error(err))
		writeProblem(w, r, http.StatusInternalServerError, "Internal error", "", "")
	}
}
