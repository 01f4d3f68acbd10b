package store

import (
	"context"
	"errors"
	"sync"

	"github.com/ecolog/freightquote/internal/domain"
)

// Memory keeps the quotation history in process, newest first.
type Memory struct {
	mu         sync.RWMutex
	quotations []*domain.Quotation
	limit      int
}

// NewMemory creates an in-memory store holding at most limit quotations.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Memory{
		mu:         sync.RWMutex{},
		quotations: make([]*domain.Quotation, 0, limit),
		limit:      limit,
	}
}

// Save prepends a quotation, replacing any entry with the same ID and evicting the oldest beyond the limit.
func (m *Memory) Save(_ context.Context, quotation *domain.Quotation) error {
	if quotation == nil || quotation.ID == "" {
		return errors.New("quotation id cannot be empty")
	}

	stored := cloneQuotation(quotation)

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(quotation.ID); i >= 0 {
		m.quotations = append(m.quotations[:i], m.quotations[i+1:]...)
	}

	m.quotations = append([]*domain.Quotation{stored}, m.quotations...)
	if len(m.quotations) > m.limit {
		m.quotations = m.quotations[:m.limit]
	}
	return nil
}

// List returns up to limit quotations, newest first.
func (m *Memory) List(_ context.Context, limit int) ([]*domain.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.quotations) {
		limit = len(m.quotations)
	}

	out := make([]*domain.Quotation, 0, limit)
	for _, q := range m.quotations[:limit] {
		out = append(out, cloneQuotation(q))
	}
	return out, nil
}

// Get retrieves a quotation by ID.
func (m *Memory) Get(_ context.Context, id string) (*domain.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, domain.ErrQuotationNotFound
	}
	return cloneQuotation(m.quotations[i]), nil
}

// Delete removes a quotation by ID.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return domain.ErrQuotationNotFound
	}
	m.quotations = append(m.quotations[:i], m.quotations[i+1:]...)
	return nil
}

func (m *Memory) indexOf(id string) int {
	for i, q := range m.quotations {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// cloneQuotation copies q so that neither the caller nor the history sees
// later mutations through shared pointers.
func cloneQuotation(q *domain.Quotation) *domain.Quotation {
	c := *q
	if q.Trip.EscortCost != nil {
		cost := *q.Trip.EscortCost
		c.Trip.EscortCost = &cost
	}
	return &c
}
