package mocks

import (
	"fmt"
	"slices"
	"sync"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// Billing bundles the three store mocks over one shared in-memory state.
type Billing struct {
	Subscribers *MockSubscriberStore
	Services    *MockServiceStore
	Invoices    *MockInvoiceStore
}

// NewBilling creates empty store mocks sharing one state.
func NewBilling() *Billing {
	m := &memory{
		subscribers: map[int64]*domain.Subscriber{},
		services:    map[int64]*domain.Service{},
		invoices:    map[int64]*domain.Invoice{},
		links:       map[link]struct{}{},
	}
	return &Billing{
		Subscribers: &MockSubscriberStore{mem: m},
		Services:    &MockServiceStore{mem: m},
		Invoices:    &MockInvoiceStore{mem: m},
	}
}

type link struct {
	subscriberID int64
	serviceID    int64
}

// memory is the shared state. IDs are never reused, like a SERIAL column.
type memory struct {
	mu          sync.Mutex
	subscribers map[int64]*domain.Subscriber
	services    map[int64]*domain.Service
	invoices    map[int64]*domain.Invoice
	links       map[link]struct{}
	nextID      struct{ subscriber, service, invoice int64 }
}

func notFound(entity, operation, format string, args ...any) error {
	return store.NewStoreError(entity, operation, store.ErrEntryNotFound, fmt.Sprintf(format, args...), nil)
}

func duplicate(entity, operation, message string) error {
	return store.NewStoreError(entity, operation, store.ErrDuplicateEntry, message, nil)
}

// sortedValues returns copies of the map values ordered by ID.
func sortedValues[T any](m map[int64]*T, include func(*T) bool) []*T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if include == nil || include(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		c := *m[id]
		out = append(out, &c)
	}
	return out
}
