package mocks

import (
	"context"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// MockInvoiceStore implements store.InvoiceStore for testing.
type MockInvoiceStore struct {
	mem *memory

	// Function fields for customizable behavior
	FindBySubscriberIDFn          func(ctx context.Context, subscriberID int64) ([]*domain.Invoice, error)
	FindUnpaidFn                  func(ctx context.Context) ([]*domain.Invoice, error)
	FindSubscriberIDByInvoiceIDFn func(ctx context.Context, invoiceID int64) (*int64, error)
	PayFn                         func(ctx context.Context, invoiceID int64) (bool, error)
	AddFn                         func(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
}

var _ store.InvoiceStore = (*MockInvoiceStore)(nil)

// FindBySubscriberID implements the InvoiceStore interface
func (m *MockInvoiceStore) FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Invoice, error) {
	if m.FindBySubscriberIDFn != nil {
		return m.FindBySubscriberIDFn(ctx, subscriberID)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	return sortedValues(m.mem.invoices, func(inv *domain.Invoice) bool {
		return inv.SubscriberID == subscriberID
	}), nil
}

// FindUnpaid implements the InvoiceStore interface
func (m *MockInvoiceStore) FindUnpaid(ctx context.Context) ([]*domain.Invoice, error) {
	if m.FindUnpaidFn != nil {
		return m.FindUnpaidFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	return sortedValues(m.mem.invoices, func(inv *domain.Invoice) bool {
		return !inv.IsPaid
	}), nil
}

// FindSubscriberIDByInvoiceID implements the InvoiceStore interface
func (m *MockInvoiceStore) FindSubscriberIDByInvoiceID(ctx context.Context, invoiceID int64) (*int64, error) {
	if m.FindSubscriberIDByInvoiceIDFn != nil {
		return m.FindSubscriberIDByInvoiceIDFn(ctx, invoiceID)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	inv, ok := m.mem.invoices[invoiceID]
	if !ok {
		return nil, notFound("invoice", "find_subscriber_id", "Счет с ID %d не найден.", invoiceID)
	}
	if inv.SubscriberID == 0 {
		return nil, nil
	}
	id := inv.SubscriberID
	return &id, nil
}

// Pay implements the InvoiceStore interface
func (m *MockInvoiceStore) Pay(ctx context.Context, invoiceID int64) (bool, error) {
	if m.PayFn != nil {
		return m.PayFn(ctx, invoiceID)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	inv, ok := m.mem.invoices[invoiceID]
	if !ok {
		return false, notFound("invoice", "pay", "Счет с ID %d не найден.", invoiceID)
	}
	inv.Pay()
	return true, nil
}

// Add implements the InvoiceStore interface
func (m *MockInvoiceStore) Add(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, invoice)
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	if _, ok := m.mem.subscribers[invoice.SubscriberID]; !ok {
		return nil, notFound("invoice", "add", "Абонент с ID %d не найден.", invoice.SubscriberID)
	}

	m.mem.nextID.invoice++
	created := *invoice
	created.ID = m.mem.nextID.invoice
	created.IssueDate = domain.DateOf(invoice.IssueDate)
	stored := created
	m.mem.invoices[created.ID] = &stored
	return &created, nil
}
