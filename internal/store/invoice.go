package store

import (
	"context"

	"github.com/phrazzld/telecom-billing/internal/domain"
)

// InvoiceStore defines the interface for invoice persistence.
type InvoiceStore interface {
	// FindBySubscriberID returns the invoices issued to a subscriber, ordered by ID.
	// Returns an empty slice if there are none.
	FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Invoice, error)

	// FindUnpaid returns every invoice that has not been paid yet.
	FindUnpaid(ctx context.Context) ([]*domain.Invoice, error)

	// FindSubscriberIDByInvoiceID resolves the owner of an invoice.
	// Unlike SubscriberStore.FindByID, a missing invoice is an error:
	// it returns ErrEntryNotFound. A nil result with no error means the
	// invoice exists but carries no subscriber reference.
	FindSubscriberIDByInvoiceID(ctx context.Context, invoiceID int64) (*int64, error)

	// Pay marks the invoice as paid and reports success.
	// Returns ErrEntryNotFound if no invoice has the given ID.
	// Paying an already paid invoice succeeds again without further change.
	Pay(ctx context.Context, invoiceID int64) (bool, error)

	// Add inserts a new invoice and returns a copy carrying the generated ID.
	// Returns ErrEntryNotFound if the referenced subscriber does not exist.
	Add(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
}
