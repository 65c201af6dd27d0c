package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

// Invoices move from unpaid to paid only.
const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

// Invoice is a bill issued to a subscriber.
//
// SubscriberID is required when the invoice is created. A zero value on a
// read means the reference was absent from the stored row.
type Invoice struct {
	ID           int64           `json:"id"`
	SubscriberID int64           `json:"subscriber_id" validate:"gt=0"`
	Amount       decimal.Decimal `json:"amount"        validate:"-"`
	IssueDate    time.Time       `json:"issue_date"    validate:"-"`
	IsPaid       bool            `json:"is_paid"`
}

// NewInvoice creates an unpaid invoice for the subscriber.
func NewInvoice(subscriberID int64, amount decimal.Decimal, issueDate time.Time) (*Invoice, error) {
	inv := &Invoice{
		SubscriberID: subscriberID,
		Amount:       amount,
		IssueDate:    DateOf(issueDate),
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate checks the invoice's fields.
func (i *Invoice) Validate() error {
	if i.SubscriberID <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingSubscriber)
	}
	if err := validateStruct(i); err != nil {
		return err
	}
	if i.Amount.IsNegative() {
		return fmt.Errorf("%w: amount: %w", ErrValidation, ErrNegativeAmount)
	}
	if err := validateAmount("amount", i.Amount); err != nil {
		return err
	}
	if i.IssueDate.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingIssueDate)
	}
	return nil
}

// Status reports the invoice state.
func (i *Invoice) Status() InvoiceStatus {
	if i.IsPaid {
		return InvoicePaid
	}
	return InvoiceUnpaid
}

// Pay moves the invoice to the paid state. Paying twice is a no-op.
func (i *Invoice) Pay() {
	i.IsPaid = true
}

// DateOf truncates t to a calendar date in UTC, matching the DATE column.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
