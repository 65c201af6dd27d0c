package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Subscriber is a telecom customer identified by a unique phone number.
// Linked services and issued invoices are not mirrored here; they are read
// through the service and invoice stores.
type Subscriber struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"         validate:"required,max=255"`
	PhoneNumber string          `json:"phone_number" validate:"required,max=20,e164"`
	Balance     decimal.Decimal `json:"balance"      validate:"-"`
	IsBlocked   bool            `json:"is_blocked"`
}

// NewSubscriber creates an unblocked subscriber with the given balance.
// The ID is left zero; it is assigned by the store on insert.
func NewSubscriber(name, phoneNumber string, balance decimal.Decimal) (*Subscriber, error) {
	s := &Subscriber{
		Name:        strings.TrimSpace(name),
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Balance:     balance,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the subscriber's fields. Balance may be negative (debt).
func (s *Subscriber) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	return validateAmount("balance", s.Balance)
}

// Block marks the subscriber as blocked. There is no way back.
func (s *Subscriber) Block() {
	s.IsBlocked = true
}
