package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Service is an entry of the service catalog with a monthly fee.
type Service struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"        validate:"required,max=255"`
	MonthlyFee decimal.Decimal `json:"monthly_fee" validate:"-"`
}

// NewService creates a catalog entry. The ID is assigned by the store.
func NewService(name string, monthlyFee decimal.Decimal) (*Service, error) {
	s := &Service{
		Name:       strings.TrimSpace(name),
		MonthlyFee: monthlyFee,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the service's fields.
func (s *Service) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	if s.MonthlyFee.IsNegative() {
		return fmt.Errorf("%w: monthly fee: %w", ErrValidation, ErrNegativeAmount)
	}
	return validateAmount("monthly fee", s.MonthlyFee)
}
