package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscriber(t *testing.T) {
	s, err := NewSubscriber("  Иван Иванов ", "+375291234567", decimal.RequireFromString("150.50"))
	require.NoError(t, err)

	assert.Zero(t, s.ID, "ID is assigned by the store")
	assert.Equal(t, "Иван Иванов", s.Name)
	assert.Equal(t, "+375291234567", s.PhoneNumber)
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("150.5")))
	assert.False(t, s.IsBlocked)
}

func TestSubscriberValidate(t *testing.T) {
	tests := []struct {
		name    string
		sub     Subscriber
		wantErr error
	}{
		{
			name: "valid",
			sub:  Subscriber{Name: "Ivan", PhoneNumber: "+375291234567"},
		},
		{
			name: "negative balance is allowed",
			sub:  Subscriber{Name: "Petr", PhoneNumber: "+375337654321", Balance: decimal.NewFromInt(-50)},
		},
		{
			name: "largest storable balance",
			sub:  Subscriber{Name: "Ivan", PhoneNumber: "+375291234567", Balance: decimal.RequireFromString("99999999.99")},
		},
		{
			name: "trailing zeros beyond cents",
			sub:  Subscriber{Name: "Ivan", PhoneNumber: "+375291234567", Balance: decimal.RequireFromString("150.500")},
		},
		{
			name:    "fraction of a cent",
			sub:     Subscriber{Name: "Ivan", PhoneNumber: "+375291234567", Balance: decimal.RequireFromString("150.505")},
			wantErr: ErrAmountPrecision,
		},
		{
			name:    "balance overflows numeric(10,2)",
			sub:     Subscriber{Name: "Ivan", PhoneNumber: "+375291234567", Balance: decimal.RequireFromString("123456789012.00")},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "negative balance overflows numeric(10,2)",
			sub:     Subscriber{Name: "Petr", PhoneNumber: "+375337654321", Balance: decimal.NewFromInt(-100000000)},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "empty name",
			sub:     Subscriber{Name: "", PhoneNumber: "+375291234567"},
			wantErr: ErrValidation,
		},
		{
			name:    "name too long",
			sub:     Subscriber{Name: strings.Repeat("a", 256), PhoneNumber: "+375291234567"},
			wantErr: ErrValidation,
		},
		{
			name:    "empty phone",
			sub:     Subscriber{Name: "Ivan"},
			wantErr: ErrValidation,
		},
		{
			name:    "phone without plus",
			sub:     Subscriber{Name: "Ivan", PhoneNumber: "375291234567"},
			wantErr: ErrInvalidPhoneNumber,
		},
		{
			name:    "phone with letters",
			sub:     Subscriber{Name: "Ivan", PhoneNumber: "+37529abc4567"},
			wantErr: ErrInvalidPhoneNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewSubscriberRejectsUnstorableBalance(t *testing.T) {
	s, err := NewSubscriber("Ivan", "+375291234567", decimal.RequireFromString("150.505"))
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrAmountPrecision)
}

func TestSubscriberBlock(t *testing.T) {
	s := &Subscriber{Name: "Ivan", PhoneNumber: "+375291234567"}
	s.Block()
	assert.True(t, s.IsBlocked)

	s.Block()
	assert.True(t, s.IsBlocked, "blocking twice keeps the subscriber blocked")
}
