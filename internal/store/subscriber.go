package store

import (
	"context"

	"github.com/phrazzld/telecom-billing/internal/domain"
)

// SubscriberStore defines the interface for subscriber persistence.
type SubscriberStore interface {
	// FindByID retrieves a subscriber by ID.
	// Returns nil and no error if the subscriber does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Subscriber, error)

	// FindAll returns every subscriber ordered by ID.
	// Returns an empty slice if there are none.
	FindAll(ctx context.Context) ([]*domain.Subscriber, error)

	// Block marks the subscriber as blocked.
	// Returns ErrEntryNotFound if no subscriber has the given ID.
	// Blocking an already blocked subscriber succeeds.
	Block(ctx context.Context, id int64) error

	// Add inserts a new subscriber and returns a copy carrying the generated ID.
	// The ID of the argument is ignored.
	// Returns ErrDuplicateEntry if the phone number is already registered.
	Add(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error)

	// DeleteAll removes every subscriber together with their invoices and
	// service links. It exists for resetting demo data only.
	DeleteAll(ctx context.Context) error
}
