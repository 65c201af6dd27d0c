package store

import (
	"context"

	"github.com/phrazzld/telecom-billing/internal/domain"
)

// ServiceStore defines the interface for the service catalog and its
// many-to-many links to subscribers.
type ServiceStore interface {
	// FindAll returns the whole catalog ordered by ID.
	FindAll(ctx context.Context) ([]*domain.Service, error)

	// FindBySubscriberID returns the services linked to a subscriber.
	// Returns an empty slice if the subscriber has no services or does not exist.
	FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Service, error)

	// Add inserts a new service and returns a copy carrying the generated ID.
	// Returns ErrDuplicateEntry if the name is already taken.
	Add(ctx context.Context, service *domain.Service) (*domain.Service, error)

	// LinkServiceToSubscriber connects a service to a subscriber.
	// Returns ErrEntryNotFound if either ID does not reference an existing record.
	// Returns ErrDuplicateEntry if the pair is already linked.
	// A failed call leaves no link row behind.
	LinkServiceToSubscriber(ctx context.Context, subscriberID, serviceID int64) error

	// DeleteAll removes every service together with its links.
	// It exists for resetting demo data only.
	DeleteAll(ctx context.Context) error
}
