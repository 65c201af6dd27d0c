package mocks

import (
	"context"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// MockSubscriberStore implements store.SubscriberStore for testing.
type MockSubscriberStore struct {
	mem *memory

	// Function fields for customizable behavior
	FindByIDFn  func(ctx context.Context, id int64) (*domain.Subscriber, error)
	FindAllFn   func(ctx context.Context) ([]*domain.Subscriber, error)
	BlockFn     func(ctx context.Context, id int64) error
	AddFn       func(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error)
	DeleteAllFn func(ctx context.Context) error
}

var _ store.SubscriberStore = (*MockSubscriberStore)(nil)

// FindByID implements the SubscriberStore interface
func (m *MockSubscriberStore) FindByID(ctx context.Context, id int64) (*domain.Subscriber, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	sub, ok := m.mem.subscribers[id]
	if !ok {
		return nil, nil
	}
	c := *sub
	return &c, nil
}

// FindAll implements the SubscriberStore interface
func (m *MockSubscriberStore) FindAll(ctx context.Context) ([]*domain.Subscriber, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	return sortedValues(m.mem.subscribers, nil), nil
}

// Block implements the SubscriberStore interface
func (m *MockSubscriberStore) Block(ctx context.Context, id int64) error {
	if m.BlockFn != nil {
		return m.BlockFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	sub, ok := m.mem.subscribers[id]
	if !ok {
		return notFound("subscriber", "block", "Абонент с ID %d не найден.", id)
	}
	sub.Block()
	return nil
}

// Add implements the SubscriberStore interface
func (m *MockSubscriberStore) Add(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, subscriber)
	}

	if err := subscriber.Validate(); err != nil {
		return nil, err
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	for _, existing := range m.mem.subscribers {
		if existing.PhoneNumber == subscriber.PhoneNumber {
			return nil, duplicate("subscriber", "add",
				"Абонент с номером "+subscriber.PhoneNumber+" уже существует.")
		}
	}

	m.mem.nextID.subscriber++
	created := *subscriber
	created.ID = m.mem.nextID.subscriber
	stored := created
	m.mem.subscribers[created.ID] = &stored
	return &created, nil
}

// DeleteAll implements the SubscriberStore interface
func (m *MockSubscriberStore) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	clear(m.mem.subscribers)
	clear(m.mem.invoices)
	clear(m.mem.links)
	return nil
}
