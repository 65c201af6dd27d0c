package mocks

import (
	"context"
	"fmt"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// MockServiceStore implements store.ServiceStore for testing.
type MockServiceStore struct {
	mem *memory

	// Function fields for customizable behavior
	FindAllFn                 func(ctx context.Context) ([]*domain.Service, error)
	FindBySubscriberIDFn      func(ctx context.Context, subscriberID int64) ([]*domain.Service, error)
	AddFn                     func(ctx context.Context, service *domain.Service) (*domain.Service, error)
	LinkServiceToSubscriberFn func(ctx context.Context, subscriberID, serviceID int64) error
	DeleteAllFn               func(ctx context.Context) error
}

var _ store.ServiceStore = (*MockServiceStore)(nil)

// FindAll implements the ServiceStore interface
func (m *MockServiceStore) FindAll(ctx context.Context) ([]*domain.Service, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	return sortedValues(m.mem.services, nil), nil
}

// FindBySubscriberID implements the ServiceStore interface
func (m *MockServiceStore) FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Service, error) {
	if m.FindBySubscriberIDFn != nil {
		return m.FindBySubscriberIDFn(ctx, subscriberID)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	return sortedValues(m.mem.services, func(s *domain.Service) bool {
		_, ok := m.mem.links[link{subscriberID: subscriberID, serviceID: s.ID}]
		return ok
	}), nil
}

// Add implements the ServiceStore interface
func (m *MockServiceStore) Add(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, service)
	}

	if err := service.Validate(); err != nil {
		return nil, err
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	for _, existing := range m.mem.services {
		if existing.Name == service.Name {
			return nil, duplicate("service", "add", fmt.Sprintf("Услуга «%s» уже существует.", service.Name))
		}
	}

	m.mem.nextID.service++
	created := *service
	created.ID = m.mem.nextID.service
	stored := created
	m.mem.services[created.ID] = &stored
	return &created, nil
}

// LinkServiceToSubscriber implements the ServiceStore interface
func (m *MockServiceStore) LinkServiceToSubscriber(ctx context.Context, subscriberID, serviceID int64) error {
	if m.LinkServiceToSubscriberFn != nil {
		return m.LinkServiceToSubscriberFn(ctx, subscriberID, serviceID)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	_, subOK := m.mem.subscribers[subscriberID]
	_, svcOK := m.mem.services[serviceID]
	if !subOK || !svcOK {
		return notFound("service", "link", "Абонент (ID %d) или услуга (ID %d) не найдены.", subscriberID, serviceID)
	}

	l := link{subscriberID: subscriberID, serviceID: serviceID}
	if _, exists := m.mem.links[l]; exists {
		return duplicate("service", "link", "Эта услуга уже подключена абоненту.")
	}
	m.mem.links[l] = struct{}{}
	return nil
}

// DeleteAll implements the ServiceStore interface
func (m *MockServiceStore) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	clear(m.mem.services)
	clear(m.mem.links)
	return nil
}

// Links returns the number of subscriber-service links.
func (m *MockServiceStore) Links() int {
	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()
	return len(m.mem.links)
}
