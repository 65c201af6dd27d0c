package metrics

import (
	"context"
	"time"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// SubscriberStore decorates a store.SubscriberStore with metrics.
type SubscriberStore struct {
	next    store.SubscriberStore
	metrics *Metrics
}

var _ store.SubscriberStore = (*SubscriberStore)(nil)

// NewSubscriberStore wraps next.
func NewSubscriberStore(next store.SubscriberStore, m *Metrics) *SubscriberStore {
	return &SubscriberStore{next: next, metrics: m}
}

// FindByID implements store.SubscriberStore.FindByID
func (s *SubscriberStore) FindByID(ctx context.Context, id int64) (*domain.Subscriber, error) {
	start := time.Now()
	sub, err := s.next.FindByID(ctx, id)
	s.metrics.observe("subscriber", "find_by_id", start, err)
	return sub, err
}

// FindAll implements store.SubscriberStore.FindAll
func (s *SubscriberStore) FindAll(ctx context.Context) ([]*domain.Subscriber, error) {
	start := time.Now()
	subs, err := s.next.FindAll(ctx)
	s.metrics.observe("subscriber", "find_all", start, err)
	return subs, err
}

// Block implements store.SubscriberStore.Block
func (s *SubscriberStore) Block(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.next.Block(ctx, id)
	s.metrics.observe("subscriber", "block", start, err)
	return err
}

// Add implements store.SubscriberStore.Add
func (s *SubscriberStore) Add(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	start := time.Now()
	created, err := s.next.Add(ctx, subscriber)
	s.metrics.observe("subscriber", "add", start, err)
	return created, err
}

// DeleteAll implements store.SubscriberStore.DeleteAll
func (s *SubscriberStore) DeleteAll(ctx context.Context) error {
	start := time.Now()
	err := s.next.DeleteAll(ctx)
	s.metrics.observe("subscriber", "delete_all", start, err)
	return err
}

// ServiceStore decorates a store.ServiceStore with metrics.
type ServiceStore struct {
	next    store.ServiceStore
	metrics *Metrics
}

var _ store.ServiceStore = (*ServiceStore)(nil)

// NewServiceStore wraps next.
func NewServiceStore(next store.ServiceStore, m *Metrics) *ServiceStore {
	return &ServiceStore{next: next, metrics: m}
}

// FindAll implements store.ServiceStore.FindAll
func (s *ServiceStore) FindAll(ctx context.Context) ([]*domain.Service, error) {
	start := time.Now()
	services, err := s.next.FindAll(ctx)
	s.metrics.observe("service", "find_all", start, err)
	return services, err
}

// FindBySubscriberID implements store.ServiceStore.FindBySubscriberID
func (s *ServiceStore) FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Service, error) {
	start := time.Now()
	services, err := s.next.FindBySubscriberID(ctx, subscriberID)
	s.metrics.observe("service", "find_by_subscriber_id", start, err)
	return services, err
}

// Add implements store.ServiceStore.Add
func (s *ServiceStore) Add(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	start := time.Now()
	created, err := s.next.Add(ctx, service)
	s.metrics.observe("service", "add", start, err)
	return created, err
}

// LinkServiceToSubscriber implements store.ServiceStore.LinkServiceToSubscriber
func (s *ServiceStore) LinkServiceToSubscriber(ctx context.Context, subscriberID, serviceID int64) error {
	start := time.Now()
	err := s.next.LinkServiceToSubscriber(ctx, subscriberID, serviceID)
	s.metrics.observe("service", "link", start, err)
	return err
}

// DeleteAll implements store.ServiceStore.DeleteAll
func (s *ServiceStore) DeleteAll(ctx context.Context) error {
	start := time.Now()
	err := s.next.DeleteAll(ctx)
	s.metrics.observe("service", "delete_all", start, err)
	return err
}

// InvoiceStore decorates a store.InvoiceStore with metrics.
type InvoiceStore struct {
	next    store.InvoiceStore
	metrics *Metrics
}

var _ store.InvoiceStore = (*InvoiceStore)(nil)

// NewInvoiceStore wraps next.
func NewInvoiceStore(next store.InvoiceStore, m *Metrics) *InvoiceStore {
	return &InvoiceStore{next: next, metrics: m}
}

// FindBySubscriberID implements store.InvoiceStore.FindBySubscriberID
func (s *InvoiceStore) FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Invoice, error) {
	start := time.Now()
	invoices, err := s.next.FindBySubscriberID(ctx, subscriberID)
	s.metrics.observe("invoice", "find_by_subscriber_id", start, err)
	return invoices, err
}

// FindUnpaid implements store.InvoiceStore.FindUnpaid
func (s *InvoiceStore) FindUnpaid(ctx context.Context) ([]*domain.Invoice, error) {
	start := time.Now()
	invoices, err := s.next.FindUnpaid(ctx)
	s.metrics.observe("invoice", "find_unpaid", start, err)
	return invoices, err
}

// FindSubscriberIDByInvoiceID implements store.InvoiceStore.FindSubscriberIDByInvoiceID
func (s *InvoiceStore) FindSubscriberIDByInvoiceID(ctx context.Context, invoiceID int64) (*int64, error) {
	start := time.Now()
	id, err := s.next.FindSubscriberIDByInvoiceID(ctx, invoiceID)
	s.metrics.observe("invoice", "find_subscriber_id", start, err)
	return id, err
}

// Pay implements store.InvoiceStore.Pay
func (s *InvoiceStore) Pay(ctx context.Context, invoiceID int64) (bool, error) {
	start := time.Now()
	ok, err := s.next.Pay(ctx, invoiceID)
	s.metrics.observe("invoice", "pay", start, err)
	return ok, err
}

// Add implements store.InvoiceStore.Add
func (s *InvoiceStore) Add(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	start := time.Now()
	created, err := s.next.Add(ctx, invoice)
	s.metrics.observe("invoice", "add", start, err)
	return created, err
}
