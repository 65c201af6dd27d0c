// Package seed resets the billing tables and fills them with a small demo
// data set: two subscribers, three services, four service links and two
// invoices.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/store"
	"github.com/shopspring/decimal"
)

// Seeder writes the demo data set through the stores.
type Seeder struct {
	subscribers store.SubscriberStore
	services    store.ServiceStore
	invoices    store.InvoiceStore
	logger      *slog.Logger
}

// Result lists the records created by Reset.
type Result struct {
	Subscribers []*domain.Subscriber
	Services    []*domain.Service
	Invoices    []*domain.Invoice
	Links       int
}

// New creates a Seeder. If logger is nil, a default logger will be used.
func New(
	subscribers store.SubscriberStore,
	services store.ServiceStore,
	invoices store.InvoiceStore,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		subscribers: subscribers,
		services:    services,
		invoices:    invoices,
		logger:      logger.With(slog.String("component", "seed")),
	}
}

// Reset deletes every subscriber and service (invoices and links go with
// them) and inserts the demo data set. The steps are not atomic: a failure
// part way leaves the records created so far.
func (s *Seeder) Reset(ctx context.Context) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.subscribers.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete subscribers: %w", err)
	}
	if err := s.services.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete services: %w", err)
	}

	res := &Result{}

	ivan, err := s.addSubscriber(ctx, "Иван Иванов", "+375291234567", "150.50", false)
	if err != nil {
		return nil, err
	}
	petr, err := s.addSubscriber(ctx, "Петр Петров", "+375337654321", "-50.00", true)
	if err != nil {
		return nil, err
	}
	res.Subscribers = []*domain.Subscriber{ivan, petr}

	internet, err := s.addService(ctx, "Интернет 50 Мбит/с", "450.00")
	if err != nil {
		return nil, err
	}
	mobile, err := s.addService(ctx, "Мобильная связь", "300.00")
	if err != nil {
		return nil, err
	}
	antivirus, err := s.addService(ctx, "Антивирус", "100.00")
	if err != nil {
		return nil, err
	}
	res.Services = []*domain.Service{internet, mobile, antivirus}

	links := []struct{ subscriber, service int64 }{
		{ivan.ID, internet.ID},
		{ivan.ID, mobile.ID},
		{petr.ID, mobile.ID},
		{petr.ID, antivirus.ID},
	}
	for _, l := range links {
		if err := s.services.LinkServiceToSubscriber(ctx, l.subscriber, l.service); err != nil {
			return nil, fmt.Errorf("failed to link service %d to subscriber %d: %w", l.service, l.subscriber, err)
		}
		res.Links++
	}

	paid, err := s.addInvoice(ctx, ivan.ID, "750.00", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.addInvoice(ctx, petr.ID, "400.00", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC), false)
	if err != nil {
		return nil, err
	}
	res.Invoices = []*domain.Invoice{paid, unpaid}

	log.Info("demo data inserted",
		slog.Int("subscribers", len(res.Subscribers)),
		slog.Int("services", len(res.Services)),
		slog.Int("links", res.Links),
		slog.Int("invoices", len(res.Invoices)))
	return res, nil
}

func (s *Seeder) addSubscriber(ctx context.Context, name, phone, balance string, blocked bool) (*domain.Subscriber, error) {
	sub, err := domain.NewSubscriber(name, phone, decimal.RequireFromString(balance))
	if err != nil {
		return nil, fmt.Errorf("invalid demo subscriber %q: %w", name, err)
	}
	sub.IsBlocked = blocked

	created, err := s.subscribers.Add(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to add subscriber %q: %w", name, err)
	}
	return created, nil
}

func (s *Seeder) addService(ctx context.Context, name, fee string) (*domain.Service, error) {
	svc, err := domain.NewService(name, decimal.RequireFromString(fee))
	if err != nil {
		return nil, fmt.Errorf("invalid demo service %q: %w", name, err)
	}

	created, err := s.services.Add(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("failed to add service %q: %w", name, err)
	}
	return created, nil
}

func (s *Seeder) addInvoice(
	ctx context.Context,
	subscriberID int64,
	amount string,
	issued time.Time,
	paid bool,
) (*domain.Invoice, error) {
	inv, err := domain.NewInvoice(subscriberID, decimal.RequireFromString(amount), issued)
	if err != nil {
		return nil, fmt.Errorf("invalid demo invoice: %w", err)
	}
	inv.IsPaid = paid

	created, err := s.invoices.Add(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to add invoice for subscriber %d: %w", subscriberID, err)
	}
	return created, nil
}
