package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/metrics"
	"github.com/phrazzld/telecom-billing/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore answers every call with err.
type stubStore struct {
	err error
}

func (s *stubStore) FindByID(context.Context, int64) (*domain.Subscriber, error) {
	return nil, s.err
}

func (s *stubStore) FindAll(context.Context) ([]*domain.Subscriber, error) {
	return []*domain.Subscriber{}, s.err
}

func (s *stubStore) Block(context.Context, int64) error { return s.err }

func (s *stubStore) Add(_ context.Context, sub *domain.Subscriber) (*domain.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	created := *sub
	created.ID = 1
	return &created, nil
}

func (s *stubStore) DeleteAll(context.Context) error { return s.err }

type stubInvoiceStore struct {
	err error
}

func (s *stubInvoiceStore) FindBySubscriberID(context.Context, int64) ([]*domain.Invoice, error) {
	return []*domain.Invoice{}, s.err
}

func (s *stubInvoiceStore) FindUnpaid(context.Context) ([]*domain.Invoice, error) {
	return []*domain.Invoice{}, s.err
}

func (s *stubInvoiceStore) FindSubscriberIDByInvoiceID(context.Context, int64) (*int64, error) {
	return nil, s.err
}

func (s *stubInvoiceStore) Pay(context.Context, int64) (bool, error) {
	return s.err == nil, s.err
}

func (s *stubInvoiceStore) Add(context.Context, *domain.Invoice) (*domain.Invoice, error) {
	return nil, s.err
}

func counter(t *testing.T, reg *prometheus.Registry, storeName, op, outcome string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "telecom_store_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["store"] == storeName && labels["operation"] == op && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: store.KindOK},
		{name: "not found", err: store.NewStoreError("invoice", "pay", store.ErrEntryNotFound, "", nil), want: store.KindNotFound},
		{name: "duplicate", err: store.ErrDuplicateEntry, want: store.KindDuplicate},
		{name: "validation", err: fmt.Errorf("%w: name", domain.ErrValidation), want: store.KindInvalid},
		{name: "data access", err: store.NewStoreError("x", "y", nil, "", errors.New("io")), want: store.KindDataAccess},
		{name: "unknown", err: errors.New("boom"), want: store.KindUnclassified},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, metrics.Outcome(tc.err))
		})
	}
}

func TestSubscriberStore_CountsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ctx := context.Background()

	ok := metrics.NewSubscriberStore(&stubStore{}, m)
	missing := metrics.NewSubscriberStore(&stubStore{
		err: store.NewStoreError("subscriber", "block", store.ErrEntryNotFound, "", nil),
	}, m)

	require.NoError(t, ok.Block(ctx, 1))
	require.NoError(t, ok.Block(ctx, 2))
	require.Error(t, missing.Block(ctx, 3))

	_, err := ok.FindAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2.0, counter(t, reg, "subscriber", "block", store.KindOK))
	assert.Equal(t, 1.0, counter(t, reg, "subscriber", "block", store.KindNotFound))
	assert.Equal(t, 1.0, counter(t, reg, "subscriber", "find_all", store.KindOK))
}

func TestSubscriberStore_PassesResultsThrough(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	s := metrics.NewSubscriberStore(&stubStore{}, m)

	created, err := s.Add(context.Background(), &domain.Subscriber{Name: "Иван", PhoneNumber: "+79001234567"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := s.FindByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestInvoiceStore_RecordsDuration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := metrics.NewInvoiceStore(&stubInvoiceStore{}, m)

	paid, err := s.Pay(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, paid)

	assert.Equal(t, 1.0, counter(t, reg, "invoice", "pay", store.KindOK))
	series, err := testutil.GatherAndCount(reg, "telecom_store_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestNew_PanicsOnDoubleRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) })
}
