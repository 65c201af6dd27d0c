package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/postgres"
	"github.com/phrazzld/telecom-billing/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoiceColumns = []string{"id", "subscriber_id", "amount", "issue_date", "is_paid"}

func TestNewPostgresInvoiceStore_NilDB(t *testing.T) {
	assert.Panics(t, func() {
		postgres.NewPostgresInvoiceStore(nil, nil)
	})
}

func TestPostgresInvoiceStore_FindBySubscriberID(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresInvoiceStore(db, discardLogger())

	issued := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM invoices WHERE subscriber_id = $1 ORDER BY id")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(int64(1), int64(1), "450.00", issued, false).
			AddRow(int64(3), int64(1), "300.00", issued.AddDate(0, 1, 0), true))

	invoices, err := s.FindBySubscriberID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, int64(1), invoices[0].SubscriberID)
	assert.True(t, decimal.RequireFromString("450").Equal(invoices[0].Amount))
	assert.True(t, issued.Equal(invoices[0].IssueDate))
	assert.Equal(t, domain.InvoiceUnpaid, invoices[0].Status())
	assert.Equal(t, domain.InvoicePaid, invoices[1].Status())
}

func TestPostgresInvoiceStore_FindUnpaid(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("FROM invoices WHERE is_paid = FALSE ORDER BY id")

	t.Run("unpaid only", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(invoiceColumns).
				AddRow(int64(2), int64(2), "120.00", time.Now(), false).
				AddRow(int64(4), nil, "75.00", time.Now(), false))

		invoices, err := s.FindUnpaid(ctx)
		require.NoError(t, err)
		require.Len(t, invoices, 2)
		for _, inv := range invoices {
			assert.False(t, inv.IsPaid)
		}
		assert.Zero(t, invoices[1].SubscriberID, "absent reference reads as zero")
	})

	t.Run("none", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(invoiceColumns))

		invoices, err := s.FindUnpaid(ctx)
		require.NoError(t, err)
		assert.NotNil(t, invoices)
		assert.Empty(t, invoices)
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectQuery(query).WillReturnError(errors.New("timeout"))

		invoices, err := s.FindUnpaid(ctx)
		assert.Nil(t, invoices)
		assert.ErrorIs(t, err, store.ErrDataAccess)
		assert.Equal(t, "Ошибка при получении списка неоплаченных счетов.", store.UserMessage(err))
	})
}

func TestPostgresInvoiceStore_FindSubscriberIDByInvoiceID(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT subscriber_id FROM invoices WHERE id = $1")

	t.Run("owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectQuery(query).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"subscriber_id"}).AddRow(int64(5)))

		id, err := s.FindSubscriberIDByInvoiceID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, int64(5), *id)
	})

	t.Run("no owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectQuery(query).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"subscriber_id"}).AddRow(nil))

		id, err := s.FindSubscriberIDByInvoiceID(ctx, 2)
		assert.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("missing invoice is an error", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectQuery(query).
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows([]string{"subscriber_id"}))

		id, err := s.FindSubscriberIDByInvoiceID(ctx, 999)
		assert.Nil(t, id)
		require.Error(t, err)
		assert.True(t, store.IsNotFoundError(err))
		assert.Equal(t, "Счет с ID 999 не найден.", store.UserMessage(err))
	})
}

func TestPostgresInvoiceStore_Pay(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("UPDATE invoices SET is_paid = TRUE WHERE id = $1")

	t.Run("existing invoice", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectBegin()
		mock.ExpectExec(query).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		ok, err := s.Pay(ctx, 2)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("paying twice succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		for range 2 {
			mock.ExpectBegin()
			mock.ExpectExec(query).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()
		}

		for range 2 {
			ok, err := s.Pay(ctx, 2)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("missing invoice", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		mock.ExpectBegin()
		mock.ExpectExec(query).WithArgs(int64(999)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		ok, err := s.Pay(ctx, 999)
		assert.False(t, ok)
		assert.True(t, store.IsNotFoundError(err))
		assert.Equal(t, "Счет с ID 999 не найден.", store.UserMessage(err))
	})
}

func TestPostgresInvoiceStore_Add(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("INSERT INTO invoices (subscriber_id, amount, issue_date, is_paid)")
	issued := time.Date(2024, time.April, 15, 13, 45, 0, 0, time.UTC)
	day := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)

	t.Run("assigns id and truncates date", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())
		inv := &domain.Invoice{SubscriberID: 1, Amount: decimal.RequireFromString("99.90"), IssueDate: issued}

		mock.ExpectBegin()
		mock.ExpectQuery(query).
			WithArgs(int64(1), sqlmock.AnyArg(), day, false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectCommit()

		created, err := s.Add(ctx, inv)
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.True(t, day.Equal(created.IssueDate))
		assert.False(t, created.IsPaid)
	})

	t.Run("paid invoice keeps its state", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())
		inv := &domain.Invoice{
			SubscriberID: 1,
			Amount:       decimal.RequireFromString("750.00"),
			IssueDate:    issued,
			IsPaid:       true,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(query).
			WithArgs(int64(1), sqlmock.AnyArg(), day, true).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
		mock.ExpectCommit()

		created, err := s.Add(ctx, inv)
		require.NoError(t, err)
		assert.Equal(t, int64(12), created.ID)
		assert.True(t, created.IsPaid)
		assert.Equal(t, domain.InvoicePaid, created.Status())
	})

	t.Run("amount with fraction of a cent never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		created, err := s.Add(ctx, &domain.Invoice{
			SubscriberID: 1,
			Amount:       decimal.RequireFromString("99.905"),
			IssueDate:    issued,
		})
		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrAmountPrecision)
	})

	t.Run("unknown subscriber", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())
		inv, err := domain.NewInvoice(999, decimal.RequireFromString("10"), issued)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery(query).WillReturnError(newPgError("23503"))
		mock.ExpectRollback()

		created, err := s.Add(ctx, inv)
		assert.Nil(t, created)
		assert.True(t, store.IsNotFoundError(err))
		assert.Equal(t, "Абонент с ID 999 не найден.", store.UserMessage(err))
	})

	t.Run("invalid invoice", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := postgres.NewPostgresInvoiceStore(db, discardLogger())

		created, err := s.Add(ctx, &domain.Invoice{Amount: decimal.RequireFromString("10"), IssueDate: issued})
		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrMissingSubscriber)
	})
}
