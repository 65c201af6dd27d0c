package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// PostgresInvoiceStore implements the store.InvoiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresInvoiceStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresInvoiceStore creates a new PostgreSQL implementation of the InvoiceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresInvoiceStore(db store.DB, logger *slog.Logger) *PostgresInvoiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInvoiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "invoice_store")),
	}
}

// Ensure PostgresInvoiceStore implements store.InvoiceStore interface
var _ store.InvoiceStore = (*PostgresInvoiceStore)(nil)

// FindBySubscriberID implements store.InvoiceStore.FindBySubscriberID
func (s *PostgresInvoiceStore) FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, subscriber_id, amount, issue_date, is_paid
		FROM invoices
		WHERE subscriber_id = $1
		ORDER BY id
	`

	invoices, err := s.scanAll(ctx, query, subscriberID)
	if err != nil {
		log.Error("failed to find invoices for subscriber",
			slog.String("error", err.Error()),
			slog.Int64("subscriber_id", subscriberID))
		return nil, newStoreError(entityInvoice, "find_by_subscriber_id", "Ошибка при поиске счетов абонента.", err)
	}

	return invoices, nil
}

// FindUnpaid implements store.InvoiceStore.FindUnpaid
func (s *PostgresInvoiceStore) FindUnpaid(ctx context.Context) ([]*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, subscriber_id, amount, issue_date, is_paid
		FROM invoices
		WHERE is_paid = FALSE
		ORDER BY id
	`

	invoices, err := s.scanAll(ctx, query)
	if err != nil {
		log.Error("failed to find unpaid invoices", slog.String("error", err.Error()))
		return nil, newStoreError(entityInvoice, "find_unpaid",
			"Ошибка при получении списка неоплаченных счетов.", err)
	}

	log.Debug("found unpaid invoices", slog.Int("count", len(invoices)))
	return invoices, nil
}

func (s *PostgresInvoiceStore) scanAll(ctx context.Context, query string, args ...any) ([]*domain.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	invoices := []*domain.Invoice{}
	for rows.Next() {
		var inv domain.Invoice
		var subscriberID sql.NullInt64
		if err := rows.Scan(
			&inv.ID,
			&subscriberID,
			&inv.Amount,
			&inv.IssueDate,
			&inv.IsPaid,
		); err != nil {
			return nil, err
		}
		inv.SubscriberID = subscriberID.Int64
		inv.IssueDate = domain.DateOf(inv.IssueDate)
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// FindSubscriberIDByInvoiceID implements store.InvoiceStore.FindSubscriberIDByInvoiceID
// A missing invoice is reported as store.ErrEntryNotFound.
func (s *PostgresInvoiceStore) FindSubscriberIDByInvoiceID(ctx context.Context, invoiceID int64) (*int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var subscriberID sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT subscriber_id FROM invoices WHERE id = $1`, invoiceID).
		Scan(&subscriberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("subscriber ID not found for invoice", slog.Int64("invoice_id", invoiceID))
			return nil, store.NewStoreError(entityInvoice, "find_subscriber_id", store.ErrEntryNotFound,
				fmt.Sprintf("Счет с ID %d не найден.", invoiceID), err)
		}
		log.Error("failed to find subscriber by invoice",
			slog.String("error", err.Error()),
			slog.Int64("invoice_id", invoiceID))
		return nil, newStoreError(entityInvoice, "find_subscriber_id", "Ошибка при поиске счета.", err)
	}

	if !subscriberID.Valid {
		log.Debug("invoice has no subscriber reference", slog.Int64("invoice_id", invoiceID))
		return nil, nil
	}
	return &subscriberID.Int64, nil
}

// Pay implements store.InvoiceStore.Pay
// The update does not look at the current state, so a paid invoice is paid again.
func (s *PostgresInvoiceStore) Pay(ctx context.Context, invoiceID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE invoices SET is_paid = TRUE WHERE id = $1`, invoiceID)
		if err != nil {
			return err
		}
		return CheckRowsAffected(result, entityInvoice, "pay",
			fmt.Sprintf("Счет с ID %d не найден.", invoiceID))
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("payment failed, invoice not found", slog.Int64("invoice_id", invoiceID))
		} else {
			log.Error("failed to pay invoice",
				slog.String("error", err.Error()),
				slog.Int64("invoice_id", invoiceID))
		}
		return false, newStoreError(entityInvoice, "pay", "Ошибка при оплате счета.", err)
	}

	log.Info("invoice paid", slog.Int64("invoice_id", invoiceID))
	return true, nil
}

// Add implements store.InvoiceStore.Add
func (s *PostgresInvoiceStore) Add(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := invoice.Validate(); err != nil {
		log.Warn("invoice validation failed during add", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO invoices (subscriber_id, amount, issue_date, is_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	issueDate := domain.DateOf(invoice.IssueDate)

	var id int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(
			ctx,
			query,
			invoice.SubscriberID,
			invoice.Amount,
			issueDate,
			invoice.IsPaid,
		).Scan(&id)
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("invoice references unknown subscriber",
				slog.Int64("subscriber_id", invoice.SubscriberID))
			return nil, store.NewStoreError(entityInvoice, "add", store.ErrEntryNotFound,
				fmt.Sprintf("Абонент с ID %d не найден.", invoice.SubscriberID), err)
		}
		log.Error("failed to add invoice",
			slog.String("error", err.Error()),
			slog.Int64("subscriber_id", invoice.SubscriberID))
		return nil, newStoreError(entityInvoice, "add", "Ошибка при добавлении счета.", err)
	}

	created := *invoice
	created.ID = id
	created.IssueDate = issueDate

	log.Info("invoice created",
		slog.Int64("invoice_id", id),
		slog.Int64("subscriber_id", invoice.SubscriberID),
		slog.Bool("is_paid", invoice.IsPaid))
	return &created, nil
}
