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

// PostgresSubscriberStore implements the store.SubscriberStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSubscriberStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresSubscriberStore creates a new PostgreSQL implementation of the SubscriberStore interface.
// The connection pool is owned by the caller. If logger is nil, a default logger will be used.
func NewPostgresSubscriberStore(db store.DB, logger *slog.Logger) *PostgresSubscriberStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubscriberStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscriber_store")),
	}
}

// Ensure PostgresSubscriberStore implements store.SubscriberStore interface
var _ store.SubscriberStore = (*PostgresSubscriberStore)(nil)

// FindByID implements store.SubscriberStore.FindByID
func (s *PostgresSubscriberStore) FindByID(ctx context.Context, id int64) (*domain.Subscriber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, phone_number, balance, is_blocked
		FROM subscribers
		WHERE id = $1
	`

	var sub domain.Subscriber
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID,
		&sub.Name,
		&sub.PhoneNumber,
		&sub.Balance,
		&sub.IsBlocked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subscriber not found", slog.Int64("subscriber_id", id))
			return nil, nil
		}
		log.Error("failed to find subscriber by ID",
			slog.String("error", err.Error()),
			slog.Int64("subscriber_id", id))
		return nil, newStoreError(entitySubscriber, "find_by_id", "Ошибка при поиске абонента.", err)
	}

	return &sub, nil
}

// FindAll implements store.SubscriberStore.FindAll
func (s *PostgresSubscriberStore) FindAll(ctx context.Context) ([]*domain.Subscriber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, phone_number, balance, is_blocked
		FROM subscribers
		ORDER BY id
	`

	subscribers, err := s.scanAll(ctx, query)
	if err != nil {
		log.Error("failed to find all subscribers", slog.String("error", err.Error()))
		return nil, newStoreError(entitySubscriber, "find_all", "Ошибка при получении списка абонентов.", err)
	}

	log.Debug("found subscribers", slog.Int("count", len(subscribers)))
	return subscribers, nil
}

func (s *PostgresSubscriberStore) scanAll(ctx context.Context, query string, args ...any) ([]*domain.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	subscribers := []*domain.Subscriber{}
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.PhoneNumber,
			&sub.Balance,
			&sub.IsBlocked,
		); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subscribers, nil
}

// Block implements store.SubscriberStore.Block
func (s *PostgresSubscriberStore) Block(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE subscribers SET is_blocked = TRUE WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return CheckRowsAffected(result, entitySubscriber, "block",
			fmt.Sprintf("Абонент с ID %d не найден.", id))
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("block failed, subscriber not found", slog.Int64("subscriber_id", id))
		} else {
			log.Error("failed to block subscriber",
				slog.String("error", err.Error()),
				slog.Int64("subscriber_id", id))
		}
		return newStoreError(entitySubscriber, "block", "Ошибка при блокировке абонента.", err)
	}

	log.Info("subscriber blocked", slog.Int64("subscriber_id", id))
	return nil
}

// Add implements store.SubscriberStore.Add
func (s *PostgresSubscriberStore) Add(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subscriber.Validate(); err != nil {
		log.Warn("subscriber validation failed during add", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO subscribers (name, phone_number, balance, is_blocked)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(
			ctx,
			query,
			subscriber.Name,
			subscriber.PhoneNumber,
			subscriber.Balance,
			subscriber.IsBlocked,
		).Scan(&id)
	})
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate phone number during subscriber add", slog.String("error", err.Error()))
			return nil, store.NewStoreError(entitySubscriber, "add", store.ErrDuplicateEntry,
				fmt.Sprintf("Абонент с номером %s уже существует.", subscriber.PhoneNumber), err)
		}
		log.Error("failed to add subscriber", slog.String("error", err.Error()))
		return nil, newStoreError(entitySubscriber, "add", "Ошибка при добавлении абонента.", err)
	}

	created := *subscriber
	created.ID = id

	log.Info("subscriber created", slog.Int64("subscriber_id", id))
	return &created, nil
}

// DeleteAll implements store.SubscriberStore.DeleteAll
// Invoices and service links go with their subscribers through ON DELETE CASCADE.
func (s *PostgresSubscriberStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM subscribers`)
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Error("failed to delete subscribers", slog.String("error", err.Error()))
		return newStoreError(entitySubscriber, "delete_all", "Ошибка при удалении абонентов.", err)
	}

	log.Info("all subscribers deleted", slog.Int64("count", deleted))
	return nil
}
