package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// PostgresServiceStore implements the store.ServiceStore interface
// using a PostgreSQL database as the storage backend.
// Subscriber links live only in the subscriber_services join table.
type PostgresServiceStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the ServiceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresServiceStore(db store.DB, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// Ensure PostgresServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// FindAll implements store.ServiceStore.FindAll
func (s *PostgresServiceStore) FindAll(ctx context.Context) ([]*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, monthly_fee
		FROM services
		ORDER BY id
	`

	services, err := s.scanAll(ctx, query)
	if err != nil {
		log.Error("failed to find all services", slog.String("error", err.Error()))
		return nil, newStoreError(entityService, "find_all", "Ошибка при получении списка услуг.", err)
	}

	return services, nil
}

// FindBySubscriberID implements store.ServiceStore.FindBySubscriberID
func (s *PostgresServiceStore) FindBySubscriberID(ctx context.Context, subscriberID int64) ([]*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT s.id, s.name, s.monthly_fee
		FROM services s
		JOIN subscriber_services ss ON s.id = ss.service_id
		WHERE ss.subscriber_id = $1
		ORDER BY s.id
	`

	services, err := s.scanAll(ctx, query, subscriberID)
	if err != nil {
		log.Error("failed to find services for subscriber",
			slog.String("error", err.Error()),
			slog.Int64("subscriber_id", subscriberID))
		return nil, newStoreError(entityService, "find_by_subscriber_id", "Ошибка при поиске услуг абонента.", err)
	}

	log.Debug("found subscriber services",
		slog.Int64("subscriber_id", subscriberID),
		slog.Int("count", len(services)))
	return services, nil
}

func (s *PostgresServiceStore) scanAll(ctx context.Context, query string, args ...any) ([]*domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	services := []*domain.Service{}
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.MonthlyFee); err != nil {
			return nil, err
		}
		services = append(services, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

// Add implements store.ServiceStore.Add
func (s *PostgresServiceStore) Add(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during add", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO services (name, monthly_fee)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, service.Name, service.MonthlyFee).Scan(&id)
	})
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate service name during add",
				slog.String("error", err.Error()),
				slog.String("service_name", service.Name))
			return nil, store.NewStoreError(entityService, "add", store.ErrDuplicateEntry,
				fmt.Sprintf("Услуга «%s» уже существует.", service.Name), err)
		}
		log.Error("failed to add service", slog.String("error", err.Error()))
		return nil, newStoreError(entityService, "add", "Ошибка при добавлении услуги.", err)
	}

	created := *service
	created.ID = id

	log.Info("service created",
		slog.Int64("service_id", id),
		slog.String("service_name", service.Name))
	return &created, nil
}

// LinkServiceToSubscriber implements store.ServiceStore.LinkServiceToSubscriber
//
// Both endpoints are checked and the link row inserted in one transaction.
// The primary key on (subscriber_id, service_id) rejects duplicates, and a
// foreign key violation from a concurrent delete is reported the same way as
// a failed existence check.
func (s *PostgresServiceStore) LinkServiceToSubscriber(ctx context.Context, subscriberID, serviceID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("subscriber_id", subscriberID),
		slog.Int64("service_id", serviceID))

	notFoundMsg := fmt.Sprintf("Абонент (ID %d) или услуга (ID %d) не найдены.", subscriberID, serviceID)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var subscriberExists, serviceExists bool
		err := tx.QueryRowContext(ctx, `
			SELECT
				EXISTS (SELECT 1 FROM subscribers WHERE id = $1),
				EXISTS (SELECT 1 FROM services WHERE id = $2)
		`, subscriberID, serviceID).Scan(&subscriberExists, &serviceExists)
		if err != nil {
			return err
		}
		if !subscriberExists || !serviceExists {
			return store.NewStoreError(entityService, "link", store.ErrEntryNotFound, notFoundMsg, nil)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO subscriber_services (subscriber_id, service_id)
			VALUES ($1, $2)
		`, subscriberID, serviceID)
		return err
	})
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			log.Warn("service already linked to subscriber")
			return store.NewStoreError(entityService, "link", store.ErrDuplicateEntry,
				"Эта услуга уже подключена абоненту.", err)
		case IsForeignKeyViolation(err):
			log.Warn("link endpoint disappeared during insert", slog.String("error", err.Error()))
			return store.NewStoreError(entityService, "link", store.ErrEntryNotFound, notFoundMsg, err)
		case store.IsNotFoundError(err):
			log.Warn("link endpoint not found")
		default:
			log.Error("failed to link service to subscriber", slog.String("error", err.Error()))
		}
		return newStoreError(entityService, "link", "Ошибка при подключении услуги.", err)
	}

	log.Info("service linked to subscriber")
	return nil
}

// DeleteAll implements store.ServiceStore.DeleteAll
func (s *PostgresServiceStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM services`)
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Error("failed to delete services", slog.String("error", err.Error()))
		return newStoreError(entityService, "delete_all", "Ошибка при удалении услуг.", err)
	}

	log.Info("all services deleted", slog.Int64("count", deleted))
	return nil
}
