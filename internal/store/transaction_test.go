package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	payQuery  = regexp.QuoteMeta("UPDATE invoices SET is_paid = TRUE WHERE id = $1")
	linkQuery = regexp.QuoteMeta("INSERT INTO subscriber_services (subscriber_id, service_id) VALUES ($1, $2)")
)

// payInvoice marks one invoice paid inside tx and reports a missing invoice
// the way the postgres stores do.
func payInvoice(id int64) TxFn {
	return func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE invoices SET is_paid = TRUE WHERE id = $1", id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return NewStoreError("invoice", "pay", ErrEntryNotFound, "Счет не найден.", nil)
		}
		return nil
	}
}

func newTxMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestRunInTransaction_CommitsPayment(t *testing.T) {
	db, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(payQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := RunInTransaction(context.Background(), db, payInvoice(1))
	assert.NoError(t, err)
}

func TestRunInTransaction_RollsBackMissingInvoice(t *testing.T) {
	db, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(payQuery).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := RunInTransaction(context.Background(), db, payInvoice(99))
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
	assert.ErrorIs(t, err, ErrDataAccess)
	assert.Equal(t, "Счет не найден.", UserMessage(err))
}

func TestRunInTransaction_StatementErrorRollsBack(t *testing.T) {
	db, mock := newTxMock(t)

	connErr := errors.New("connection reset by peer")
	mock.ExpectBegin()
	mock.ExpectExec(payQuery).WithArgs(int64(1)).WillReturnError(connErr)
	mock.ExpectRollback()

	err := RunInTransaction(context.Background(), db, payInvoice(1))
	assert.Equal(t, connErr, err)
}

func TestRunInTransaction_BeginFails(t *testing.T) {
	db, mock := newTxMock(t)

	beginErr := errors.New("too many connections")
	mock.ExpectBegin().WillReturnError(beginErr)

	called := false
	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called, "fn must not run without a transaction")
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.ErrorIs(t, err, beginErr)
}

func TestRunInTransaction_CommitFails(t *testing.T) {
	db, mock := newTxMock(t)

	commitErr := errors.New("serialization failure")
	mock.ExpectBegin()
	mock.ExpectExec(payQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(commitErr)

	err := RunInTransaction(context.Background(), db, payInvoice(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	assert.ErrorIs(t, err, commitErr)
	assert.False(t, IsNotFoundError(err))
}

func TestRunInTransaction_RollbackFailureKeepsCause(t *testing.T) {
	db, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(payQuery).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := RunInTransaction(context.Background(), db, payInvoice(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error rolling back transaction: connection lost")
	assert.True(t, IsNotFoundError(err), "the classified cause survives a failed rollback")
}

func TestRunInTransaction_PanicRollsBackLink(t *testing.T) {
	tests := []struct {
		name        string
		rollbackErr error
	}{
		{name: "rollback succeeds"},
		{name: "rollback fails", rollbackErr: errors.New("connection lost")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTxMock(t)

			mock.ExpectBegin()
			mock.ExpectExec(linkQuery).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectRollback().WillReturnError(tt.rollbackErr)

			assert.PanicsWithValue(t, "link bookkeeping broke", func() {
				_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
					if _, err := tx.ExecContext(ctx,
						"INSERT INTO subscriber_services (subscriber_id, service_id) VALUES ($1, $2)",
						int64(1), int64(2)); err != nil {
						return err
					}
					panic("link bookkeeping broke")
				})
			})
		})
	}
}

func TestRunInTransaction_UsesContextLogger(t *testing.T) {
	db, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(payQuery).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	buf, log := logger.NewTestLogger(slog.LevelDebug)
	ctx := logger.WithLogger(context.Background(), log)

	err := RunInTransaction(ctx, db, payInvoice(99))
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, buf.String(), "rolled back transaction due to error")
}
