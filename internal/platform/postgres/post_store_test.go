package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/quillworks/quill-api/internal/domain"
)

// stubDBTX satisfies store.DBTX for constructor tests that never touch
// the database.
type stubDBTX struct{}

func (stubDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, errors.New("not implemented")
}

func (stubDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errors.New("not implemented")
}

func (stubDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (stubDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestNewPostgresPostStore_NilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewPostgresPostStore(nil, nil)
	})
}

func TestSetResult_RejectsNonTerminalStatus(t *testing.T) {
	t.Parallel()

	s := NewPostgresPostStore(stubDBTX{}, nil)

	err := s.SetResult(context.Background(), uuid.New(), domain.PostStatusPending, "")
	assert.ErrorIs(t, err, domain.ErrInvalidPostStatus)
}

func TestPgErrorClassification(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: pgUniqueViolationCode}
	fkErr := &pgconn.PgError{Code: pgForeignKeyViolationCode}

	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr)))
	assert.False(t, isUniqueViolation(fkErr))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))

	assert.True(t, isForeignKeyViolation(fkErr))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert failed: %w", fkErr)))
	assert.False(t, isForeignKeyViolation(uniqueErr))
	assert.False(t, isForeignKeyViolation(nil))
}
