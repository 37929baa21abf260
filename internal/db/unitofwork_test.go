package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, created_at) VALUES ('u1', 'a@b.c', '2026-01-01T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, created_at) VALUES ('u1', 'a@b.c', '2026-01-01T00:00:00Z')`); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 0, count, "failed transaction must leave no rows behind")
}
