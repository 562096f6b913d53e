package book

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/entity"
	"bookstore/internal/store"
	"bookstore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo_Integration(t *testing.T) {
	pool := testutil.PostgresPool(t)
	ctx := context.Background()
	repo := NewPostgresRepo(pool, 5*time.Second)

	var sellerID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO sellers (first_name, last_name, email, password) VALUES ('A', 'B', 'a@b.co', 'x') RETURNING id`,
	).Scan(&sellerID))

	b := entity.Book{Title: "Dune", Author: "Herbert", Year: 1965, CountPages: 412, SellerID: sellerID}
	require.NoError(t, repo.Create(ctx, &b))
	assert.NotZero(t, b.ID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	b.Title = ""
	require.NoError(t, repo.Update(ctx, &b))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Title)

	orphan := entity.Book{Title: "x", Author: "y", Year: 1, CountPages: 1, SellerID: sellerID + 1000}
	assert.ErrorIs(t, repo.Create(ctx, &orphan), ErrSellerNotFound)

	missing := entity.Book{ID: b.ID + 1000, SellerID: sellerID}
	assert.ErrorIs(t, repo.Update(ctx, &missing), ErrNotFound)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	deleted, err := repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, deleted.ID)

	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepo_RollbackOnError(t *testing.T) {
	pool := testutil.PostgresPool(t)
	ctx := context.Background()
	repo := NewPostgresRepo(pool, 5*time.Second)
	tx := store.NewPgxTransactor(pool)

	var sellerID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO sellers (first_name, last_name, email, password) VALUES ('A', 'B', 'a@b.co', 'x') RETURNING id`,
	).Scan(&sellerID))

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		b := entity.Book{Title: "Draft", Author: "A", Year: 2000, CountPages: 10, SellerID: sellerID}
		if err := repo.Create(ctx, &b); err != nil {
			return err
		}
		return ErrNotFound
	})
	require.ErrorIs(t, err, ErrNotFound)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}
