package seller

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/entity"
	"bookstore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo_EagerLoadAndCascade(t *testing.T) {
	pool := testutil.PostgresPool(t)
	ctx := context.Background()
	repo := NewPostgresRepo(pool, 5*time.Second)

	withBooks := entity.Seller{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "h"}
	withoutBooks := entity.Seller{FirstName: "C", LastName: "D", Email: "c@d.co", Password: "h"}
	require.NoError(t, repo.Create(ctx, &withBooks))
	require.NoError(t, repo.Create(ctx, &withoutBooks))

	for _, title := range []string{"One", "Two"} {
		_, err := pool.Exec(ctx,
			`INSERT INTO books (title, author, year, count_pages, seller_id) VALUES ($1, 'X', 2000, 10, $2)`,
			title, withBooks.ID)
		require.NoError(t, err)
	}

	sellers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	require.Len(t, sellers[0].Books, 2)
	assert.Equal(t, "One", sellers[0].Books[0].Title)
	assert.Equal(t, withBooks.ID, sellers[0].Books[1].SellerID)
	assert.NotNil(t, sellers[1].Books)
	assert.Empty(t, sellers[1].Books)

	withoutBooks.Email = "new@d.co"
	require.NoError(t, repo.Update(ctx, &withoutBooks))
	got, err := repo.GetByID(ctx, withoutBooks.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@d.co", got.Email)

	require.NoError(t, repo.Delete(ctx, withBooks.ID))
	_, err = repo.GetByID(ctx, withBooks.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var remaining int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM books WHERE seller_id = $1`, withBooks.ID).Scan(&remaining))
	assert.Zero(t, remaining)

	assert.ErrorIs(t, repo.Delete(ctx, withBooks.ID), ErrNotFound)
	missing := entity.Seller{ID: withBooks.ID}
	assert.ErrorIs(t, repo.Update(ctx, &missing), ErrNotFound)
}
