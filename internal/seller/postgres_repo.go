package seller

import (
	"context"
	"fmt"
	"time"

	"bookstore/internal/entity"
	"bookstore/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertSellerSQL = `
		INSERT INTO sellers (first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	selectSellersWithBooksSQL = `
		SELECT s.id, s.first_name, s.last_name, s.email, s.password,
		       b.id, b.title, b.author, b.year, b.count_pages, b.seller_id
		FROM sellers s
		LEFT JOIN books b ON b.seller_id = s.id`

	orderSellersSQL = `
		ORDER BY s.id, b.id`

	updateSellerSQL = `
		UPDATE sellers
		SET first_name = $2, last_name = $3, email = $4
		WHERE id = $1`

	deleteSellerSQL = `DELETE FROM sellers WHERE id = $1`
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, s *entity.Seller) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := store.QuerierFrom(ctx, r.db).
		QueryRow(ctx, insertSellerSQL, s.FirstName, s.LastName, s.Email, s.Password).
		Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert seller: %w", err)
	}
	if s.Books == nil {
		s.Books = []entity.Book{}
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]entity.Seller, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := store.QuerierFrom(ctx, r.db).Query(ctx, selectSellersWithBooksSQL+orderSellersSQL)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	return collectSellers(rows)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (entity.Seller, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := store.QuerierFrom(ctx, r.db).
		Query(ctx, selectSellersWithBooksSQL+` WHERE s.id = $1`+orderSellersSQL, id)
	if err != nil {
		return entity.Seller{}, fmt.Errorf("get seller %d: %w", id, err)
	}
	sellers, err := collectSellers(rows)
	if err != nil {
		return entity.Seller{}, err
	}
	if len(sellers) == 0 {
		return entity.Seller{}, ErrNotFound
	}
	return sellers[0], nil
}

func (r *PostgresRepo) Update(ctx context.Context, s *entity.Seller) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := store.QuerierFrom(ctx, r.db).
		Exec(ctx, updateSellerSQL, s.ID, s.FirstName, s.LastName, s.Email)
	if err != nil {
		return fmt.Errorf("update seller %d: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the seller; books.seller_id ON DELETE CASCADE removes its
// books in the same statement.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := store.QuerierFrom(ctx, r.db).Exec(ctx, deleteSellerSQL, id)
	if err != nil {
		return fmt.Errorf("delete seller %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// collectSellers folds seller/book join rows, ordered by seller id, into
// sellers with their books attached.
func collectSellers(rows pgx.Rows) ([]entity.Seller, error) {
	defer rows.Close()

	sellers := make([]entity.Seller, 0)
	for rows.Next() {
		var (
			s          entity.Seller
			bookID     *int64
			title      *string
			author     *string
			year       *int
			countPages *int
			sellerID   *int64
		)
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Password,
			&bookID, &title, &author, &year, &countPages, &sellerID,
		); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}

		if n := len(sellers); n == 0 || sellers[n-1].ID != s.ID {
			s.Books = []entity.Book{}
			sellers = append(sellers, s)
		}
		if bookID == nil {
			continue
		}
		last := &sellers[len(sellers)-1]
		last.Books = append(last.Books, entity.Book{
			ID:         *bookID,
			Title:      deref(title),
			Author:     deref(author),
			Year:       deref(year),
			CountPages: deref(countPages),
			SellerID:   deref(sellerID),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellers: %w", err)
	}
	return sellers, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
