package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore/internal/entity"
	"bookstore/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

const (
	insertBookSQL = `
		INSERT INTO books (title, author, year, count_pages, seller_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	selectBooksSQL = `
		SELECT id, title, author, year, count_pages, seller_id
		FROM books
		ORDER BY id`

	selectBookByIDSQL = `
		SELECT id, title, author, year, count_pages, seller_id
		FROM books
		WHERE id = $1`

	updateBookSQL = `
		UPDATE books
		SET title = $2, author = $3, year = $4, count_pages = $5, seller_id = $6
		WHERE id = $1`

	deleteBookSQL = `
		DELETE FROM books
		WHERE id = $1
		RETURNING id, title, author, year, count_pages, seller_id`
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

func (r *PostgresRepo) Create(ctx context.Context, b *entity.Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := store.QuerierFrom(ctx, r.db).
		QueryRow(ctx, insertBookSQL, b.Title, b.Author, b.Year, b.CountPages, b.SellerID).
		Scan(&b.ID)
	if err != nil {
		return mapWriteError("insert book", err)
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]entity.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := store.QuerierFrom(ctx, r.db).Query(ctx, selectBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]entity.Book, 0)
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CountPages, &b.SellerID); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b entity.Book
	err := store.QuerierFrom(ctx, r.db).QueryRow(ctx, selectBookByIDSQL, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CountPages, &b.SellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, ErrNotFound
		}
		return entity.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *entity.Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := store.QuerierFrom(ctx, r.db).
		Exec(ctx, updateBookSQL, b.ID, b.Title, b.Author, b.Year, b.CountPages, b.SellerID)
	if err != nil {
		return mapWriteError("update book", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (entity.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b entity.Book
	err := store.QuerierFrom(ctx, r.db).QueryRow(ctx, deleteBookSQL, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CountPages, &b.SellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, ErrNotFound
		}
		return entity.Book{}, fmt.Errorf("delete book %d: %w", id, err)
	}
	return b, nil
}

// mapWriteError turns a books.seller_id foreign key violation into
// ErrSellerNotFound.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrSellerNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
