package memstore

import (
	"cmp"
	"context"
	"slices"

	"bookstore/internal/book"
	"bookstore/internal/entity"
)

// BookRepo implements book.Repository. Writes check that the owning seller
// exists.
type BookRepo struct {
	db *DB
}

func (r *BookRepo) Create(ctx context.Context, b *entity.Book) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.sellers[b.SellerID]; !ok {
		return book.ErrSellerNotFound
	}
	r.db.bookIDCounter++
	b.ID = r.db.bookIDCounter
	r.db.books[b.ID] = *b
	return nil
}

func (r *BookRepo) List(ctx context.Context) ([]entity.Book, error) {
	defer r.db.lock(ctx)()

	out := make([]entity.Book, 0, len(r.db.books))
	for _, b := range r.db.books {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b entity.Book) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	defer r.db.lock(ctx)()

	b, ok := r.db.books[id]
	if !ok {
		return entity.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (r *BookRepo) Update(ctx context.Context, b *entity.Book) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.books[b.ID]; !ok {
		return book.ErrNotFound
	}
	if _, ok := r.db.sellers[b.SellerID]; !ok {
		return book.ErrSellerNotFound
	}
	r.db.books[b.ID] = *b
	return nil
}

func (r *BookRepo) Delete(ctx context.Context, id int64) (entity.Book, error) {
	defer r.db.lock(ctx)()

	b, ok := r.db.books[id]
	if !ok {
		return entity.Book{}, book.ErrNotFound
	}
	delete(r.db.books, id)
	return b, nil
}
