package memstore

import (
	"context"
	"slices"

	"bookstore/internal/entity"
	"bookstore/internal/seller"
)

// SellerRepo implements seller.Repository.
type SellerRepo struct {
	db *DB
}

func (r *SellerRepo) Create(ctx context.Context, s *entity.Seller) error {
	defer r.db.lock(ctx)()

	r.db.sellerIDCounter++
	s.ID = r.db.sellerIDCounter
	stored := *s
	stored.Books = nil
	r.db.sellers[s.ID] = stored
	s.Books = []entity.Book{}
	return nil
}

func (r *SellerRepo) List(ctx context.Context) ([]entity.Seller, error) {
	defer r.db.lock(ctx)()

	ids := make([]int64, 0, len(r.db.sellers))
	for id := range r.db.sellers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]entity.Seller, 0, len(ids))
	for _, id := range ids {
		s := r.db.sellers[id]
		s.Books = r.db.booksOf(id)
		out = append(out, s)
	}
	return out, nil
}

func (r *SellerRepo) GetByID(ctx context.Context, id int64) (entity.Seller, error) {
	defer r.db.lock(ctx)()

	s, ok := r.db.sellers[id]
	if !ok {
		return entity.Seller{}, seller.ErrNotFound
	}
	s.Books = r.db.booksOf(id)
	return s, nil
}

func (r *SellerRepo) Update(ctx context.Context, s *entity.Seller) error {
	defer r.db.lock(ctx)()

	stored, ok := r.db.sellers[s.ID]
	if !ok {
		return seller.ErrNotFound
	}
	stored.FirstName = s.FirstName
	stored.LastName = s.LastName
	stored.Email = s.Email
	r.db.sellers[s.ID] = stored
	return nil
}

// Delete removes the seller and every book it owns.
func (r *SellerRepo) Delete(ctx context.Context, id int64) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.sellers[id]; !ok {
		return seller.ErrNotFound
	}
	delete(r.db.sellers, id)
	for bookID, b := range r.db.books {
		if b.SellerID == id {
			delete(r.db.books, bookID)
		}
	}
	return nil
}
