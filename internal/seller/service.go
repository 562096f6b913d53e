package seller

import (
	"context"
	"fmt"

	"bookstore/internal/entity"
	"bookstore/internal/store"
)

// PasswordHasher turns a plaintext password into the stored form.
type PasswordHasher func(password string) (string, error)

// Service provides seller-related business logic. Every operation runs in
// one transaction scope.
type Service struct {
	repo Repository
	tx   store.Transactor
	hash PasswordHasher
}

// NewService creates a new seller service.
func NewService(repo Repository, tx store.Transactor, hash PasswordHasher) *Service {
	return &Service{repo: repo, tx: tx, hash: hash}
}

// Create stores a new seller and returns it with its (empty) book list.
func (s *Service) Create(ctx context.Context, req CreateRequest) (entity.Seller, error) {
	hashed, err := s.hash(req.Password)
	if err != nil {
		return entity.Seller{}, fmt.Errorf("hash password: %w", err)
	}

	var created entity.Seller
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sel := entity.Seller{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  hashed,
		}
		if err := s.repo.Create(ctx, &sel); err != nil {
			return err
		}
		var err error
		created, err = s.repo.GetByID(ctx, sel.ID)
		return err
	})
	if err != nil {
		return entity.Seller{}, err
	}
	return created, nil
}

// List returns every seller with its books.
func (s *Service) List(ctx context.Context) ([]entity.Seller, error) {
	var sellers []entity.Seller
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		sellers, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if sellers == nil {
		sellers = []entity.Seller{}
	}
	return sellers, nil
}

// GetByID returns seller id with its books, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (entity.Seller, error) {
	var sel entity.Seller
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		sel, err = s.repo.GetByID(ctx, id)
		return err
	})
	return sel, err
}

// Update applies the non-empty fields of req to seller id.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (entity.Seller, error) {
	var updated entity.Seller
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		req.ApplyTo(&current)
		if err := s.repo.Update(ctx, &current); err != nil {
			return err
		}
		updated, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return entity.Seller{}, err
	}
	return updated, nil
}

// Delete removes seller id together with its books.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}
