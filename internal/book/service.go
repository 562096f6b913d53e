package book

import (
	"context"

	"bookstore/internal/entity"
	"bookstore/internal/store"
)

// Service provides book-related business logic. Every operation runs in one
// transaction scope.
type Service struct {
	repo Repository
	tx   store.Transactor
}

// NewService creates a new book service.
func NewService(repo Repository, tx store.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

// Create inserts a book and returns it with its generated id.
func (s *Service) Create(ctx context.Context, in IncomingBook) (entity.Book, error) {
	b := in.ToEntity()
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, &b)
	})
	if err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// List returns every book ordered by id.
func (s *Service) List(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		books, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []entity.Book{}
	}
	return books, nil
}

// GetByID returns the book with id or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	var b entity.Book
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetByID(ctx, id)
		return err
	})
	return b, err
}

// Update overwrites every mutable field of book id with the values in in.
func (s *Service) Update(ctx context.Context, id int64, in IncomingBook) (entity.Book, error) {
	b := in.ToEntity()
	b.ID = id
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, &b)
	})
	if err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// Delete removes book id and returns what was removed.
func (s *Service) Delete(ctx context.Context, id int64) (entity.Book, error) {
	var b entity.Book
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.Delete(ctx, id)
		return err
	})
	return b, err
}
