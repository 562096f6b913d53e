package seller

import (
	"context"

	"bookstore/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=seller

// Repository defines the contract for seller data storage. Reads load the
// seller's books eagerly.
type Repository interface {
	Create(ctx context.Context, s *entity.Seller) error
	List(ctx context.Context) ([]entity.Seller, error)
	GetByID(ctx context.Context, id int64) (entity.Seller, error)
	Update(ctx context.Context, s *entity.Seller) error
	Delete(ctx context.Context, id int64) error
}
