package seller

import (
	"errors"

	"bookstore/internal/book"
	"bookstore/internal/entity"
)

var ErrNotFound = errors.New("seller not found")

// CreateRequest is the body of POST /sellers/.
type CreateRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// UpdateRequest is the body of PUT /sellers/{id}. A field that is absent or
// empty leaves the stored value unchanged.
type UpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,optional_email"`
}

// ApplyTo copies the non-empty fields of req onto s.
func (req UpdateRequest) ApplyTo(s *entity.Seller) {
	if v := req.FirstName; v != nil && *v != "" {
		s.FirstName = *v
	}
	if v := req.LastName; v != nil && *v != "" {
		s.LastName = *v
	}
	if v := req.Email; v != nil && *v != "" {
		s.Email = *v
	}
}

// ReturnedSeller is the outgoing seller shape. It has no password field.
type ReturnedSeller struct {
	ID        int64               `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     string              `json:"email"`
	Books     []book.ReturnedBook `json:"books"`
}

func NewReturnedSeller(s entity.Seller) ReturnedSeller {
	return ReturnedSeller{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Books:     book.NewReturnedBooks(s.Books),
	}
}

type ReturnedAllSellers struct {
	Sellers []ReturnedSeller `json:"sellers"`
}

func NewReturnedAllSellers(sellers []entity.Seller) ReturnedAllSellers {
	out := make([]ReturnedSeller, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, NewReturnedSeller(s))
	}
	return ReturnedAllSellers{Sellers: out}
}
