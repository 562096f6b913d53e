package book

import (
	"errors"

	"bookstore/internal/entity"
)

var (
	ErrNotFound       = errors.New("book not found")
	ErrSellerNotFound = errors.New("seller not found")
)

// IncomingBook is the body of book create and update requests. Every field
// must be present; an empty string or zero is a present value.
type IncomingBook struct {
	Title      *string `json:"title" validate:"required"`
	Author     *string `json:"author" validate:"required"`
	Year       *int    `json:"year" validate:"required"`
	CountPages *int    `json:"count_pages" validate:"required"`
	SellerID   *int64  `json:"seller_id" validate:"required"`
}

// ToEntity copies the request into a book without an id. Absent fields
// become zero values.
func (in IncomingBook) ToEntity() entity.Book {
	var b entity.Book
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if in.CountPages != nil {
		b.CountPages = *in.CountPages
	}
	if in.SellerID != nil {
		b.SellerID = *in.SellerID
	}
	return b
}

type ReturnedBook struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	CountPages int    `json:"count_pages"`
	SellerID   int64  `json:"seller_id"`
}

func NewReturnedBook(b entity.Book) ReturnedBook {
	return ReturnedBook{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Year:       b.Year,
		CountPages: b.CountPages,
		SellerID:   b.SellerID,
	}
}

// NewReturnedBooks never returns nil so an empty list encodes as [].
func NewReturnedBooks(books []entity.Book) []ReturnedBook {
	out := make([]ReturnedBook, 0, len(books))
	for _, b := range books {
		out = append(out, NewReturnedBook(b))
	}
	return out
}

type ReturnedAllBooks struct {
	Books []ReturnedBook `json:"books"`
}
