package entity

// Book is a row of the books table. SellerID references the owning seller.
type Book struct {
	ID         int64
	Title      string
	Author     string
	Year       int
	CountPages int
	SellerID   int64
}
