package entity

// Seller is a row of the sellers table together with the books it owns.
//
// Password holds the bcrypt hash written at creation time. Entities are never
// serialized directly; outgoing shapes live next to the HTTP handlers.
type Seller struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string `json:"-"`
	Books     []Book
}
