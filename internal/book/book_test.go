package book

import (
	"encoding/json"
	"testing"

	"bookstore/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomingBook_ToEntity(t *testing.T) {
	var in IncomingBook
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","author":"Le Guin","year":1969,"count_pages":0,"seller_id":4}`), &in))

	assert.Equal(t, entity.Book{Title: "", Author: "Le Guin", Year: 1969, CountPages: 0, SellerID: 4}, in.ToEntity())
}

func TestReturnedAllBooks_EmptyEncodesAsArray(t *testing.T) {
	raw, err := json.Marshal(ReturnedAllBooks{Books: NewReturnedBooks(nil)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"books":[]}`, string(raw))
}

func TestNewReturnedBook(t *testing.T) {
	b := entity.Book{ID: 3, Title: "Dune", Author: "Herbert", Year: 1965, CountPages: 412, SellerID: 2}

	raw, err := json.Marshal(NewReturnedBook(b))
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":3,"title":"Dune","author":"Herbert","year":1965,"count_pages":412,"seller_id":2}`, string(raw))
}
