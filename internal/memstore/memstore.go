// Package memstore implements the seller and book repositories in memory for
// development and testing.
package memstore

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"bookstore/internal/book"
	"bookstore/internal/entity"
	"bookstore/internal/seller"
	"bookstore/internal/store"
)

// DB holds sellers and books. Sellers are stored without their books; reads
// attach them.
type DB struct {
	mu      sync.Mutex
	sellers map[int64]entity.Seller
	books   map[int64]entity.Book

	sellerIDCounter int64
	bookIDCounter   int64
}

type txKey struct{}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sellers: make(map[int64]entity.Seller),
		books:   make(map[int64]entity.Book),
	}
}

// Ensure interfaces are met.
var _ store.Transactor = (*DB)(nil)
var _ seller.Repository = (*SellerRepo)(nil)
var _ book.Repository = (*BookRepo)(nil)

type snapshot struct {
	sellers         map[int64]entity.Seller
	books           map[int64]entity.Book
	sellerIDCounter int64
	bookIDCounter   int64
}

func (db *DB) snapshot() snapshot {
	return snapshot{
		sellers:         maps.Clone(db.sellers),
		books:           maps.Clone(db.books),
		sellerIDCounter: db.sellerIDCounter,
		bookIDCounter:   db.bookIDCounter,
	}
}

func (db *DB) restore(s snapshot) {
	db.sellers = s.sellers
	db.books = s.books
	db.sellerIDCounter = s.sellerIDCounter
	db.bookIDCounter = s.bookIDCounter
}

// WithinTx runs fn holding the store lock. If fn fails or panics every change
// it made is undone. A context that already carries a transaction of this
// store joins it.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if db.inTx(ctx) {
		return fn(ctx)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	snap := db.snapshot()
	defer func() {
		if p := recover(); p != nil {
			db.restore(snap)
			panic(p)
		}
		if err != nil {
			db.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, db))
}

// Ping reports readiness; the memory store is always ready.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (db *DB) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*DB)
	return owner == db
}

// lock acquires the store lock unless ctx already holds it through WithinTx.
func (db *DB) lock(ctx context.Context) func() {
	if db.inTx(ctx) {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}

func (db *DB) booksOf(sellerID int64) []entity.Book {
	out := []entity.Book{}
	for _, b := range db.books {
		if b.SellerID == sellerID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b entity.Book) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Sellers returns the seller repository backed by db.
func (db *DB) Sellers() *SellerRepo {
	return &SellerRepo{db: db}
}

// Books returns the book repository backed by db.
func (db *DB) Books() *BookRepo {
	return &BookRepo{db: db}
}
