package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bookstore/internal/config"
	"bookstore/internal/entity"
	"bookstore/internal/logger"
	"bookstore/internal/platform/crypto"
	"bookstore/internal/store"

	"github.com/jackc/pgx/v5"
)

const (
	insertSellerSQL = `INSERT INTO sellers (first_name, last_name, email, password) VALUES ($1, $2, $3, $4) RETURNING id`
	insertBookSQL   = `INSERT INTO books (title, author, year, count_pages, seller_id) VALUES ($1, $2, $3, $4, $5)`
)

func main() {
	var (
		sellers  = flag.Int("sellers", 10, "Number of sellers to create")
		books    = flag.Int("books", 5, "Number of books per seller")
		password = flag.String("password", "changeme", "Password given to every seeded seller")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg.DatabaseDSN, *password, *sellers, *books, log); err != nil {
		log.Error("seed failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, password string, sellers, books int, log *logger.Logger) error {
	pool, err := store.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	rng := rand.New(rand.NewSource(1))
	demo := generate(rng, sellers, books, hashed)

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return insertAll(ctx, tx, demo)
	})
	if err != nil {
		return err
	}

	var totalSellers, totalBooks int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM sellers").Scan(&totalSellers); err != nil {
		log.Warn("count sellers failed", "error", err)
	}
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&totalBooks); err != nil {
		log.Warn("count books failed", "error", err)
	}
	log.Info("seed complete", "inserted_sellers", len(demo), "sellers", totalSellers, "books", totalBooks)
	return nil
}

// generate builds n sellers with perSeller books each. Seller and book ids are
// left zero; the database assigns them.
func generate(rng *rand.Rand, n, perSeller int, passwordHash string) []entity.Seller {
	out := make([]entity.Seller, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		s := entity.Seller{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s.%d@example.com", first, last, i+1),
			Password:  passwordHash,
			Books:     make([]entity.Book, 0, perSeller),
		}
		for j := 0; j < perSeller; j++ {
			s.Books = append(s.Books, entity.Book{
				Title:      fmt.Sprintf("The %s of %s", randomWord(rng), randomWord(rng)),
				Author:     fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
				Year:       1950 + rng.Intn(75),
				CountPages: 100 + rng.Intn(800),
			})
		}
		out = append(out, s)
	}
	return out
}

// insertAll sends the sellers in one batch, then all of their books in a
// second batch once the seller ids are known.
func insertAll(ctx context.Context, tx pgx.Tx, sellers []entity.Seller) error {
	sellerBatch := &pgx.Batch{}
	for _, s := range sellers {
		sellerBatch.Queue(insertSellerSQL, s.FirstName, s.LastName, s.Email, s.Password)
	}
	results := tx.SendBatch(ctx, sellerBatch)
	for i := range sellers {
		if err := results.QueryRow().Scan(&sellers[i].ID); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert seller %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close seller batch: %w", err)
	}

	bookBatch := &pgx.Batch{}
	for _, s := range sellers {
		for _, b := range s.Books {
			bookBatch.Queue(insertBookSQL, b.Title, b.Author, b.Year, b.CountPages, s.ID)
		}
	}
	if bookBatch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, bookBatch).Close(); err != nil {
		return fmt.Errorf("insert books: %w", err)
	}
	return nil
}

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Margaret", "Ken", "Radia", "Linus"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Hamilton", "Thompson", "Perlman", "Torvalds"}
)

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
