package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"bookstore/internal/config"
	"bookstore/internal/logger"
	"bookstore/internal/store"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var errNameRequired = errors.New("name is required for 'create' command")

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, version, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dir := migrationsDir()

	// create only touches the filesystem.
	if *command == "create" {
		if err := createMigration(dir, *name); err != nil {
			log.Fatal("create migration failed", "error", err)
		}
		log.Info("migration created", "name", *name, "dir", dir)
		return
	}

	if err := migrate(context.Background(), databaseDSN(), dir, *command); err != nil {
		log.Error("migration command failed", "command", *command, "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func migrate(ctx context.Context, dsn, dir, command string) error {
	pool, err := store.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return runCommand(ctx, db, dir, command)
}

func createMigration(dir, name string) error {
	if name == "" {
		return errNameRequired
	}
	return goose.Create(nil, dir, name, "sql")
}

func runCommand(ctx context.Context, db *sql.DB, dir, command string) error {
	switch command {
	case "up", "down", "status", "version":
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, version, create", command)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("rolled back %s\n", r.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-25s %s\n", applied, s.Source.Path)
		}
	case "version":
		v, err := provider.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("version %d\n", v)
	}
	return nil
}
