package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"bookstore-api/config"
	"bookstore-api/infrastructure/database"
	"bookstore-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func main() {
	statusOnly := flag.Bool("status", false, "print applied/pending migrations without applying anything")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		logger.Error("failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	if *statusOnly {
		err = status(ctx, db)
	} else {
		err = up(ctx, db)
	}
	if err != nil {
		logger.Error("migration failed", err)
		os.Exit(1)
	}
}

func ensureVersionTable(ctx context.Context, db *database.PostgresDB) error {
	_, err := db.Pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    TEXT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func migrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func isApplied(ctx context.Context, db *database.PostgresDB, version string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return exists, nil
}

// up applies every embedded migration that has not been recorded in
// schema_migrations yet, in filename order, each inside its own
// transaction.
func up(ctx context.Context, db *database.PostgresDB) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}
	names, err := migrationNames()
	if err != nil {
		return err
	}

	applied := 0
	for _, name := range names {
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		sql, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		tx, err := db.Pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, name,
		); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", name, err)
		}

		logger.Info("migration applied", map[string]interface{}{"version": name})
		applied++
	}

	logger.Info("migrations up to date", map[string]interface{}{
		"applied": applied,
		"total":   len(names),
	})
	return nil
}

// status prints each embedded migration with its applied/pending state.
func status(ctx context.Context, db *database.PostgresDB) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}
	names, err := migrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return err
		}
		state := "pending"
		if done {
			state = "applied"
		}
		fmt.Printf("%-10s %s\n", state, name)
	}
	return nil
}
