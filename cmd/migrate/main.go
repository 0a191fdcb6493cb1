package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/logger"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	migrationsDir := flag.String("dir", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	log, err := logger.New(false, "info")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := db.Exec(createMigrationsTable); err != nil {
		log.Fatal("failed to create schema_migrations table", zap.Error(err))
	}

	if *rollback {
		name, err := rollbackLast(db, *migrationsDir)
		if err != nil {
			log.Fatal("rollback failed", zap.Error(err))
		}
		log.Info("rolled back migration", zap.String("file", name))
		return
	}

	applied, err := applyPending(db, *migrationsDir, log)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("all migrations applied", zap.Int("applied", applied))
}

func applyPending(db *sql.DB, dir string, log *zap.Logger) (int, error) {
	files, err := database.MigrationFiles(dir)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, file := range files {
		version := database.MigrationVersion(file)

		var exists bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			log.Info("migration already applied", zap.String("file", file))
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		if err := inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", file, err)
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file)
			return err
		}); err != nil {
			return applied, err
		}

		log.Info("applied migration", zap.String("file", file))
		applied++
	}
	return applied, nil
}

func rollbackLast(db *sql.DB, dir string) (string, error) {
	var version, name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no migrations to rollback")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackPath := filepath.Join(dir, strings.TrimSuffix(name, ".sql")+"_rollback.sql")
	content, err := os.ReadFile(rollbackPath)
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file: %w", err)
	}

	return name, inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", version)
		return err
	})
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
