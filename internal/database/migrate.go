package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pageza/recipebook/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. SQLite uses gorm auto-migration;
// PostgreSQL executes the *.sql files of migrationsDir in name order, skipping
// rollback scripts and files already recorded in schema_migrations.
func RunMigrations(db *gorm.DB, migrationsDir string, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using gorm auto-migration for sqlite")
		return db.AutoMigrate(&model.Recipe{}, &model.Ingredient{})
	}

	files, err := MigrationFiles(migrationsDir)
	if err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, name := range files {
		version := MigrationVersion(name)

		var count int64
		if err := db.Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("skipping migration, already applied", zap.String("file", name))
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info("applied migration", zap.String("file", name))
	}

	return nil
}

// MigrationFiles lists the forward migration files of dir in apply order
func MigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// MigrationVersion extracts the version prefix of a VERSION_name.sql file
func MigrationVersion(name string) string {
	return strings.SplitN(name, "_", 2)[0]
}
