// sqlite.go: SQLite-backed store
package datastore

import (
	"fmt"
	"path/filepath"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteStore implements Interface on a local SQLite database file.
type SQLiteStore struct {
	Settings *conf.Settings
	DataStore
}

func validateSQLiteConfig(settings *conf.Settings) error {
	if settings.Database.SQLite.Path == "" {
		return errors.Newf("sqlite database path is empty").
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

// Open opens the database file, creating its directory when missing, and
// brings the schema up to date.
func (store *SQLiteStore) Open() error {
	if err := validateSQLiteConfig(store.Settings); err != nil {
		return err
	}

	dir, fileName := filepath.Split(store.Settings.Database.SQLite.Path)
	basePath := conf.GetBasePath(dir)
	dbPath := filepath.Join(basePath, fileName)

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newGormLogger(store.Settings.Debug),
	})
	if err != nil {
		return errors.Newf("failed to open sqlite database: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Priority(errors.PriorityCritical).
			Context("db_path", dbPath).
			Build()
	}

	// Single writer; serializing connections avoids SQLITE_BUSY under
	// concurrent API requests.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	store.DB = db
	return performAutoMigration(db, store.Settings.Debug, "sqlite", dbPath)
}

// Close closes the database connection.
func (store *SQLiteStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close sqlite database: %w", err)
	}
	store.DB = nil
	return nil
}
