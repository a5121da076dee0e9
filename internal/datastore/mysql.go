// mysql.go: MySQL-backed store
package datastore

import (
	"fmt"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLStore implements Interface on a shared MySQL server, for deployments
// where several field offices write to one database.
type MySQLStore struct {
	Settings *conf.Settings
	DataStore
}

func validateMySQLConfig(settings *conf.Settings) error {
	mc := settings.Database.MySQL
	if mc.Host == "" || mc.Port == "" || mc.Database == "" || mc.Username == "" {
		return errors.Newf("mysql connection settings are incomplete").
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Context("host", mc.Host).
			Context("database", mc.Database).
			Build()
	}
	return nil
}

// Open connects to the configured MySQL server and brings the schema up to
// date.
func (store *MySQLStore) Open() error {
	if err := validateMySQLConfig(store.Settings); err != nil {
		return err
	}

	mc := store.Settings.Database.MySQL
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		mc.Username, mc.Password, mc.Host, mc.Port, mc.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newGormLogger(store.Settings.Debug),
	})
	if err != nil {
		return errors.Newf("failed to open mysql database: %w", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Priority(errors.PriorityCritical).
			Context("host", mc.Host).
			Context("database", mc.Database).
			Build()
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	store.DB = db
	return performAutoMigration(db, store.Settings.Debug, "mysql",
		fmt.Sprintf("%s:%s/%s", mc.Host, mc.Port, mc.Database))
}

// Close closes the database connection.
func (store *MySQLStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close mysql database: %w", err)
	}
	store.DB = nil
	return nil
}
