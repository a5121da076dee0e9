// manage.go: schema versioning, migration and idempotent seeding
package datastore

import (
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"gorm.io/gorm"
)

// schemaVersion is the current on-disk schema. Version 2 replaced the v1
// pest-scouting tables with the crop health schema; the upgrade is
// destructive and discards v1 rows, matching the mobile app's migration.
const schemaVersion = 2

// legacyTables are v1 tables dropped during the destructive upgrade.
var legacyTables = []string{"pest_records", "pest_reports"}

// schemaInfo tracks the schema version applied to this database.
type schemaInfo struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"not null"`
	UpdatedAt time.Time
}

func (schemaInfo) TableName() string {
	return "schema_info"
}

// seedMarker records that a named seed routine has already run.
type seedMarker struct {
	Name     string `gorm:"primaryKey"`
	SeededAt time.Time
}

func (seedMarker) TableName() string {
	return "seed_markers"
}

// managedModels lists every table the store owns, in creation order.
func managedModels() []any {
	return []any{
		&model.CropHealthRecord{},
		&model.TreatmentRecommendation{},
		&model.LGUReport{},
	}
}

// performAutoMigration brings the database up to the current schema.
// dbType and connectionInfo are used for log context only.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	log := getLogger()

	if err := db.AutoMigrate(&schemaInfo{}, &seedMarker{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "migrate_schema_info").
			Context("db_type", dbType).
			Build()
	}

	var info schemaInfo
	err := db.Order("id ASC").First(&info).Error
	switch {
	case isNotFound(err):
		// Fresh database: create all tables at the current version.
		if err := db.AutoMigrate(managedModels()...); err != nil {
			return migrationError(err, dbType, "create_tables")
		}
		if err := db.Create(&schemaInfo{Version: schemaVersion, UpdatedAt: time.Now()}).Error; err != nil {
			return migrationError(err, dbType, "write_schema_version")
		}
		log.Info("initialized database schema",
			"db_type", dbType, "connection", connectionInfo, "version", schemaVersion)
		return nil
	case err != nil:
		return migrationError(err, dbType, "read_schema_version")
	}

	switch {
	case info.Version == schemaVersion:
		// AutoMigrate is idempotent; run it to pick up column additions.
		if err := db.AutoMigrate(managedModels()...); err != nil {
			return migrationError(err, dbType, "migrate_tables")
		}
		if debug {
			log.Debug("database schema up to date", "db_type", dbType, "version", info.Version)
		}
		return nil
	case info.Version > schemaVersion:
		return errors.Newf("database schema version %d is newer than supported version %d", info.Version, schemaVersion).
			Component("datastore").
			Category(errors.CategoryState).
			Context("db_type", dbType).
			Build()
	}

	// Destructive upgrade path. All rows written under the old schema are
	// discarded, including any legacy pest-scouting tables.
	log.Warn("upgrading database schema, existing rows will be discarded",
		"db_type", dbType, "from_version", info.Version, "to_version", schemaVersion)

	migrator := db.Migrator()
	for _, table := range legacyTables {
		if migrator.HasTable(table) {
			if err := migrator.DropTable(table); err != nil {
				return migrationError(err, dbType, "drop_legacy_table")
			}
		}
	}
	for _, m := range managedModels() {
		if migrator.HasTable(m) {
			if err := migrator.DropTable(m); err != nil {
				return migrationError(err, dbType, "drop_table")
			}
		}
	}
	if err := db.AutoMigrate(managedModels()...); err != nil {
		return migrationError(err, dbType, "create_tables")
	}
	if err := db.Model(&schemaInfo{}).Where("id = ?", info.ID).
		Updates(map[string]any{"version": schemaVersion, "updated_at": time.Now()}).Error; err != nil {
		return migrationError(err, dbType, "write_schema_version")
	}
	// Seed markers belong to the old schema's contents.
	if err := db.Where("1 = 1").Delete(&seedMarker{}).Error; err != nil {
		return migrationError(err, dbType, "reset_seed_markers")
	}

	log.Info("database schema upgraded", "db_type", dbType, "version", schemaVersion)
	return nil
}

func migrationError(err error, dbType, operation string) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Priority(errors.PriorityCritical).
		Context("operation", operation).
		Context("db_type", dbType).
		Build()
}

// EnsureSeeded runs seed exactly once per marker name. The seed callback and
// the marker insert share one transaction, so a failed seed leaves no marker
// and a later call retries. Returns true when the seed ran in this call.
func (ds *DataStore) EnsureSeeded(name string, seed func(tx *DataStore) error) (seeded bool, err error) {
	defer func(start time.Time) { ds.observe("ensure_seeded", start, err) }(time.Now())

	if name == "" {
		return false, validationError("seed marker name must not be empty")
	}

	txErr := ds.DB.Transaction(func(tx *gorm.DB) error {
		var marker seedMarker
		err := tx.Where("name = ?", name).First(&marker).Error
		if err == nil {
			return nil
		}
		if !isNotFound(err) {
			return err
		}
		if err := seed(&DataStore{DB: tx, metrics: ds.metrics}); err != nil {
			return err
		}
		if err := tx.Create(&seedMarker{Name: name, SeededAt: time.Now()}).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if txErr != nil {
		return false, dbError(txErr, "ensure_seeded", errors.PriorityHigh, "seed", name)
	}
	if seeded {
		getLogger().Info("seed routine applied", "seed", name)
	}
	return seeded, nil
}
