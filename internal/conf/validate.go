// validate.go: validation of loaded settings.
package conf

import (
	"strconv"

	"github.com/cvsuagritech/agrisight-go/internal/errors"
)

// ValidateSettings checks the loaded settings for configuration mistakes that
// would otherwise surface later as confusing runtime failures.
func ValidateSettings(settings *Settings) error {
	if err := validateDatabase(&settings.Database); err != nil {
		return err
	}
	if err := validateAssessment(&settings.Assessment); err != nil {
		return err
	}
	if err := validateWeb(&settings.Web); err != nil {
		return err
	}
	if err := validateSync(&settings.Sync); err != nil {
		return err
	}
	return nil
}

func validateDatabase(db *DatabaseSettings) error {
	if db.SQLite.Enabled && db.MySQL.Enabled {
		return errors.Newf("only one database backend may be enabled at a time").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "database").
			Build()
	}
	if !db.SQLite.Enabled && !db.MySQL.Enabled {
		return errors.Newf("no database backend enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "database").
			Build()
	}
	if db.SQLite.Enabled && db.SQLite.Path == "" {
		return errors.Newf("sqlite database path must not be empty").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "database.sqlite.path").
			Build()
	}
	if db.MySQL.Enabled {
		if db.MySQL.Host == "" || db.MySQL.Database == "" {
			return errors.Newf("mysql host and database must be set").
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("setting", "database.mysql").
				Build()
		}
		if _, err := strconv.Atoi(db.MySQL.Port); err != nil {
			return errors.Newf("invalid mysql port: %s", db.MySQL.Port).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("setting", "database.mysql.port").
				Build()
		}
	}
	return nil
}

func validateAssessment(a *AssessmentSettings) error {
	switch a.Mode {
	// An empty mode means simulation, matching the assessor factory.
	case AssessmentModeSimulate, AssessmentModeClassifier, "":
	default:
		return errors.Newf("unknown assessment mode: %s", a.Mode).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "assessment.mode").
			Build()
	}
	if a.CropType == "" {
		a.CropType = "Rice"
	}
	return nil
}

func validateWeb(w *WebSettings) error {
	if !w.Enabled {
		return nil
	}
	port, err := strconv.Atoi(w.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.Newf("invalid web port: %s", w.Port).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "web.port").
			Build()
	}
	return nil
}

func validateSync(s *SyncSettings) error {
	if !s.MQTT.Enabled {
		return nil
	}
	if s.MQTT.Broker == "" {
		return errors.Newf("mqtt broker must be set when sync is enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "sync.mqtt.broker").
			Build()
	}
	if s.MQTT.Topic == "" {
		return errors.Newf("mqtt topic must be set when sync is enabled").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("setting", "sync.mqtt.topic").
			Build()
	}
	return nil
}
