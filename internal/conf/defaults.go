// defaults.go: default configuration values applied before reading the config file.
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig registers the default configuration values with viper.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main settings
	viper.SetDefault("main.name", "agrisight")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/agrisight.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 10*1024*1024)

	// Database settings
	viper.SetDefault("database.sqlite.enabled", true)
	viper.SetDefault("database.sqlite.path", "crop_health.db")
	viper.SetDefault("database.mysql.enabled", false)
	viper.SetDefault("database.mysql.username", "agrisight")
	viper.SetDefault("database.mysql.password", "")
	viper.SetDefault("database.mysql.host", "localhost")
	viper.SetDefault("database.mysql.port", "3306")
	viper.SetDefault("database.mysql.database", "agrisight")

	// Assessment settings
	viper.SetDefault("assessment.mode", AssessmentModeSimulate)
	viper.SetDefault("assessment.croptype", "Rice")
	viper.SetDefault("assessment.debug", false)

	// Report settings
	viper.SetDefault("report.generatedby", "AgriSight System")

	// Sync settings
	viper.SetDefault("sync.mqtt.enabled", false)
	viper.SetDefault("sync.mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("sync.mqtt.topic", "agrisight/reports")
	viper.SetDefault("sync.mqtt.username", "")
	viper.SetDefault("sync.mqtt.password", "")

	// Web server settings
	viper.SetDefault("web.enabled", true)
	viper.SetDefault("web.port", "8090")
	viper.SetDefault("web.debug", false)

	// Gamification settings
	viper.SetDefault("gamification.enabled", true)
	viper.SetDefault("gamification.path", "gamification.db")
	viper.SetDefault("gamification.username", "Farmer")

	// Demo data seeding
	viper.SetDefault("demodata.enabled", false)
}
