// config.go: settings structs and loading for the AgriSight service.
package conf

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Log rotation types for file loggers.
const (
	RotationDaily  = "daily"
	RotationWeekly = "weekly"
	RotationSize   = "size"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled  bool   // true to enable this log
	Path     string // path to log file
	Rotation string // rotation type, "daily", "weekly" or "size"
	MaxSize  int64  // max size in bytes for size rotation
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string    // node name, used to identify the instance
	Log  LogConfig // main log file settings
}

// SQLiteSettings contains settings for the SQLite database backend.
type SQLiteSettings struct {
	Enabled bool
	Path    string // path to the database file
}

// MySQLSettings contains settings for the MySQL database backend.
type MySQLSettings struct {
	Enabled  bool
	Username string
	Password string
	Host     string
	Port     string
	Database string
}

// DatabaseSettings selects and configures the record store backend.
type DatabaseSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// Assessment modes.
const (
	AssessmentModeSimulate   = "simulate"
	AssessmentModeClassifier = "classifier"
)

// AssessmentSettings configures how crop images are turned into health assessments.
type AssessmentSettings struct {
	Mode     string // "simulate" or "classifier"
	CropType string // default crop type for new records
	Debug    bool
}

// ReportSettings configures LGU report generation.
type ReportSettings struct {
	GeneratedBy string // generator identity recorded on reports
}

// MQTTSettings contains settings for report sync publishing over MQTT.
type MQTTSettings struct {
	Enabled  bool
	Broker   string // broker URL, e.g. tcp://localhost:1883
	Topic    string
	Username string
	Password string
}

// SyncSettings configures the report sync publisher.
type SyncSettings struct {
	MQTT MQTTSettings
}

// WebSettings contains settings for the HTTP API server.
type WebSettings struct {
	Enabled bool
	Port    string
	Debug   bool
}

// GamificationSettings configures the quest/reward store.
type GamificationSettings struct {
	Enabled  bool
	Path     string // path to the gamification database file
	Username string // default profile username
}

// DemoDataSettings configures demo data seeding.
type DemoDataSettings struct {
	Enabled bool
}

// Settings is the root of the application configuration.
type Settings struct {
	Debug bool // true to enable debug mode

	Main         MainSettings
	Database     DatabaseSettings
	Assessment   AssessmentSettings
	Report       ReportSettings
	Sync         SyncSettings
	Web          WebSettings
	Gamification GamificationSettings
	DemoData     DemoDataSettings
}

var (
	settingsInstance *Settings
	settingsOnce     sync.Once
	settingsMutex    sync.RWMutex
)

// Setting returns the global settings instance, loading it on first use.
func Setting() *Settings {
	settingsOnce.Do(func() {
		settingsMutex.Lock()
		defer settingsMutex.Unlock()
		if settingsInstance == nil {
			var err error
			settingsInstance, err = Load()
			if err != nil {
				log.Fatalf("error loading settings: %v", err)
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// setTestSettings replaces the global settings, for tests only.
func setTestSettings(s *Settings) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	settingsInstance = s
	settingsOnce.Do(func() {})
}

// Load reads the configuration file and returns the populated settings.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with defaults and reads the configuration file.
func initViper() error {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file found, create one from defaults
		configPath := filepath.Join(configPaths[0], "config.yaml")
		if err := createDefaultConfig(configPath); err != nil {
			return fmt.Errorf("error creating default config file: %w", err)
		}
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading newly created config file: %w", err)
		}
	}

	return nil
}

// createDefaultConfig writes the current defaults as a YAML config file.
func createDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	defaults := viper.AllSettings()
	yamlData, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("error marshaling default settings: %w", err)
	}

	if err := os.WriteFile(configPath, yamlData, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	log.Printf("Created default configuration at %v", configPath)
	return nil
}
