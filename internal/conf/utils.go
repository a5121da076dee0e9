// conf/utils.go various util functions for configuration package
package conf

import (
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cvsuagritech/agrisight-go/internal/errors"
)

// GetDefaultConfigPaths returns a list of default configuration paths for the
// current operating system. If a config.yaml file is found in any of the paths,
// that path is returned as the only default.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategorySystem).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "agrisight"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "agrisight"),
			"/etc/agrisight",
		}
	}

	// Config file found in any of the paths wins
	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}

// GetBasePath expands a relative path against the first default config path,
// creating the directory if needed. Absolute paths are returned unchanged.
func GetBasePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	configPaths, err := GetDefaultConfigPaths()
	if err != nil || len(configPaths) == 0 {
		return path
	}

	basePath := filepath.Join(configPaths[0], path)
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		log.Printf("failed to create directory %s: %v", basePath, err)
	}
	return basePath
}
