package config

import (
	"os"
	"path/filepath"
)

// ConfigPathEnvVar overrides the config file lookup when set.
const ConfigPathEnvVar = "PAGEDIFF_CONFIG_PATH"

// GetConfigPath determines the configuration file path.
// Priority:
//  1. --config command-line flag
//  2. PAGEDIFF_CONFIG_PATH environment variable
//  3. config.yaml or config.json in the current working directory
//  4. config.yaml or config.json in the executable's directory
//
// Explicitly provided paths are returned as-is so a missing file surfaces
// as an error during loading instead of silently falling back to defaults.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}

	cwd, errCwd := os.Getwd()
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	var locations []string
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}
