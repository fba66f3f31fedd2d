package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar       = "APP_NAME"
	folderEnvVar     = "FOLDER"
	tokenStoreKeyVar = "TOKEN_STORE_KEY"
	envVar           = "ENV"

	tokenStoreFile = "tokens.db"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Finance Tracker")
}

// GetDataFolder returns where the client keeps its durable state, ~/.finance by default
func (EnvVars) GetDataFolder() string {
	if folder := os.Getenv(folderEnvVar); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".finance")
}

func (e EnvVars) GetTokenStorePath() string {
	return filepath.Join(e.GetDataFolder(), tokenStoreFile)
}

// GetTokenStoreKey returns the passphrase used to seal token store values.
// Empty means values are stored as plain text.
func (EnvVars) GetTokenStoreKey() string {
	return GetEnv(tokenStoreKeyVar, "")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
