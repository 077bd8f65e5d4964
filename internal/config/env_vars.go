package config

import (
	"os"
	"path/filepath"
)

const (
	serviceURLEnvVar = "SERVICE_URL"
	appNameEnvVar    = "APP_NAME"
	folderEnvVar     = "FOLDER"
)

type EnvConfig interface {
	GetServiceBaseURL() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetServiceBaseURL returns the backend origin, without a trailing slash.
func (EnvVars) GetServiceBaseURL() string {
	return GetEnv(serviceURLEnvVar, "http://localhost:8000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameEnvVar, "Care Console")
}

// GetDataFolder is where the session file lives between restarts.
func (EnvVars) GetDataFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return GetEnv(folderEnvVar, "./data")
	}
	return GetEnv(folderEnvVar, filepath.Join(home, ".care-console"))
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
