// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIKey           string
	URL              string
	ProjectID        string
	ModelID          string
	IAMURL           string
	DatabasePath     string
	SampleExportPath string
	LogPath          string
	LogLevel         string
	AdvisorTimeout   time.Duration
	WatchDataFile    bool
	DesktopNotify    bool
}

// GraniteCredentials is the subset of the configuration needed to reach the
// text generation service.
type GraniteCredentials struct {
	APIKey    string
	URL       string
	ProjectID string
	ModelID   string
	IAMURL    string
	Timeout   time.Duration
}

// Load reads configuration from .env files and environment variables.
// Credentials are not checked here; commands that need the advisor validate
// them when it is constructed.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIKey:           getEnvString(EnvAPIKey, ""),
		URL:              getEnvString(EnvURL, DefaultGraniteURL),
		ProjectID:        getEnvString(EnvProjectID, ""),
		ModelID:          getEnvString(EnvModelID, DefaultModelID),
		IAMURL:           getEnvString(EnvIAMURL, DefaultIAMURL),
		DatabasePath:     getEnvString(EnvDatabasePath, getDefaultDatabasePath()),
		SampleExportPath: getEnvString(EnvSampleExportPath, getDefaultSampleExportPath()),
		LogPath:          getEnvString(EnvLogPath, getDefaultLogPath()),
		LogLevel:         getEnvString(EnvLogLevel, DefaultLogLevel),
		AdvisorTimeout:   getEnvDuration(EnvAdvisorTimeout, DefaultAdvisorTimeout),
		WatchDataFile:    getEnvBool(EnvWatchDataFile, true),
		DesktopNotify:    getEnvBool(EnvDesktopNotify, false),
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GraniteCredentials returns the advisor connection settings.
func (c *Config) GraniteCredentials() GraniteCredentials {
	return GraniteCredentials{
		APIKey:    c.APIKey,
		URL:       c.URL,
		ProjectID: c.ProjectID,
		ModelID:   c.ModelID,
		IAMURL:    c.IAMURL,
		Timeout:   c.AdvisorTimeout,
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, "."+appDirName, ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

func appDir() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", appDirName), true
}

// getDefaultDatabasePath returns the default path for the SQLite journal.
func getDefaultDatabasePath() string {
	dir, ok := appDir()
	if !ok {
		return "journal.db"
	}
	return filepath.Join(dir, "journal.db")
}

// getDefaultSampleExportPath returns where the sample CSV is written.
func getDefaultSampleExportPath() string {
	return "sample_gig_data.csv"
}

// getDefaultLogPath returns the default log file location.
func getDefaultLogPath() string {
	dir, ok := appDir()
	if !ok {
		return ""
	}
	return filepath.Join(dir, "gighub.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
