package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	t.Setenv(key, val)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		name       string
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"True", "true", false, true},
		{"One", "1", false, true},
		{"False", "false", true, false},
		{"Invalid", "sometimes", true, true},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)

			if got := getEnvBool(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	if got, want := getDefaultDatabasePath(), filepath.Join(home, ".config", "gighub", "journal.db"); got != want {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", got, want)
	}
	if got, want := getDefaultLogPath(), filepath.Join(home, ".config", "gighub", "gighub.log"); got != want {
		t.Errorf("getDefaultLogPath() = %q, want %q", got, want)
	}
	if got := getDefaultSampleExportPath(); got != "sample_gig_data.csv" {
		t.Errorf("getDefaultSampleExportPath() = %q", got)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

// isolate points HOME and the working directory at an empty temp dir so no
// real .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)
	for _, key := range []string{EnvAPIKey, EnvURL, EnvProjectID, EnvModelID, EnvIAMURL, EnvAdvisorTimeout, EnvWatchDataFile, EnvDesktopNotify} {
		t.Setenv(key, "")
	}
	t.Setenv(EnvDatabasePath, filepath.Join(tmpDir, "data", "journal.db"))
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.URL != DefaultGraniteURL {
		t.Errorf("URL = %q, want %q", cfg.URL, DefaultGraniteURL)
	}
	if cfg.ModelID != DefaultModelID {
		t.Errorf("ModelID = %q, want %q", cfg.ModelID, DefaultModelID)
	}
	if cfg.AdvisorTimeout != DefaultAdvisorTimeout {
		t.Errorf("AdvisorTimeout = %v, want %v", cfg.AdvisorTimeout, DefaultAdvisorTimeout)
	}
	if !cfg.WatchDataFile || cfg.DesktopNotify {
		t.Errorf("WatchDataFile/DesktopNotify = %v/%v, want true/false", cfg.WatchDataFile, cfg.DesktopNotify)
	}
	if cfg.APIKey != "" || cfg.ProjectID != "" {
		t.Error("credentials should be empty without env")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "data")); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "key-123")
	t.Setenv(EnvProjectID, "proj-456")
	t.Setenv(EnvURL, "https://eu-de.ml.cloud.ibm.com")
	t.Setenv(EnvAdvisorTimeout, "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	creds := cfg.GraniteCredentials()
	if creds.APIKey != "key-123" || creds.ProjectID != "proj-456" {
		t.Errorf("credentials = %+v", creds)
	}
	if creds.URL != "https://eu-de.ml.cloud.ibm.com" {
		t.Errorf("URL = %q", creds.URL)
	}
	if creds.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", creds.Timeout)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	os.Unsetenv(EnvAPIKey)
	os.Unsetenv(EnvProjectID)

	content := EnvAPIKey + "=env-key\n" + EnvProjectID + "=env-project\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
	if cfg.ProjectID != "env-project" {
		t.Errorf("ProjectID = %q, want env-project", cfg.ProjectID)
	}

	os.Unsetenv(EnvAPIKey)
	os.Unsetenv(EnvProjectID)
}
