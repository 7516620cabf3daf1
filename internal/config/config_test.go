package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				DBPath:      filepath.Join(dir, "a", "foodies.db"),
				LogLevel:    "debug",
				LockTimeout: 3 * time.Second,
				HTTPTimeout: 5 * time.Second,
			},
		},
		{
			name: "empty db path",
			config: Config{
				LogLevel:    "info",
				LockTimeout: time.Second,
				HTTPTimeout: time.Second,
			},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name: "bad log level",
			config: Config{
				DBPath:      filepath.Join(dir, "foodies.db"),
				LogLevel:    "loud",
				LockTimeout: time.Second,
				HTTPTimeout: time.Second,
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name: "lock timeout too small",
			config: Config{
				DBPath:      filepath.Join(dir, "foodies.db"),
				LogLevel:    "info",
				LockTimeout: time.Millisecond,
				HTTPTimeout: time.Second,
			},
			wantErr:     true,
			errorString: "must be at least 100ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("FOODIES_DB_PATH", "/tmp/x/foodies.db")
	t.Setenv("FOODIES_LOCK_TIMEOUT", "750ms")
	t.Setenv("FOODIES_IMAGE_PREVIEW", "false")
	t.Setenv("FOODIES_HTTP_TIMEOUT", "not-a-duration")

	cfg := Load()
	if cfg.DBPath != "/tmp/x/foodies.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LockTimeout != 750*time.Millisecond {
		t.Errorf("LockTimeout = %v", cfg.LockTimeout)
	}
	if cfg.ImagePreview {
		t.Error("ImagePreview should be false")
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want default for unparseable value", cfg.HTTPTimeout)
	}
	if cfg.ConfigDir() != "/tmp/x" {
		t.Errorf("ConfigDir = %q", cfg.ConfigDir())
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "FOODIES_LOG_LEVEL=debug\nFOODIES_TEST_ONLY=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOODIES_LOG_LEVEL", "warn")
	t.Setenv("FOODIES_TEST_ONLY", "")
	os.Unsetenv("FOODIES_TEST_ONLY")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("FOODIES_LOG_LEVEL"); got != "warn" {
		t.Errorf("FOODIES_LOG_LEVEL = %q, want existing value kept", got)
	}
	if got := os.Getenv("FOODIES_TEST_ONLY"); got != "from-file" {
		t.Errorf("FOODIES_TEST_ONLY = %q, want from-file", got)
	}
}
