package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8080" {
			t.Errorf("expected base URL http://localhost:8080, got %s", config.API.BaseURL)
		}

		if config.Session.Path != "./musicctl.db" {
			t.Errorf("expected session path ./musicctl.db, got %s", config.Session.Path)
		}

		if config.Client.LoadDelayMS != 1000 {
			t.Errorf("expected load delay 1000ms, got %d", config.Client.LoadDelayMS)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.BaseURL != defaultConfig.API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://records.example.com"

[session]
path = "/custom/session.db"

[client]
load_delay_ms = 250
requests_per_second = 2.5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://records.example.com" {
			t.Errorf("expected base URL http://records.example.com, got %s", config.API.BaseURL)
		}

		if config.Session.Path != "/custom/session.db" {
			t.Errorf("expected session path /custom/session.db, got %s", config.Session.Path)
		}

		if config.Client.RequestsPerSecond != 2.5 {
			t.Errorf("expected 2.5 requests per second, got %v", config.Client.RequestsPerSecond)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
