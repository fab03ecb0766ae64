package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
api:
  address: "0.0.0.0"
  port: 8080
database:
  path: "pvpc.db"
  data_retention_days: 400
ree:
  url: "https://api.esios.ree.es/archives/70/download_json"
  run_at: "30 20 * * *"
  timeout_seconds: 10
logging:
  console_level: "DEBUG"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if config.Api.Port != 8080 {
			t.Errorf("expected port 8080, got %d", config.Api.Port)
		}
	})

	t.Run("Database", func(t *testing.T) {
		if config.Database.Path != "pvpc.db" {
			t.Errorf("expected path pvpc.db, got %s", config.Database.Path)
		}
		if config.Database.GetDataRetentionDays() != 400 {
			t.Errorf("expected data retention 400, got %d", config.Database.GetDataRetentionDays())
		}
		// Not set in the file, should default.
		if config.Database.GetBackupRetentionDays() != 90 {
			t.Errorf("expected backup retention default 90, got %d", config.Database.GetBackupRetentionDays())
		}
	})

	t.Run("Ree", func(t *testing.T) {
		if config.Ree.RunAt != "30 20 * * *" {
			t.Errorf("expected run_at '30 20 * * *', got %s", config.Ree.RunAt)
		}
		if config.Ree.GetTimeout() != 10*time.Second {
			t.Errorf("expected timeout 10s, got %s", config.Ree.GetTimeout())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		if config.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("expected console level DEBUG, got %s", config.Logging.GetConsoleLevel())
		}
		if config.Logging.GetDbLevel() != slog.LevelInfo {
			t.Errorf("expected db level default INFO, got %s", config.Logging.GetDbLevel())
		}
		if config.Logging.GetDbMaxEntries() != 10000 {
			t.Errorf("expected db max entries default 10000, got %d", config.Logging.GetDbMaxEntries())
		}
	})
}
