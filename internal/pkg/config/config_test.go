package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.AppName != "StorWatch" {
		t.Errorf("AppName = %q, want StorWatch", cfg.AppName)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}

	st := cfg.Monitoring.Storage
	if !st.Enabled || st.CheckInterval != 1 || st.HistoryWindow != 300 {
		t.Errorf("storage defaults = %+v", st)
	}
	if st.WarningThreshold != 80 || st.CriticalThreshold != 95 {
		t.Errorf("storage thresholds = %v/%v, want 80/95", st.WarningThreshold, st.CriticalThreshold)
	}

	pw := cfg.Monitoring.Power
	if !pw.Enabled || pw.CheckInterval != 5 || pw.HistoryWindow != 600 {
		t.Errorf("power defaults = %+v", pw)
	}
	if pw.WarningThreshold != 20 || pw.CriticalThreshold != 10 {
		t.Errorf("power thresholds = %v/%v, want 20/10", pw.WarningThreshold, pw.CriticalThreshold)
	}
}

func TestLoadConfig(t *testing.T) {
	content := `
app_name: TestAgent
server:
  port: 9090
  host: 127.0.0.1
monitoring:
  storage:
    enabled: true
    check_interval: 2
    history_window_seconds: 120
    warning_threshold: 70
    critical_threshold: 90
  power:
    enabled: false
    check_interval: 30
logs:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AppName != "TestAgent" {
		t.Errorf("AppName = %q, want TestAgent", cfg.AppName)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Monitoring.Storage.CheckInterval != 2 {
		t.Errorf("storage check_interval = %d, want 2", cfg.Monitoring.Storage.CheckInterval)
	}
	if cfg.Monitoring.Storage.HistoryWindow != 120 {
		t.Errorf("storage history window = %d, want 120", cfg.Monitoring.Storage.HistoryWindow)
	}
	if cfg.Monitoring.Power.Enabled {
		t.Error("power monitoring should be disabled")
	}
	if cfg.Logs.Level != "debug" {
		t.Errorf("Logs.Level = %q, want debug", cfg.Logs.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := GetDefaultConfig()
	cfg.Server.Port = 1234

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Server.Port != 1234 {
		t.Errorf("Server.Port = %d, want 1234", loaded.Server.Port)
	}
}

func TestSaveConfigBacksUpExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := GetDefaultConfig()

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("first SaveConfig: %v", err)
	}

	cfg.Server.Port = 4321
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("second SaveConfig: %v", err)
	}

	backup, err := LoadConfig(path + ".bak")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if backup.Server.Port != 8080 {
		t.Errorf("backup Server.Port = %d, want original 8080", backup.Server.Port)
	}
}
