package config

import (
	"fmt"
	"os"

	"StorWatch/internal/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	AppName       string              `yaml:"app_name"`
	Server        ServerConfig        `yaml:"server"`
	Agent         AgentConfig         `yaml:"agent"`
	Monitoring    MonitoringConfig    `yaml:"monitoring"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logs          LogsConfig          `yaml:"logs"`
	API           API                 `yaml:"api"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	ReadTimeout    int    `yaml:"read_timeout"`
	WriteTimeout   int    `yaml:"write_timeout"`
	IdleTimeout    int    `yaml:"idle_timeout"`
	MaxHeaderBytes int    `yaml:"max_header_bytes"`
}

// AgentConfig holds the agent related configuration
type AgentConfig struct {
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// StorageMonitoringConfig holds disk I/O monitoring configuration
type StorageMonitoringConfig struct {
	Enabled           bool    `yaml:"enabled"`
	CheckInterval     int     `yaml:"check_interval"`
	HistoryWindow     int     `yaml:"history_window_seconds"`
	WarningThreshold  float64 `yaml:"warning_threshold"`  // busy percent
	CriticalThreshold float64 `yaml:"critical_threshold"` // busy percent
}

// PowerMonitoringConfig holds battery/power monitoring configuration
type PowerMonitoringConfig struct {
	Enabled           bool    `yaml:"enabled"`
	CheckInterval     int     `yaml:"check_interval"`
	HistoryWindow     int     `yaml:"history_window_seconds"`
	WarningThreshold  float64 `yaml:"warning_threshold"`  // charge percent
	CriticalThreshold float64 `yaml:"critical_threshold"` // charge percent
}

// MonitoringConfig contains configuration for monitoring
type MonitoringConfig struct {
	Storage StorageMonitoringConfig `yaml:"storage"`
	Power   PowerMonitoringConfig   `yaml:"power"`
}

// NotificationsConfig holds notification related configuration
type NotificationsConfig struct {
	Throttling ThrottlingConfig `yaml:"throttling"`
	Email      EmailConfig      `yaml:"email"`
}

// ThrottlingConfig holds throttling configuration for notifications
type ThrottlingConfig struct {
	Enabled           bool `yaml:"enabled"`
	CooldownPeriod    int  `yaml:"cooldown_period"`
	MaxWarningsPerDay int  `yaml:"max_warnings_per_day"`
	AggregationPeriod int  `yaml:"aggregation_period"`
	CriticalThreshold int  `yaml:"critical_threshold"`
}

// EmailConfig holds email notification configuration
type EmailConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Method          string        `yaml:"method"` // "smtp" or "mutt"
	SMTPServer      string        `yaml:"smtp_server"`
	SMTPPort        int           `yaml:"smtp_port"`
	UseTLS          bool          `yaml:"use_tls"`
	UseSSL          bool          `yaml:"use_ssl"`
	UseLoginAuth    bool          `yaml:"use_login_auth"`
	Timeout         int           `yaml:"timeout"`
	MuttPath        string        `yaml:"mutt_path"`
	SenderEmails    []SenderEmail `yaml:"sender_emails"`
	RecipientEmails []string      `yaml:"recipient_emails"`
	RetryCount      int           `yaml:"retry_count"`
	RetryInterval   int           `yaml:"retry_interval"`
}

// SenderEmail represents an email sender with credentials
type SenderEmail struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	RealName string `yaml:"real_name"`
}

// LogsConfig holds logging configuration
type LogsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
	Stdout   bool   `yaml:"stdout"`
}

// LoadConfig loads the configuration from the specified file path
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to the specified file path.
// An existing file is first copied to a .bak sibling.
func SaveConfig(cfg *Config, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := utils.CopyFile(filePath, filePath+".bak"); err != nil {
			return fmt.Errorf("failed to back up existing config: %w", err)
		}
	}

	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		AppName: "StorWatch",
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Agent: AgentConfig{
			Auth: AuthConfig{
				User: "storwatch",
				Pass: "storwatch",
			},
		},
		Monitoring: MonitoringConfig{
			Storage: StorageMonitoringConfig{
				Enabled:           true,
				CheckInterval:     1,
				HistoryWindow:     300,
				WarningThreshold:  80.0,
				CriticalThreshold: 95.0,
			},
			Power: PowerMonitoringConfig{
				Enabled:           true,
				CheckInterval:     5,
				HistoryWindow:     600,
				WarningThreshold:  20.0,
				CriticalThreshold: 10.0,
			},
		},
		Notifications: NotificationsConfig{
			Throttling: ThrottlingConfig{
				Enabled:        true,
				CooldownPeriod: 300,
			},
			Email: EmailConfig{
				Enabled:       false,
				Method:        "smtp",
				SMTPPort:      587,
				UseTLS:        true,
				Timeout:       10,
				MuttPath:      "/usr/bin/mutt",
				RetryCount:    3,
				RetryInterval: 5,
			},
		},
		Logs: LogsConfig{
			Enabled:  true,
			Level:    "info",
			FilePath: "logs",
			Format:   "json",
			Stdout:   true,
		},
	}
}
