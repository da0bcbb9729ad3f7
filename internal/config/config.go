package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Auth      AuthConfig      `yaml:"auth"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	Party     PartyConfig     `yaml:"party"`
	Refund    RefundConfig    `yaml:"refund"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FirebaseConfig contains the Firebase project backing Firestore, Cloud
// Messaging and ID-token verification
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// AuthConfig selects how bearer tokens are verified: "firebase" ID tokens in
// production, "local" HS256 tokens for development
type AuthConfig struct {
	Mode      string `yaml:"mode"` // "firebase" or "local"
	JWTSecret string `yaml:"jwt_secret"`
}

// NotifierConfig selects the notification transport
type NotifierConfig struct {
	Mode           string `yaml:"mode"` // "push", "email" or "log"
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// PartyConfig contains party lifecycle policy
type PartyConfig struct {
	ListingFeeSubcredits int64 `yaml:"listing_fee_subcredits"`
	CountUnknownGenders  bool  `yaml:"count_unknown_genders"`
}

// RefundConfig controls the refund retry job
type RefundConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BatchSize   int `yaml:"batch_size"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	RetryPendingRefunds    string `yaml:"retry_pending_refunds"`
	ProcessEndedPartyStats string `yaml:"process_ended_party_stats"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}

	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" && c.Firebase.CredentialsFile == "" {
		c.Firebase.CredentialsFile = val
	}

	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}

	if val := os.Getenv("NOTIFIER_MODE"); val != "" {
		c.Notifier.Mode = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notifier.SendGridAPIKey = val
	}

	if val := os.Getenv("LISTING_FEE_SUBCREDITS"); val != "" {
		if fee, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Party.ListingFeeSubcredits = fee
		}
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project id is required")
	}

	switch c.Auth.Mode {
	case "", "firebase":
		c.Auth.Mode = "firebase"
	case "local":
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("jwt secret must be at least 32 characters in local auth mode")
		}
	default:
		return fmt.Errorf("unknown auth mode: %s", c.Auth.Mode)
	}

	switch c.Notifier.Mode {
	case "", "log":
		c.Notifier.Mode = "log"
	case "push":
	case "email":
		if c.Notifier.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key is required for email notifier")
		}
		if c.Notifier.FromEmail == "" {
			return fmt.Errorf("from email is required for email notifier")
		}
	default:
		return fmt.Errorf("unknown notifier mode: %s", c.Notifier.Mode)
	}

	if c.Party.ListingFeeSubcredits == 0 {
		c.Party.ListingFeeSubcredits = 500 // Default $5.00
	}

	if c.Refund.MaxAttempts == 0 {
		c.Refund.MaxAttempts = 5
	}
	if c.Refund.BatchSize == 0 {
		c.Refund.BatchSize = 100
	}

	if c.Scheduler.RetryPendingRefunds == "" {
		c.Scheduler.RetryPendingRefunds = "0 */10 * * * *" // Every 10 minutes
	}
	if c.Scheduler.ProcessEndedPartyStats == "" {
		c.Scheduler.ProcessEndedPartyStats = "0 0 4 * * *" // 4 AM UTC
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
