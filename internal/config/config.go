package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	Ledger  LedgerConfig
	Digest  DigestConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LedgerConfig holds settings the consumption ledger depends on.
type LedgerConfig struct {
	Timezone string
}

// DigestConfig holds the nightly digest job settings. The job is disabled
// when WebhookURL is empty.
type DigestConfig struct {
	CronSchedule string
	WebhookURL   string
	WindowDays   int
}

// SheetsConfig contains configuration required to export to Google Sheets.
// Both fields empty disables the spreadsheet export endpoint.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttlHours, err := strconv.Atoi(getenvWithDefault("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be an integer: %w", err)
	}

	digestWindow, err := strconv.Atoi(getenvWithDefault("DIGEST_WINDOW_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("DIGEST_WINDOW_DAYS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "EnergyTracker"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  time.Duration(ttlHours) * time.Hour,
		},
		Ledger: LedgerConfig{
			Timezone: getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 21 * * *"),
			WebhookURL:   os.Getenv("DIGEST_WEBHOOK_URL"),
			WindowDays:   digestWindow,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}

	if c.Ledger.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Digest.WebhookURL != "" {
		if c.Digest.CronSchedule == "" {
			return errors.New("DIGEST_CRON_SCHEDULE must be provided when the digest webhook is set")
		}
		if c.Digest.WindowDays <= 0 {
			return errors.New("DIGEST_WINDOW_DAYS must be positive")
		}
	}

	// Sheets export is optional, but partial configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must be set together")
	}

	return nil
}

// SheetsEnabled reports whether the spreadsheet export destination is set up.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
