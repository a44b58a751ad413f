package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kjohnson/ytreport/pkg/errors"
)

// sheetURLPrefix is the only spreadsheet host the report writes to.
const sheetURLPrefix = "https://docs.google.com/spreadsheets/d/"

var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

type Config struct {
	ChannelID     string
	Month         string // MM/YYYY; range-validated by the date resolver
	SheetURL      string
	SpreadsheetID string

	CredentialsFile string
	TokenFile       string

	TrendMonths int
	PacingDelay time.Duration

	Redis   RedisConfig
	Logging LoggingConfig
}

// RedisConfig enables the closed-month snapshot cache when Host is set.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

// Flags carries the CLI flag values that override environment settings.
type Flags struct {
	ChannelID   string
	Month       string
	SheetURL    string
	Credentials string
	Debug       bool
}

func Load(flags Flags) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ChannelID:       getEnv("YT_CHANNEL_ID", ""),
		Month:           getEnv("YT_REPORT_MONTH", ""),
		SheetURL:        getEnv("YT_SHEET_URL", ""),
		CredentialsFile: getEnv("CREDENTIALS_FILE", "credentials.json"),
		TokenFile:       getEnv("TOKEN_FILE", "token.json"),
		TrendMonths:     getEnvInt("TREND_MONTHS", 12),
		PacingDelay:     time.Duration(getEnvInt("API_QUOTA_DELAY_MS", 1000)) * time.Millisecond,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "youtube_analytics.log"),
		},
	}

	if flags.ChannelID != "" {
		cfg.ChannelID = flags.ChannelID
	}
	if flags.Month != "" {
		cfg.Month = flags.Month
	}
	if flags.SheetURL != "" {
		cfg.SheetURL = flags.SheetURL
	}
	if flags.Credentials != "" {
		cfg.CredentialsFile = flags.Credentials
	}
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks everything that can fail before the first remote call.
func (c *Config) Validate() error {
	if c.ChannelID == "" {
		return errors.NewValidationError("channel_id is required", "channel_id", c.ChannelID)
	}
	if c.Month == "" {
		return errors.NewValidationError("month is required (MM/YYYY)", "month", c.Month)
	}
	if !strings.HasPrefix(c.SheetURL, sheetURLPrefix) {
		return errors.NewValidationError("sheet_url must be a valid Google Sheets URL", "sheet_url", c.SheetURL)
	}
	id, err := ExtractSpreadsheetID(c.SheetURL)
	if err != nil {
		return err
	}
	c.SpreadsheetID = id
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		return errors.NewValidationError("credentials file not found", "credentials", c.CredentialsFile)
	}
	if c.TrendMonths < 1 {
		c.TrendMonths = 12
	}
	return nil
}

// ExtractSpreadsheetID pulls the document ID out of the /d/<id> path
// segment of a sheet URL.
func ExtractSpreadsheetID(sheetURL string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(sheetURL)
	if m == nil {
		return "", errors.NewValidationError("could not extract spreadsheet ID from URL", "sheet_url", sheetURL)
	}
	return m[1], nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
