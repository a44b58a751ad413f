package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kjohnson/ytreport/pkg/errors"
)

func writeCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(`{"installed":{}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func validConfig(t *testing.T) *Config {
	return &Config{
		ChannelID:       "UC123",
		Month:           "09/2025",
		SheetURL:        "https://docs.google.com/spreadsheets/d/abc123-XY_z/edit#gid=0",
		CredentialsFile: writeCredentials(t),
		TokenFile:       "token.json",
		TrendMonths:     12,
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SpreadsheetID != "abc123-XY_z" {
		t.Errorf("spreadsheet ID = %q", cfg.SpreadsheetID)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing channel", func(c *Config) { c.ChannelID = "" }},
		{"missing month", func(c *Config) { c.Month = "" }},
		{"wrong sheet host", func(c *Config) { c.SheetURL = "https://example.com/spreadsheets/d/abc" }},
		{"empty sheet url", func(c *Config) { c.SheetURL = "" }},
		{"missing credentials file", func(c *Config) { c.CredentialsFile = filepath.Join(t.TempDir(), "absent.json") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := err.(*errors.ValidationError); !ok {
				t.Errorf("error is %T, want *errors.ValidationError", err)
			}
		})
	}
}

func TestValidateTrendMonthsFloor(t *testing.T) {
	cfg := validConfig(t)
	cfg.TrendMonths = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TrendMonths != 12 {
		t.Errorf("trend months = %d, want default 12", cfg.TrendMonths)
	}
}

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := ExtractSpreadsheetID("https://docs.google.com/spreadsheets/d/1aBcD_eF-2gH/edit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "1aBcD_eF-2gH" {
		t.Errorf("id = %q", id)
	}

	if _, err := ExtractSpreadsheetID("https://docs.google.com/spreadsheets/"); err == nil {
		t.Error("expected error for URL without /d/ segment")
	}
}
