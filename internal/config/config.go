// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"os"
)

// Config holds the relay server configuration loaded from environment variables.
type Config struct {
	SlackBotToken     string
	SlackBotUserID    string // Optional; resolved via auth.test when empty.
	GitHubToken       string
	SpreadsheetID     string
	GoogleCredentials string // Service account JSON path; empty disables the sheet sink.
	ListenAddr        string
	DBPath            string
}

// ExportConfig holds the directory exporter configuration.
type ExportConfig struct {
	SlackBotToken string
	OrgFieldID    string // Custom profile field ID projected as "organization".
	OutputPath    string
}

// Load reads the relay configuration and returns a validated Config.
// Required: PRRELAY_SLACK_BOT_TOKEN, PRRELAY_GITHUB_TOKEN,
// PRRELAY_SPREADSHEET_ID. Optional with defaults: PRRELAY_LISTEN_ADDR
// (127.0.0.1:8080), PRRELAY_DB_PATH (prrelay.db). PRRELAY_GOOGLE_CREDENTIALS
// is optional; without it audit rows go only to the local mirror.
func Load() (*Config, error) {
	slackToken := os.Getenv("PRRELAY_SLACK_BOT_TOKEN")
	if slackToken == "" {
		return nil, errors.New("PRRELAY_SLACK_BOT_TOKEN is required")
	}

	githubToken := os.Getenv("PRRELAY_GITHUB_TOKEN")
	if githubToken == "" {
		return nil, errors.New("PRRELAY_GITHUB_TOKEN is required")
	}

	spreadsheetID := os.Getenv("PRRELAY_SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil, errors.New("PRRELAY_SPREADSHEET_ID is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("PRRELAY_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "prrelay.db"
	if v, ok := os.LookupEnv("PRRELAY_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		SlackBotToken:     slackToken,
		SlackBotUserID:    os.Getenv("PRRELAY_SLACK_BOT_USER_ID"),
		GitHubToken:       githubToken,
		SpreadsheetID:     spreadsheetID,
		GoogleCredentials: os.Getenv("PRRELAY_GOOGLE_CREDENTIALS"),
		ListenAddr:        listenAddr,
		DBPath:            dbPath,
	}, nil
}

// LoadExport reads the exporter configuration.
// Required: PRRELAY_SLACK_BOT_TOKEN. Optional: PRRELAY_ORG_FIELD_ID (empty
// projects an empty organization column), PRRELAY_EXPORT_PATH
// (slack_users.xlsx).
func LoadExport() (*ExportConfig, error) {
	slackToken := os.Getenv("PRRELAY_SLACK_BOT_TOKEN")
	if slackToken == "" {
		return nil, errors.New("PRRELAY_SLACK_BOT_TOKEN is required")
	}

	outputPath := "slack_users.xlsx"
	if v, ok := os.LookupEnv("PRRELAY_EXPORT_PATH"); ok {
		outputPath = v
	}

	return &ExportConfig{
		SlackBotToken: slackToken,
		OrgFieldID:    os.Getenv("PRRELAY_ORG_FIELD_ID"),
		OutputPath:    outputPath,
	}, nil
}
