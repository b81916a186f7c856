package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/amenzbedi22/autoweeklyreport/internal/report"
	"github.com/joho/godotenv"
)

// Config holds everything the generator needs. Tokens come from the
// environment only; the rest can be overridden via config.json.
type Config struct {
	GithubToken   string `json:"-"`
	GithubRepo    string `json:"githubRepo"`
	GithubOwner   string `json:"githubOwner"`
	ProjectNumber int    `json:"projectNumber"`

	ReportsDir string `json:"reportsDir"`
	DBPath     string `json:"dbPath"`

	TelegramBotToken string `json:"-"`
	TelegramChatID   int64  `json:"telegramChatId"`
	DiscordBotToken  string `json:"-"`
	DiscordChannelID string `json:"discordChannelId"`
}

// GithubEnabled reports whether activity collection is configured.
func (c *Config) GithubEnabled() bool {
	return c.GithubToken != "" && c.GithubRepo != ""
}

// LoadConfig reads configuration from a .env file (if present), the
// environment, and an optional config.json overlay. No GitHub token is
// required: without one the generator writes the plain skeleton report.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GithubToken:      os.Getenv("GITHUB_TOKEN"),
		GithubRepo:       os.Getenv("GITHUB_REPO"),
		GithubOwner:      os.Getenv("GITHUB_OWNER"),
		ReportsDir:       report.DefaultDir,
		DBPath:           "data/reports.db",
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	// Load overrides from config.json if it exists
	if file, err := os.Open("config.json"); err == nil {
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil {
			slog.Warn("Failed to parse config.json", "error", err)
		}
	}

	if dir := os.Getenv("REPORTS_DIR"); dir != "" {
		cfg.ReportsDir = dir
	}
	// An explicitly empty DB_PATH disables the history store.
	if path, ok := os.LookupEnv("DB_PATH"); ok {
		cfg.DBPath = path
	}

	if pn := os.Getenv("GITHUB_PROJECT_NUMBER"); pn != "" {
		if _, err := fmt.Sscanf(pn, "%d", &cfg.ProjectNumber); err != nil {
			slog.Error("Failed to parse GITHUB_PROJECT_NUMBER", "error", err)
		}
	}

	// Optional configurations for notifiers
	var chatID int64
	if cid := os.Getenv("TELEGRAM_CHAT_ID"); cid != "" {
		if _, err := fmt.Sscanf(cid, "%d", &chatID); err != nil {
			slog.Error("Failed to parse TELEGRAM_CHAT_ID", "error", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.GithubToken != "" && !strings.Contains(cfg.GithubRepo, "/") {
		return nil, fmt.Errorf("GITHUB_REPO must be in 'owner/repo' format, got: %q", cfg.GithubRepo)
	}

	return cfg, nil
}
