package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start main server.
type Profile struct {
	// Remote calendar configuration. An empty token disables the remote
	// source: reads contribute nothing and writes are rejected.
	CalendarToken    string // OAuth access token for the remote calendar API
	CalendarID       string // Calendar to read from and write to
	CalendarBaseURL  string // Override for the calendar API endpoint
	CalendarTimezone string // Timezone attached to created events

	// Milestone notifier configuration
	TelegramBotToken string
	TelegramChatID   int64
	WebhookURL       string

	// Other configurations
	UNIXSock    string
	Mode        string
	DSN         string
	Driver      string
	Version     string
	InstanceURL string
	Addr        string
	Data        string
	Port        int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// HasRemoteCalendar returns true if a remote calendar token is configured.
func (p *Profile) HasRemoteCalendar() bool {
	return p.CalendarToken != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt64 returns environment variable value as int64 or default value.
func getEnvOrDefaultInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads integration configuration from environment variables.
func (p *Profile) FromEnv() {
	p.CalendarToken = getEnvOrDefault("STUDYSTREAK_CALENDAR_TOKEN", "")
	p.CalendarID = getEnvOrDefault("STUDYSTREAK_CALENDAR_ID", "primary")
	p.CalendarBaseURL = getEnvOrDefault("STUDYSTREAK_CALENDAR_BASE_URL", "")
	p.CalendarTimezone = getEnvOrDefault("STUDYSTREAK_CALENDAR_TIMEZONE", "America/Los_Angeles")

	p.TelegramBotToken = getEnvOrDefault("STUDYSTREAK_TELEGRAM_BOT_TOKEN", "")
	p.TelegramChatID = getEnvOrDefaultInt64("STUDYSTREAK_TELEGRAM_CHAT_ID", 0)
	p.WebhookURL = getEnvOrDefault("STUDYSTREAK_WEBHOOK_URL", "")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "studystreak")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/studystreak"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("studystreak_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
