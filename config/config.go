package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// twilioPlaceholderSID is the sample account id shipped in example .env files.
const twilioPlaceholderSID = "ACxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"

type Config struct {
	Port      string
	StaticDir string
	LogLevel  string
	LogFormat string

	Database Database
	SMTP     SMTP
	Twilio   Twilio
	Events   Events
}

// Database selects the store dialect. URL wins over Path when both are set.
type Database struct {
	URL  string
	Path string
}

func (d Database) Postgres() bool { return d.URL != "" }

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports whether enough is set to open an SMTP session.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

type Twilio struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (t Twilio) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.AccountSID != twilioPlaceholderSID
}

type Events struct {
	URL      string
	Exchange string
}

// Load reads envFile (when present) into the process environment and builds
// a Config from it. A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}

	smtpUser := getEnv("SMTP_USER", "")
	cfg := Config{
		Port:      getEnv("PORT", "3000"),
		StaticDir: getEnv("STATIC_DIR", "public"),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		Database: Database{
			URL:  getEnv("DATABASE_URL", ""),
			Path: getEnv("DB_PATH", "restaurant.db"),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     smtpPort,
			User:     smtpUser,
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("FROM_EMAIL", smtpUser),
		},
		Twilio: Twilio{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_PHONE_NUMBER", "+1234567890"),
		},
		Events: Events{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("EVENTS_EXCHANGE", "restaurant_events"),
		},
	}
	return cfg, nil
}

// getEnv returns the value of key, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, raw)
	}
	return n, nil
}
