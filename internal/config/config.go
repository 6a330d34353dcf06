package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string
	EncryptionKey     []byte

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	NotifyEmail  string

	DigestSchedule string

	RateFeedURL    string
	RateFeedPath   string
	RateFeedMargin float64
}

var defaults = map[string]interface{}{
	"PORT":             "8080",
	"DB_CONN":          "host=localhost port=5432 user=advisory password=advisory dbname=advisory sslmode=disable",
	"LOG_LEVEL":        "INFO",
	"TOKEN_TTL":        "24h",
	"ADMIN_USERNAME":   "admin",
	"SMTP_HOST":        "smtp.gmail.com",
	"SMTP_PORT":        "587",
	"SENDER_EMAIL":     "noreply@hanvitt.in",
	"NOTIFY_EMAIL":     "help@hanvitt.in",
	"DIGEST_SCHEDULE":  "0 9 * * *",
	"RATE_FEED_URL":    "",
	"RATE_FEED_PATH":   "//Rate",
	"RATE_FEED_MARGIN": 0.0,
}

// NewConfig loads configuration from environment variables, optionally
// layered over the YAML file named by CONFIG_FILE.
func NewConfig() (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              v.GetString("PORT"),
		DBConn:            v.GetString("DB_CONN"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          v.GetDuration("TOKEN_TTL"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPort:          v.GetString("SMTP_PORT"),
		SMTPUsername:      v.GetString("SMTP_USERNAME"),
		SMTPPassword:      v.GetString("SMTP_PASSWORD"),
		SenderEmail:       v.GetString("SENDER_EMAIL"),
		NotifyEmail:       v.GetString("NOTIFY_EMAIL"),
		DigestSchedule:    v.GetString("DIGEST_SCHEDULE"),
		RateFeedURL:       v.GetString("RATE_FEED_URL"),
		RateFeedPath:      v.GetString("RATE_FEED_PATH"),
		RateFeedMargin:    v.GetFloat64("RATE_FEED_MARGIN"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	key, err := hex.DecodeString(strings.TrimSpace(v.GetString("ENCRYPTION_KEY")))
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be 32 bytes, got %d", len(key))
	}
	cfg.EncryptionKey = key

	return cfg, nil
}
