package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = strings.Repeat("ab", 32)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("ENCRYPTION_KEY", testKey)
}

func TestNewConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Equal(t, "0 9 * * *", cfg.DigestSchedule)
	assert.Len(t, cfg.EncryptionKey, 32)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("RATE_FEED_MARGIN", "0.5")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 0.5, cfg.RateFeedMargin)
}

func TestNewConfigFile(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "advisory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("NOTIFY_EMAIL: desk@example.com\nDIGEST_SCHEDULE: \"@hourly\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "desk@example.com", cfg.NotifyEmail)
	assert.Equal(t, "@hourly", cfg.DigestSchedule)
}

func TestNewConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		value string
		want  string
	}{
		{"jwt secret", "JWT_SECRET", "", "JWT_SECRET is required"},
		{"admin hash", "ADMIN_PASSWORD_HASH", "", "ADMIN_PASSWORD_HASH is required"},
		{"key not hex", "ENCRYPTION_KEY", "zz", "must be hex encoded"},
		{"key too short", "ENCRYPTION_KEY", "abcd", "must be 32 bytes"},
		{"bad ttl", "TOKEN_TTL", "-1h", "TOKEN_TTL must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, tt.value)

			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
