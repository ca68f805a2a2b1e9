package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Password modes understood by the login check.
const (
	PasswordModePlaintext = "plaintext"
	PasswordModeBcrypt    = "bcrypt"
)

// ServerConfig configures the portfolio HTTP service.
type ServerConfig struct {
	Port string

	// RosterPath points at a YAML roster; empty means the built-in roster.
	RosterPath string
	// PasswordMode selects how submitted passwords are compared with stored ones.
	PasswordMode string

	SessionIdleTTL time.Duration
	MaxImageBytes  int64

	LogLevel string
	// LogFile enables rotated file logging; empty logs to stderr.
	LogFile string

	// Location is the zone "now" is taken in when deriving ages.
	Location *time.Location
}

func LoadServerConfigFromEnv() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:           getenv("PORT", "8080"),
		RosterPath:     os.Getenv("ROSTER_PATH"),
		PasswordMode:   strings.ToLower(getenv("PASSWORD_MODE", PasswordModePlaintext)),
		SessionIdleTTL: 12 * time.Hour,
		MaxImageBytes:  5 << 20,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
		Location:       time.UTC,
	}

	switch cfg.PasswordMode {
	case PasswordModePlaintext, PasswordModeBcrypt:
	default:
		return ServerConfig{}, fmt.Errorf("PASSWORD_MODE must be %q or %q, got %q", PasswordModePlaintext, PasswordModeBcrypt, cfg.PasswordMode)
	}

	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("SESSION_IDLE_TTL must be a duration (e.g. 12h): %w", err)
		}
		if d <= 0 {
			return ServerConfig{}, fmt.Errorf("SESSION_IDLE_TTL must be positive, got %s", d)
		}
		cfg.SessionIdleTTL = d
	}
	if v := os.Getenv("MAX_IMAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("MAX_IMAGE_BYTES must be an integer: %w", err)
		}
		if n <= 0 {
			return ServerConfig{}, fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", n)
		}
		cfg.MaxImageBytes = n
	}
	if v := os.Getenv("TZ_NAME"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("TZ_NAME must be an IANA zone name (e.g. Asia/Kolkata): %w", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
