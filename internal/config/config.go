// ABOUTME: Configuration loader for the check-in API server
// ABOUTME: Reads settings through viper from environment, .env file and bound flags

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys, also used as environment variable names
const (
	KeyPort               = "PORT"
	KeyDatabasePath       = "DB_PATH"
	KeyCacheTTL           = "CACHE_TTL"
	KeyLogLevel           = "LOG_LEVEL"
	KeyLogFormat          = "LOG_FORMAT"
	KeyLogFile            = "LOG_FILE"
	KeyCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	KeyRateLimitEnabled   = "RATE_LIMIT_ENABLED"
	KeyRateLimitDefault   = "RATE_LIMIT_DEFAULT"
	KeyRateLimitWrite     = "RATE_LIMIT_WRITE"
	KeyLotteryURL         = "LOTTERY_URL"
	KeyUserInfoURL        = "USER_INFO_URL"
	KeyTopupURL           = "TOPUP_URL"
	KeyLoginURL           = "LOGIN_URL"
	KeyUpstreamTimeout    = "UPSTREAM_TIMEOUT"
)

// Upstream defaults
const (
	DefaultLotteryURL  = "https://qd.x666.me/api/lottery/spin"
	DefaultUserInfoURL = "https://qd.x666.me/api/user/info"
	DefaultTopupURL    = "https://x666.me/api/user/topup"
)

type Config struct {
	// Server
	Port               string
	DatabasePath       string
	CacheTTL           time.Duration // token validity cache
	CORSAllowedOrigins []string      // empty allows any origin

	// Logging
	LogLevel  string
	LogFormat string // console, json
	LogFile   string // empty logs to stdout

	// Rate Limiting
	RateLimitEnabled bool
	RateLimitDefault int // Requests per minute for read endpoints
	RateLimitWrite   int // Requests per minute for write endpoints

	// Upstream
	LotteryURL      string
	UserInfoURL     string
	TopupURL        string
	LoginURL        string // empty disables token refresh
	UpstreamTimeout time.Duration
}

// SetDefaults registers every key's default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyDatabasePath, "./data/bohe-sign.db")
	v.SetDefault(KeyCacheTTL, 300)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyCORSAllowedOrigins, "")
	v.SetDefault(KeyRateLimitEnabled, true)
	v.SetDefault(KeyRateLimitDefault, 120)
	v.SetDefault(KeyRateLimitWrite, 10)
	v.SetDefault(KeyLotteryURL, DefaultLotteryURL)
	v.SetDefault(KeyUserInfoURL, DefaultUserInfoURL)
	v.SetDefault(KeyTopupURL, DefaultTopupURL)
	v.SetDefault(KeyLoginURL, "")
	v.SetDefault(KeyUpstreamTimeout, 30)
}

// LoadDotEnv loads variables from an env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load builds the server configuration from v. Environment variables are
// consulted automatically; flags bound with BindPFlag take precedence.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:               strings.TrimSpace(v.GetString(KeyPort)),
		DatabasePath:       strings.TrimSpace(v.GetString(KeyDatabasePath)),
		CacheTTL:           time.Duration(v.GetInt(KeyCacheTTL)) * time.Second,
		CORSAllowedOrigins: splitList(v.GetString(KeyCORSAllowedOrigins)),

		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
		LogFile:   v.GetString(KeyLogFile),

		RateLimitEnabled: v.GetBool(KeyRateLimitEnabled),
		RateLimitDefault: v.GetInt(KeyRateLimitDefault),
		RateLimitWrite:   v.GetInt(KeyRateLimitWrite),

		LotteryURL:      ensureScheme(v.GetString(KeyLotteryURL)),
		UserInfoURL:     ensureScheme(v.GetString(KeyUserInfoURL)),
		TopupURL:        ensureScheme(v.GetString(KeyTopupURL)),
		LoginURL:        ensureScheme(v.GetString(KeyLoginURL)),
		UpstreamTimeout: time.Duration(v.GetInt(KeyUpstreamTimeout)) * time.Second,
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("%s is required", KeyPort)
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%s is required", KeyDatabasePath)
	}
	if cfg.LotteryURL == "" || cfg.TopupURL == "" {
		return nil, fmt.Errorf("%s and %s are required", KeyLotteryURL, KeyTopupURL)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("%s must not be negative", KeyCacheTTL)
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive", KeyUpstreamTimeout)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%s must be console or json, got %q", KeyLogFormat, cfg.LogFormat)
	}

	for _, rl := range []struct {
		name  string
		value int
	}{
		{KeyRateLimitDefault, cfg.RateLimitDefault},
		{KeyRateLimitWrite, cfg.RateLimitWrite},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

// Addr returns the listen address for the server
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
