// Package config loads runtime settings for the invoiceform binaries.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	invoiceform "github.com/porticus-lab/go-invoice-form"
)

type Config struct {
	Port         string
	Env          string
	ChromePath   string
	NoSandbox    bool
	AutoDownload bool
	Timeout      time.Duration
	PageSize     string
	SessionTTL   time.Duration
	MaxSessions  int
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.ChromePath = getEnv("CHROME_PATH", "")
	cfg.NoSandbox = ParseBool("CHROME_NO_SANDBOX", false)
	cfg.AutoDownload = ParseBool("CHROME_AUTO_DOWNLOAD", false)
	cfg.Timeout = ParseDuration("EXPORT_TIMEOUT", 30*time.Second)
	cfg.PageSize = getEnv("PAGE_SIZE", "A4")
	cfg.SessionTTL = ParseDuration("SESSION_TTL", 24*time.Hour)
	cfg.MaxSessions = ParseInt("MAX_SESSIONS", 10000)
	return cfg
}

// CaptureOptions translates the browser settings into capturer options.
func (c Config) CaptureOptions() []invoiceform.Option {
	opts := []invoiceform.Option{invoiceform.WithTimeout(c.Timeout)}
	if c.ChromePath != "" {
		opts = append(opts, invoiceform.WithChromePath(c.ChromePath))
	}
	if c.NoSandbox {
		opts = append(opts, invoiceform.WithNoSandbox())
	}
	if c.AutoDownload {
		opts = append(opts, invoiceform.WithAutoDownload())
	}
	return opts
}

// PageConfig returns the export page geometry. Unknown sizes fall back
// to A4.
func (c Config) PageConfig() invoiceform.PageConfig {
	pg := invoiceform.DefaultPageConfig()
	if size, ok := invoiceform.PageSizes[strings.ToUpper(strings.TrimSpace(c.PageSize))]; ok {
		pg.Size = size
	} else {
		log.Printf("unknown page size %q, using A4", c.PageSize)
	}
	return pg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

// ParseInt reads an env var as a positive int with default.
func ParseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

// ParseDuration reads an env var as a time.Duration with default.
func ParseDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %s", key, v)
			return def
		}
		return d
	}
	return def
}
