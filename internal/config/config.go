// Package config reads the server settings from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	Addr            string
	DBDriver        string
	DatabaseURL     string
	ShutdownTimeout time.Duration

	TLSCert string
	TLSKey  string

	RedisURL      string
	RedisAddr     string
	RedisUser     string
	RedisPassword string

	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodySize    int64
	CORSOrigins    []string
	StrictSecurity bool

	LogLevel  string
	LogFormat string
}

// Load reads .env files (missing ones are ignored) and then the process
// environment. Variables already set in the environment win over .env.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		Addr:          str(getenv, "APP_ADDR", ":3000"),
		DBDriver:      strings.ToLower(str(getenv, "DB_DRIVER", "postgres")),
		DatabaseURL:   getenv("DATABASE_URL"),
		TLSCert:       getenv("TLS_CERT"),
		TLSKey:        getenv("TLS_KEY"),
		RedisURL:      getenv("REDIS_URL"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisUser:     getenv("REDIS_USER"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		LogLevel:      str(getenv, "LOG_LEVEL", "info"),
		LogFormat:     str(getenv, "LOG_FORMAT", "text"),
	}

	var err error
	if c.ShutdownTimeout, err = duration(getenv, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if c.RateLimitRPS, err = float(getenv, "RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}
	if c.RateLimitBurst, err = integer(getenv, "RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	size, err := integer(getenv, "MAX_BODY_SIZE", 1<<20)
	if err != nil {
		return Config{}, err
	}
	c.MaxBodySize = int64(size)
	c.StrictSecurity = getenv("STRICT_SECURITY") == "1"

	if raw := getenv("CORS_ORIGINS"); raw != "" {
		origins := lo.Map(strings.Split(raw, ","), func(o string, _ int) string {
			return strings.TrimSpace(o)
		})
		c.CORSOrigins = lo.Uniq(lo.Compact(origins))
	} else {
		c.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}

	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.DatabaseURL == "" {
			c.DatabaseURL = "file::memory:?cache=shared&_pragma=foreign_keys(1)"
		}
	default:
		return Config{}, fmt.Errorf("DB_DRIVER %q: want postgres or sqlite", c.DBDriver)
	}

	if (c.TLSCert == "") != (c.TLSKey == "") {
		return Config{}, errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return c, nil
}

func (c Config) TLS() bool { return c.TLSCert != "" }

// RedisConfigured reports whether a shared rate limiter can be used.
func (c Config) RedisConfigured() bool { return c.RedisURL != "" || c.RedisAddr != "" }

func str(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func integer(getenv func(string) string, key string, def int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", key, v)
	}
	return n, nil
}

func float(getenv func(string) string, key string, def float64) (float64, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s: want a positive number, got %q", key, v)
	}
	return f, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
