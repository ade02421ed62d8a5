package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort        = "8080"
	DefaultProfileDir  = "examples/profiles"
	DefaultRunCacheTTL = time.Hour

	DefaultMaxTotalTrades     = 1_000_000
	DefaultRunCacheMaxEntries = 1000
)

// ServerEnv is the API server configuration taken from the environment.
type ServerEnv struct {
	Port           string
	Production     bool
	ProfileDir     string
	RunCacheTTL    time.Duration
	AllowedOrigins []string

	// MaxTotalTrades bounds total_trades per API request.
	MaxTotalTrades     int
	RunCacheMaxEntries int
}

// FromEnv reads API_PORT, API_ENV, PROFILE_DIR, RUN_CACHE_TTL,
// RUN_CACHE_MAX_ENTRIES, MAX_TOTAL_TRADES and CORS_ALLOWED_ORIGINS, falling
// back to defaults.
func FromEnv() ServerEnv {
	return serverEnv(os.Getenv)
}

func serverEnv(getenv func(string) string) ServerEnv {
	env := ServerEnv{
		Port:           DefaultPort,
		Production:     getenv("API_ENV") == "production",
		ProfileDir:     DefaultProfileDir,
		RunCacheTTL:    DefaultRunCacheTTL,
		AllowedOrigins: []string{"*"},

		MaxTotalTrades:     DefaultMaxTotalTrades,
		RunCacheMaxEntries: DefaultRunCacheMaxEntries,
	}
	if v := getenv("API_PORT"); v != "" {
		env.Port = v
	}
	if v := getenv("PROFILE_DIR"); v != "" {
		env.ProfileDir = v
	}
	if abs, err := filepath.Abs(env.ProfileDir); err == nil {
		env.ProfileDir = abs
	}
	if v := getenv("RUN_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			env.RunCacheTTL = ttl
		} else {
			slog.Warn("Ignoring invalid RUN_CACHE_TTL", "value", v)
		}
	}
	env.MaxTotalTrades = positiveInt(getenv, "MAX_TOTAL_TRADES", env.MaxTotalTrades)
	env.RunCacheMaxEntries = positiveInt(getenv, "RUN_CACHE_MAX_ENTRIES", env.RunCacheMaxEntries)
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			env.AllowedOrigins = origins
		}
	}
	return env
}

func positiveInt(getenv func(string) string, key string, def int) int {
	v := getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("Ignoring invalid "+key, "value", v)
		return def
	}
	return n
}
