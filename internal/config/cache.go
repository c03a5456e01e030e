package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig tunes the availability grid cache. TTL bounds how stale a
// grid can get if an invalidation is ever missed; WarmDays is how many
// days ahead the background warmer precomputes.
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	WarmDays int
}

// LoadCacheConfig reads the cache settings with sensible defaults.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:  envBool("CACHE_ENABLED", true),
		TTL:      envDur("CACHE_TTL", 5*time.Minute),
		WarmDays: envInt("CACHE_WARM_DAYS", 7),
	}
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}
