package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the admin response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled entirely.  Methods lists the HTTP methods to cache (normally
// just GET).  TTL defines the lifetime of cache entries.  Prefix
// namespaces the keys so other applications can share the same Redis.
// MaxBodyBytes caps the size of responses worth caching.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envStr("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "datlich:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}

func envDur(k string, d time.Duration) time.Duration {
	v := envStr(k, "")
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
		return dur
	}
	return d
}
