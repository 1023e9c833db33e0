package config

import "time"

// ResponseCacheConfig defines settings for the Redis response cache
// middleware that sits in front of the read-only summary endpoints.
// When Enabled is false or no Redis client is available, caching is
// disabled and requests pass straight through.
type ResponseCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadResponseCacheConfig reads environment variables to build a
// ResponseCacheConfig. Defaults keep cached summaries noticeably
// fresher than the snapshot TTL so the dashboard never lags a mutation
// by more than a few seconds.
func LoadResponseCacheConfig() ResponseCacheConfig {
	return ResponseCacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "5s")),
		Prefix:  getenv("CACHE_PREFIX", "inv"),
	}
}
