package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types
	SessionTTL      time.Duration
	PlayerTTL       time.Duration
	GuestProfileTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		SessionTTL:      24 * time.Hour,
		PlayerTTL:       24 * time.Hour,
		GuestProfileTTL: 24 * time.Hour,
	}
}
