package todocache

import "time"

// DefaultTTL bounds how stale a cached collection snapshot may be relative to
// the last invalidation.
const DefaultTTL = 60 * time.Second

// Config holds the settings shared by all cache backends.
type Config struct {
	// TTL is the fixed time-to-live applied to every entry.
	TTL time.Duration

	// KeyPrefix namespaces keys when the backend is shared with other
	// applications (Redis). Empty is valid.
	KeyPrefix string

	// Capacity is the maximum number of entries the in-process backend
	// stores before evicting.
	Capacity int

	// NumShards controls in-process cache sharding for concurrent access.
	NumShards int

	// EvictionPercentage is the share of entries evicted when the
	// in-process backend reaches capacity. Must be between 1 and 100.
	EvictionPercentage int
}

// DefaultConfig returns settings sized for a single-collection cache.
func DefaultConfig() Config {
	return Config{
		TTL:                DefaultTTL,
		KeyPrefix:          "todos:",
		Capacity:           1024,
		NumShards:          16,
		EvictionPercentage: 10,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
