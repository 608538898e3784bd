package dbx

import "time"

// InMemoryTarget is the sentinel target for a private in-memory database.
const InMemoryTarget = ":memory:"

const (
	DefaultThreads     = 1
	DefaultMaxAttempts = 3
	DefaultBackoffUnit = time.Second
)

// ConnConfig represents the configuration required for an embedded database connection.
//
// Fields:
//   - Target: filesystem path of the database file, or InMemoryTarget.
//   - Threads: engine worker threads, applied to every acquired handle when greater than 1.
//   - MaxAttempts: how many times a locked file target is opened before giving up.
//   - BackoffUnit: the retry sleep after attempt n is n*n*BackoffUnit.
//   - CacheSelect: start with the select cache active.
type ConnConfig struct {
	Target      string        `validate:"required"`
	Threads     int           `validate:"gte=0"`
	MaxAttempts int           `validate:"gte=0"`
	BackoffUnit time.Duration `validate:"gte=0"`
	CacheSelect bool
}

// IsInMemory reports whether the target is the in-memory sentinel.
func (c ConnConfig) IsInMemory() bool {
	return c.Target == InMemoryTarget
}

// WithDefaults returns a copy where zero values are replaced by the package defaults.
func (c ConnConfig) WithDefaults() ConnConfig {
	if c.Threads == 0 {
		c.Threads = DefaultThreads
	}

	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	if c.BackoffUnit == 0 {
		c.BackoffUnit = DefaultBackoffUnit
	}

	return c
}
