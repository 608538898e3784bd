package configx

import (
	"time"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
)

// Config - config interface.
type Config interface {
	GetServiceName() string
	GetVersion() string
	GetEnvironment() string
	GetLoggingConfig() *LoggingConfig
	GetDuckDbConfig() *DuckDbConfig
	IsLocalEnvironment() bool
}

// BaseConfig - app config struct.
// This struct represents the base configuration for the application and is expected to be in the following YAML format:
/*
name: "TestApp"
environment: "development"
version: "1.0"
logging:
  level: "debug"
duckdb:
  target: "./data/analytics.duckdb"
  threads: 4
  maxAttempts: 3
  backoffUnit: 1s
  cacheSelect: true
*/
type BaseConfig struct {
	Name        string         `mapstructure:"name"`
	Environment string         `mapstructure:"environment"`
	Version     string         `mapstructure:"version"`
	Logging     *LoggingConfig `mapstructure:"logging"`
	DuckDb      *DuckDbConfig  `mapstructure:"duckdb"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DuckDbConfig - properties of the duckdb section.
// Target is either a file path or ":memory:".
type DuckDbConfig struct {
	Target      string        `mapstructure:"target"`
	Threads     int           `mapstructure:"threads"`
	MaxAttempts int           `mapstructure:"maxAttempts"`
	BackoffUnit time.Duration `mapstructure:"backoffUnit"`
	CacheSelect bool          `mapstructure:"cacheSelect"`
}

// ToConnConfig converts the duckdb properties into the connection configuration used by dbx managers.
// A missing section falls back to an in-memory target.
func (c *DuckDbConfig) ToConnConfig() dbx.ConnConfig {
	if c == nil {
		return dbx.ConnConfig{Target: dbx.InMemoryTarget}
	}

	return dbx.ConnConfig{
		Target:      c.Target,
		Threads:     c.Threads,
		MaxAttempts: c.MaxAttempts,
		BackoffUnit: c.BackoffUnit,
		CacheSelect: c.CacheSelect,
	}
}

func (cfg BaseConfig) GetServiceName() string {
	return cfg.Name
}

func (cfg BaseConfig) GetVersion() string {
	return cfg.Version
}

func (cfg BaseConfig) GetEnvironment() string {
	return cfg.Environment
}

func (cfg BaseConfig) IsLocalEnvironment() bool {
	return checkIfLocalEnv(cfg.Environment)
}

func (cfg BaseConfig) GetLoggingConfig() *LoggingConfig {
	return cfg.Logging
}

func (cfg BaseConfig) GetDuckDbConfig() *DuckDbConfig {
	return cfg.DuckDb
}
