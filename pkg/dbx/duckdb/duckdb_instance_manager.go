package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
	"github.com/marcodd23/go-duckdb-core/pkg/logx"
	"github.com/marcodd23/go-duckdb-core/pkg/validator"
	"github.com/pkg/errors"
)

var _ dbx.InstanceManager = (*DuckDB)(nil)

//###################################
//#     DuckDB - dbx manager.       #
//###################################

// DuckDB - dbx manager for an embedded DuckDB database.
// It Implements dbx.InstanceManager.
//
// File targets are opened on every call and closed before the call returns, so other processes can
// use the file between calls. In-memory targets keep one handle for the whole life of the manager.
type DuckDB struct {
	mu     sync.Mutex
	dbConf dbx.ConnConfig
	handle *duckConn
	closed bool

	open   openFunc
	sleep  sleepFunc
	logger logx.Logger

	cacheMu        sync.Mutex
	cachingEnabled bool
	cache          *resultCache
}

type openFunc func(ctx context.Context, dsn string) (*sql.DB, error)

type sleepFunc func(ctx context.Context, d time.Duration) error

// Option customises a DuckDB manager.
type Option func(*DuckDB)

// WithLogger sets the logger used for retry, release and cache notices.
// Defaults to logx.GetLogger().
func WithLogger(l logx.Logger) Option {
	return func(m *DuckDB) {
		m.logger = l
	}
}

func withOpener(open openFunc) Option {
	return func(m *DuckDB) {
		m.open = open
	}
}

func withSleeper(sleep sleepFunc) Option {
	return func(m *DuckDB) {
		m.sleep = sleep
	}
}

// NewDuckDbManager validates the configuration and creates the manager.
// For an in-memory target the single persistent handle is opened here; file targets are opened lazily.
func NewDuckDbManager(ctx context.Context, dbConf dbx.ConnConfig, opts ...Option) (*DuckDB, error) {
	if err := validator.NewValidator().Validate(dbConf); err != nil {
		return nil, errors.Wrap(err, "invalid duckdb connection config")
	}

	m := &DuckDB{
		dbConf: dbConf.WithDefaults(),
		open:   openDuckDb,
		sleep:  sleepContext,
		logger: logx.GetLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.dbConf.IsInMemory() {
		h, err := m.openHandle(ctx)
		if err != nil {
			return nil, errorx.NewDatabaseErrorWrapper(err, "error opening in-memory database")
		}

		if err := m.applyThreads(ctx, h); err != nil {
			m.closeQuietly(ctx, h)
			return nil, err
		}

		m.handle = h
	}

	if m.dbConf.CacheSelect {
		m.ActivateSelectCache()
	}

	m.logger.LogInfo(ctx, fmt.Sprintf("Created new DuckDB InstanceManager: TARGET=%s, THREADS=%d, MAX_ATTEMPTS=%d",
		m.dbConf.Target,
		m.dbConf.Threads,
		m.dbConf.MaxAttempts))

	return m, nil
}

// SetupDuckDbManager - setup the DuckDB manager, exiting the process if it cannot be created.
func SetupDuckDbManager(ctx context.Context, dbConf dbx.ConnConfig, opts ...Option) *DuckDB {
	m, err := NewDuckDbManager(ctx, dbConf, opts...)
	if err != nil {
		logx.GetLogger().LogFatal(ctx, "DuckDB manager setup error", err)
	}

	return m
}

// GetConnectionConfig - get the effective connection config, defaults applied.
func (m *DuckDB) GetConnectionConfig() dbx.ConnConfig {
	return m.dbConf
}

// Close releases the persistent in-memory handle. Later calls fail with a DatabaseError.
// For file targets there is nothing open between calls, so Close only marks the manager closed.
func (m *DuckDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.handle == nil {
		return nil
	}

	h := m.handle
	m.handle = nil

	if err := h.close(); err != nil {
		return errorx.NewDatabaseErrorWrapper(err, "error closing database %s", m.dbConf.Target)
	}

	m.logger.LogInfo(context.TODO(), "DuckDB in-memory database successfully closed!")

	return nil
}
