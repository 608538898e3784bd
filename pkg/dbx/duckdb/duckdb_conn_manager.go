package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	duckdbdriver "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
	"github.com/pkg/errors"
)

// duckConn is an exclusive handle: a dedicated *sql.Conn and the *sql.DB owning the database instance.
type duckConn struct {
	id   string
	db   *sql.DB
	conn *sql.Conn
}

func (h *duckConn) close() error {
	connErr := h.conn.Close()
	dbErr := h.db.Close()

	if connErr != nil {
		return connErr
	}

	return dbErr
}

func openDuckDb(ctx context.Context, dsn string) (*sql.DB, error) {
	connector, err := duckdbdriver.NewConnector(dsn, nil)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoffDelay is the pause after the given failed attempt (1-based).
func backoffDelay(attempt int, unit time.Duration) time.Duration {
	return time.Duration(attempt*attempt) * unit
}

func (m *DuckDB) dsn() string {
	if m.dbConf.IsInMemory() {
		return ""
	}

	return m.dbConf.Target
}

func (m *DuckDB) openHandle(ctx context.Context) (*duckConn, error) {
	db, err := m.open(ctx, m.dsn())
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &duckConn{id: uuid.NewString(), db: db, conn: conn}, nil
}

func (m *DuckDB) applyThreads(ctx context.Context, h *duckConn) error {
	if m.dbConf.Threads <= 1 {
		return nil
	}

	pragma := fmt.Sprintf("PRAGMA threads=%d", m.dbConf.Threads)
	if _, err := h.conn.ExecContext(ctx, pragma); err != nil {
		return errorx.NewDatabaseErrorWrapper(err, "error applying '%s'", pragma)
	}

	return nil
}

func (m *DuckDB) closeQuietly(ctx context.Context, h *duckConn) {
	if err := h.close(); err != nil {
		m.logger.LogWarning(ctx, fmt.Sprintf("error closing handle %s to %s", h.id, m.dbConf.Target), err)
	}
}

// acquire opens the file target, retrying up to MaxAttempts times.
// The pause after failed attempt n is n*n*BackoffUnit; there is no pause after the last attempt.
func (m *DuckDB) acquire(ctx context.Context) (*duckConn, error) {
	var lastErr error

	for attempt := 1; attempt <= m.dbConf.MaxAttempts; attempt++ {
		h, err := m.openHandle(ctx)
		if err == nil {
			if err := m.applyThreads(ctx, h); err != nil {
				m.closeQuietly(ctx, h)
				return nil, err
			}

			m.logger.LogDebug(ctx, fmt.Sprintf("Acquired handle %s to %s", h.id, m.dbConf.Target))

			return h, nil
		}

		lastErr = err
		if attempt == m.dbConf.MaxAttempts {
			break
		}

		m.logger.LogInfo(ctx, fmt.Sprintf("Connection to %s locked, will try again", m.dbConf.Target))
		if attempt == m.dbConf.MaxAttempts-1 {
			m.logger.LogInfo(ctx, "Last attempt")
		}

		if err := m.sleep(ctx, backoffDelay(attempt, m.dbConf.BackoffUnit)); err != nil {
			return nil, errors.Wrapf(err, "waiting to reconnect to %s", m.dbConf.Target)
		}
	}

	m.logger.LogWarning(ctx, "Database locked", lastErr)

	return nil, errorx.NewContentionError(lastErr, m.dbConf.Target, m.dbConf.MaxAttempts)
}

// release closes the live file handle and clears the reference.
func (m *DuckDB) release(ctx context.Context) error {
	h := m.handle
	m.handle = nil

	if h == nil {
		return nil
	}

	if err := h.close(); err != nil {
		return errorx.NewDatabaseErrorWrapper(err, "error releasing handle %s to %s", h.id, m.dbConf.Target)
	}

	m.logger.LogDebug(ctx, fmt.Sprintf("Released handle %s to %s", h.id, m.dbConf.Target))

	return nil
}

// withConn runs task against an exclusive connection.
//
// Callers are serialised, so at most one handle is live per manager. A file handle is acquired for
// the task and released exactly once on every exit path, panics included; a release failure is
// reported only when the task itself succeeded. The in-memory handle is borrowed and never released here.
func (m *DuckDB) withConn(ctx context.Context, task func(ctx context.Context, conn *sql.Conn) error) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errorx.NewDatabaseError("duckdb manager for %s is closed", m.dbConf.Target)
	}

	if m.dbConf.IsInMemory() {
		return task(ctx, m.handle.conn)
	}

	h, err := m.acquire(ctx)
	if err != nil {
		return err
	}
	m.handle = h

	defer func() {
		if releaseErr := m.release(ctx); releaseErr != nil {
			if err == nil {
				err = releaseErr
				return
			}
			m.logger.LogWarning(ctx, "handle release failed after task error", releaseErr)
		}
	}()

	return task(ctx, h.conn)
}
