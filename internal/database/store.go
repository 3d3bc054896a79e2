// Package database provides the shared store handle and schema for the
// opsbrain backend.
//
// The handle degrades gracefully: when no connection string is configured,
// or the store cannot be reached, reads come back empty and writes no-op so
// local tooling can run without a live database.
package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/steadycalls/opsbrain/internal/logger"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum connection lifetime.
	DefaultConnMaxLifetime = 5 * time.Minute
	// DefaultPingTimeout bounds the connection check on first acquisition.
	DefaultPingTimeout = 5 * time.Second
)

// ErrUnavailable reports that the store has no usable connection.
var ErrUnavailable = errors.New("store unavailable")

// Store is the explicitly constructed, shared database handle. The
// connection is opened lazily on first acquisition and cached for the life
// of the process; construction is re-attempted on later calls only while no
// connection has ever been established.
type Store struct {
	mu     sync.Mutex
	db     *sqlx.DB
	url    string
	log    logger.Logger
	warned bool
}

// New creates a store for the given connection string. An empty string is
// valid and yields a permanently unavailable store.
func New(url string, log logger.Logger) *Store {
	return &Store{url: url, log: log}
}

// NewWithDB wraps an existing database handle. Used by tests to inject a
// sqlmock-backed connection.
func NewWithDB(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres"), log: log}
}

// NewUnavailable creates a store that is deterministically unavailable, so
// the degraded mode can be exercised directly.
func NewUnavailable(log logger.Logger) *Store {
	return New("", log)
}

// Acquire returns the shared handle, establishing it on first use. The
// second return value reports availability; callers treat false as "empty
// read / no-op write", never as an error. Unavailability is logged once.
func (s *Store) Acquire(ctx context.Context) (*sqlx.DB, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, true
	}

	if s.url == "" {
		s.warnOnce("no database URL configured, store unavailable", nil)
		return nil, false
	}

	db, err := sqlx.Open("postgres", s.url)
	if err != nil {
		s.warnOnce("failed to open database", err)
		return nil, false
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		_ = db.Close()
		s.warnOnce("failed to ping database, store unavailable", pingErr)
		return nil, false
	}

	s.db = db
	s.log.Info("database connection established")
	return s.db, true
}

// Available reports whether a connection can be acquired.
func (s *Store) Available(ctx context.Context) bool {
	_, ok := s.Acquire(ctx)
	return ok
}

// Close releases the cached connection, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) warnOnce(msg string, err error) {
	if s.warned {
		return
	}
	s.warned = true
	if err != nil {
		s.log.Warn(msg, logger.Error(err))
		return
	}
	s.log.Warn(msg)
}
