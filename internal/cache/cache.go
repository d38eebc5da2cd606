// Package cache provides local durability: the full request collection and
// the reminder sent-log are persisted as JSON blobs in a SQLite key-value
// table under two fixed keys. The cache mirrors the remote store's state; it
// is not the source of truth and may be cleared independently.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
)

// Fixed keys of the kv table.
const (
	KeyRequests = "solicitudes"
	KeySentLog  = "sent_notifications_log"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// DB wraps a sql.DB with cache-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// get reads the raw value for key; a missing key yields (nil, nil).
func (db *DB) get(key string) ([]byte, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperr.ErrCache, key, err)
	}
	return []byte(value), nil
}

// put writes the raw value for key, replacing any previous value.
func (db *DB) put(key string, value []byte) error {
	_, err := db.conn.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", apperr.ErrCache, key, err)
	}
	return nil
}

// Requests loads the cached request collection; an absent key is an empty
// collection, never an error.
func (db *DB) Requests() ([]models.Request, error) {
	raw, err := db.get(KeyRequests)
	if err != nil || raw == nil {
		return nil, err
	}
	var requests []models.Request
	if err := json.Unmarshal(raw, &requests); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperr.ErrCache, KeyRequests, err)
	}
	return requests, nil
}

// SaveRequests rewrites the cached collection in one write.
func (db *DB) SaveRequests(requests []models.Request) error {
	if requests == nil {
		requests = []models.Request{}
	}
	raw, err := json.Marshal(requests)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", apperr.ErrCache, KeyRequests, err)
	}
	return db.put(KeyRequests, raw)
}

// SentLog loads the reminder sent-id set; absent means empty.
func (db *DB) SentLog() ([]string, error) {
	raw, err := db.get(KeySentLog)
	if err != nil || raw == nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperr.ErrCache, KeySentLog, err)
	}
	return ids, nil
}

// SaveSentLog rewrites the sent-id set in one write.
func (db *DB) SaveSentLog(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", apperr.ErrCache, KeySentLog, err)
	}
	return db.put(KeySentLog, raw)
}

// ClearSentLog drops the sent-log key (full data-clear action).
func (db *DB) ClearSentLog() error {
	if _, err := db.conn.Exec(`DELETE FROM kv WHERE key = ?`, KeySentLog); err != nil {
		return fmt.Errorf("%w: clear %s: %v", apperr.ErrCache, KeySentLog, err)
	}
	return nil
}

// SentLogStore adapts the cache to the reminder engine's SentLog interface.
type SentLogStore struct {
	DB *DB
}

// Load implements reminder.SentLog.
func (s SentLogStore) Load() ([]string, error) { return s.DB.SentLog() }

// Save implements reminder.SentLog.
func (s SentLogStore) Save(ids []string) error { return s.DB.SaveSentLog(ids) }
