package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath returns the database used when storage.sqlite.path is empty.
func DefaultSQLitePath() string {
	return filepath.Join(Dir(), "storage.db")
}

// SQLiteBackend stores one scope in its own kv table.
type SQLiteBackend struct {
	db    *sqlx.DB
	table string
}

// NewSQLiteBackend opens (creating if needed) the database at path and
// ensures the table for scope exists.
func NewSQLiteBackend(path string, scope Scope) (*SQLiteBackend, error) {
	if path == "" {
		path = DefaultSQLitePath()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	// A single connection keeps ":memory:" databases shared and avoids
	// SQLITE_BUSY between writers.
	db.SetMaxOpenConns(1)

	b := &SQLiteBackend{db: db, table: "kv_" + string(scope)}
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`, b.table)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "creating table %s", b.table)
	}
	return b, nil
}

func (b *SQLiteBackend) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.Get(&value, fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, b.table), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "selecting %q", key)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Set(key string, value []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, b.table)
	_, err := b.db.Exec(query, key, value, time.Now().UnixMilli())
	return errors.Wrapf(err, "upserting %q", key)
}

func (b *SQLiteBackend) Remove(key string) error {
	_, err := b.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, b.table), key)
	return errors.Wrapf(err, "deleting %q", key)
}

func (b *SQLiteBackend) Clear() error {
	_, err := b.db.Exec(fmt.Sprintf(`DELETE FROM %s`, b.table))
	return errors.Wrapf(err, "clearing %s", b.table)
}

func (b *SQLiteBackend) Keys() ([]string, error) {
	var keys []string
	if err := b.db.Select(&keys, fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, b.table)); err != nil {
		return nil, errors.Wrapf(err, "listing %s", b.table)
	}
	return keys, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
