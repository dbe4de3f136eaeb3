// Package store provides the SQLite-backed key/value file that holds the
// persisted folder collection.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/spendfold/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// FoldersKey is the key under which the folder collection is stored.
const FoldersKey = "expenseFolders"

// DB is a small key/value store on top of SQLite. Every write bumps the
// key's revision so readers in other processes can detect changes cheaply.
type DB struct {
	db   *sql.DB
	path string
}

// Entry is one stored value with its bookkeeping columns.
type Entry struct {
	Key       string
	Value     string
	Revision  int64
	UpdatedAt time.Time
}

// Open opens or creates the state database at the given path and applies
// pending migrations.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the entry stored under key. The boolean is false when the key
// has never been written.
func (d *DB) Get(key string) (Entry, bool, error) {
	var e Entry
	var updated string
	err := d.db.QueryRow(`SELECT key, value, revision, updated_at FROM kv WHERE key = ?`, key).
		Scan(&e.Key, &e.Value, &e.Revision, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading %s: %w", key, err)
	}
	e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return e, true, nil
}

// Put stores value under key and returns the new revision.
func (d *DB) Put(key, value string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var rev int64
	err := d.db.QueryRow(`INSERT INTO kv (key, value, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			revision = kv.revision + 1,
			updated_at = excluded.updated_at
		RETURNING revision`, key, value, now).Scan(&rev)
	if err != nil {
		return 0, fmt.Errorf("writing %s: %w", key, err)
	}
	return rev, nil
}

// Revision returns the current revision of key, or 0 if it was never written.
func (d *DB) Revision(key string) (int64, error) {
	var rev int64
	err := d.db.QueryRow(`SELECT revision FROM kv WHERE key = ?`, key).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading revision of %s: %w", key, err)
	}
	return rev, nil
}

// LoadFolders reads the persisted folder collection. A missing key yields an
// empty collection.
func (d *DB) LoadFolders() ([]model.Folder, error) {
	e, ok, err := d.Get(FoldersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Folder{}, nil
	}
	var folders []model.Folder
	if err := json.Unmarshal([]byte(e.Value), &folders); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", FoldersKey, err)
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	return folders, nil
}

// SaveFolders writes the whole folder collection as one JSON value.
func (d *DB) SaveFolders(folders []model.Folder) error {
	if folders == nil {
		folders = []model.Folder{}
	}
	b, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", FoldersKey, err)
	}
	if _, err := d.Put(FoldersKey, string(b)); err != nil {
		return err
	}
	return nil
}
