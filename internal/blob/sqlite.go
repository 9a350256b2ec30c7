package blob

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key         TEXT PRIMARY KEY,
	data        BLOB NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct

// SQLiteStore keeps one row per blob key in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewSQLiteStore opens a SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create db dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// #endregion constructor

// #region close

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// #endregion close

// #region get

// Get reads the blob stored under key.
func (s *SQLiteStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return data, nil
}

// #endregion get

// #region put

// Put replaces the blob under key in a single statement.
func (s *SQLiteStore) Put(key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

// #endregion put

// #region list-keys

// KeyInfo describes one stored blob.
type KeyInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Keys lists every stored blob, most recently written first.
func (s *SQLiteStore) Keys() ([]KeyInfo, error) {
	rows, err := s.db.Query(`SELECT key, length(data), updated_at FROM blobs ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var infos []KeyInfo
	for rows.Next() {
		var info KeyInfo
		var updated string
		if err := rows.Scan(&info.Key, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// #endregion list-keys
