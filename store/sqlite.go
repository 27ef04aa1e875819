package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/voxelsplace/voxland/voxel"
)

// SQLiteStore keeps slots as rows of a single table.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", voxel.ErrIO, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w: %v", path, voxel.ErrIO, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS worlds (
			name       TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			size       INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite: %w: %v", voxel.ErrIO, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO worlds(name, data, size, updated_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data=excluded.data, size=excluded.size, updated_at=excluded.updated_at`,
		name, data, len(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w: %v", name, voxel.ErrIO, err)
	}
	return nil
}

func (s *SQLiteStore) Get(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM worlds WHERE name=?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %v", name, voxel.ErrIO, err)
	}
	return data, nil
}

func (s *SQLiteStore) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM worlds WHERE name=?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w: %v", name, voxel.ErrIO, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(name)
	}
	return nil
}

func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM worlds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voxel.ErrIO, err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: %v", voxel.ErrIO, err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", voxel.ErrIO, err)
	}
	return names, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
