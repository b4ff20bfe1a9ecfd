package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const sqliteFileName = "studybuddy.sqlite"

// SQLiteBlobStore keeps blobs in a single-table SQLite database.
type SQLiteBlobStore struct {
	db   *sql.DB
	path string
}

func OpenSQLiteBlobStore(ctx context.Context, dir string) (*SQLiteBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "sqlite: create data dir")
	}
	path := filepath.Join(dir, sqliteFileName)
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite: open")
	}
	// WAL gives one writer + many readers (CLI, TUI and server may share a dir).
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "sqlite: %s", p)
		}
	}
	if err := migrateBlobs(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteBlobStore{db: db, path: path}, nil
}

func migrateBlobs(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS blobs (
			k TEXT PRIMARY KEY,
			v BLOB NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return errors.Wrap(err, "sqlite: migrate")
		}
	}
	return nil
}

func (s *SQLiteBlobStore) Path() string { return s.path }

func (s *SQLiteBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT v FROM blobs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "sqlite: get %s", key)
	}
	return v, true, nil
}

func (s *SQLiteBlobStore) Put(ctx context.Context, key string, val []byte) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "sqlite: begin")
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO blobs(k, v, updated_at_unixms) VALUES(?, ?, ?)`, key, val, nowMs); err != nil {
		return errors.Wrapf(err, "sqlite: put %s", key)
	}
	return errors.Wrap(tx.Commit(), "sqlite: commit")
}

func (s *SQLiteBlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE k = ?`, key)
	return errors.Wrapf(err, "sqlite: delete %s", key)
}

func (s *SQLiteBlobStore) Close() error {
	return s.db.Close()
}
