// Package sqlite implements a key-value Store as a single SQLite table.
package sqlite

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"citymap/internal/store/core"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `CREATE TABLE IF NOT EXISTS blobs (
	key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	metadata TEXT NOT NULL DEFAULT '{}',
	etag TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store keeps every blob as one row.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path.
func New(path string) (*Store, error) {
	if path == "" {
		path = "citymap.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create blobs table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverSQLite }

// Path is the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	if key == "" {
		return core.Info{}, fmt.Errorf("empty key")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return core.Info{}, err
	}
	md, err := json.Marshal(opts.Metadata)
	if err != nil {
		return core.Info{}, fmt.Errorf("marshal metadata: %w", err)
	}
	sum := sha256.Sum256(b)
	etag := hex.EncodeToString(sum[:])
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO blobs (key, payload, content_type, metadata, etag, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, content_type = excluded.content_type,
			metadata = excluded.metadata, etag = excluded.etag, updated_at = excluded.updated_at`,
		key, b, opts.ContentType, string(md), etag, now.UnixNano()); err != nil {
		return core.Info{}, fmt.Errorf("upsert %s: %w", key, err)
	}
	return core.Info{Key: key, Size: int64(len(b)), ContentType: opts.ContentType, ETag: etag, Metadata: core.CloneMetadata(opts.Metadata), LastModified: now}, nil
}

func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	var payload []byte
	info, err := s.scanOne(ctx, `SELECT key, payload, content_type, metadata, etag, updated_at FROM blobs WHERE key = ?`, key, &payload)
	if err != nil {
		return core.Info{}, nil, err
	}
	return info, io.NopCloser(bytes.NewReader(payload)), nil
}

func (s *Store) Head(ctx context.Context, key string) (core.Info, error) {
	var payload []byte
	return s.scanOne(ctx, `SELECT key, payload, content_type, metadata, etag, updated_at FROM blobs WHERE key = ?`, key, &payload)
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]core.Info, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, length(payload), content_type, metadata, etag, updated_at
		FROM blobs WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []core.Info
	for rows.Next() {
		var (
			info    core.Info
			md      string
			updated int64
		)
		if err := rows.Scan(&info.Key, &info.Size, &info.ContentType, &md, &info.ETag, &updated); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if info.Metadata, err = decodeMetadata(md); err != nil {
			return nil, err
		}
		info.LastModified = time.Unix(0, updated).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) scanOne(ctx context.Context, query, key string, payload *[]byte) (core.Info, error) {
	var (
		info    core.Info
		md      string
		updated int64
	)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&info.Key, payload, &info.ContentType, &md, &info.ETag, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Info{}, fmt.Errorf("blob %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Info{}, fmt.Errorf("select %s: %w", key, err)
	}
	if info.Metadata, err = decodeMetadata(md); err != nil {
		return core.Info{}, err
	}
	info.Size = int64(len(*payload))
	info.LastModified = time.Unix(0, updated).UTC()
	return info, nil
}

func decodeMetadata(raw string) (map[string]string, error) {
	var md map[string]string
	if err := json.Unmarshal([]byte(raw), &md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return md, nil
}
