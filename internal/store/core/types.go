// Package core defines the key-value blob abstraction shared by the store
// drivers and the persistence gateway.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete store implementation.
type Driver string

const (
	// DriverMemory keeps blobs in process memory (tests, ephemeral sessions).
	DriverMemory Driver = "memory"
	// DriverFilesystem writes one file per key under a root directory.
	DriverFilesystem Driver = "fs"
	// DriverSQLite keeps blobs in a single SQLite table.
	DriverSQLite Driver = "sqlite"
	// DriverS3 targets an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a flat key-value blob store. Put overwrites.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
	Close() error
}

// ErrNotFound is wrapped by every driver when a key is absent.
var ErrNotFound = errors.New("store: key not found")

// CloneMetadata copies a metadata map; nil stays nil.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
