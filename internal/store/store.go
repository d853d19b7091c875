// Package store re-exports the key-value abstractions and selects a driver
// from configuration.
package store

import (
	"context"
	"fmt"

	"citymap/internal/store/core"
	fsstore "citymap/internal/store/fs"
	memorystore "citymap/internal/store/memory"
	s3store "citymap/internal/store/s3"
	sqlitestore "citymap/internal/store/sqlite"
)

type (
	// Driver identifies a store backend.
	Driver = core.Driver
	// Store is the key-value blob interface.
	Store = core.Store
	// Info describes a stored blob.
	Info = core.Info
	// PutOptions configures a write.
	PutOptions = core.PutOptions
)

const (
	DriverMemory     = core.DriverMemory
	DriverFilesystem = core.DriverFilesystem
	DriverSQLite     = core.DriverSQLite
	DriverS3         = core.DriverS3
)

// ErrNotFound is returned, wrapped, for missing keys.
var ErrNotFound = core.ErrNotFound

// Options selects and configures a driver.
type Options struct {
	Driver     Driver
	FSRoot     string
	SQLitePath string
	S3         s3store.Config
}

// Open returns the store selected by opts.Driver (default fs).
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverFilesystem:
		return fsstore.New(opts.FSRoot)
	case DriverMemory:
		return memorystore.New(), nil
	case DriverSQLite:
		return sqlitestore.New(opts.SQLitePath)
	case DriverS3:
		return s3store.New(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
