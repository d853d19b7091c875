package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cases := []struct {
		opts Options
		want Driver
	}{
		{Options{Driver: DriverMemory}, DriverMemory},
		{Options{FSRoot: filepath.Join(dir, "fs")}, DriverFilesystem},
		{Options{Driver: DriverFilesystem, FSRoot: filepath.Join(dir, "fs2")}, DriverFilesystem},
		{Options{Driver: DriverSQLite, SQLitePath: filepath.Join(dir, "db", "c.db")}, DriverSQLite},
	}
	for _, c := range cases {
		s, err := Open(ctx, c.opts)
		if err != nil {
			t.Fatalf("open %+v: %v", c.opts, err)
		}
		if s.Driver() != c.want {
			t.Fatalf("driver = %s, want %s", s.Driver(), c.want)
		}
		_ = s.Close()
	}
}

func TestOpenUnknownAndS3WithoutBucket(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{Driver: "ftp"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if _, err := Open(ctx, Options{Driver: DriverS3}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}
