// Package storage is the filesystem abstraction that receives CSV exports.
//
// Two drivers are available:
//   - "local": a directory on the local filesystem (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.Open(ctx, config.ExportDisk())
//	err = disk.Put(ctx, "inventory_export.csv", data)
package storage

import (
	"context"
	"io"
)

// Disk is the driver interface. Writes overwrite existing objects.
type Disk interface {
	// Name is the driver name, used in logs and metrics.
	Name() string

	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(ctx context.Context, path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Location returns a human-readable location for path (absolute file
	// path or s3:// URI).
	Location(path string) string
}
