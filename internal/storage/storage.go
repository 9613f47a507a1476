// Package storage holds the object store clients used for post images and
// the naming strategy for uploaded files.
package storage

import (
	"context"
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
)

// UploadOptions control a single upload. With Upsert false an existing key
// makes the upload fail with ErrObjectExists instead of overwriting it.
type UploadOptions struct {
	Upsert       bool
	CacheControl string
	ContentType  string
}

// ObjectStore is a bucket-scoped blob store.
type ObjectStore interface {
	// Upload stores data under key and returns the stored path.
	Upload(ctx context.Context, key string, data []byte, opts UploadOptions) (string, error)
	// Remove deletes the given keys. Keys that do not exist are ignored.
	Remove(ctx context.Context, keys []string) error
	// Download returns the object stored under key.
	Download(ctx context.Context, key string) ([]byte, error)
	Close() error
}

// DetectContentType sniffs the MIME type of data.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
