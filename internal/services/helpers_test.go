package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DriverSQLite, ":memory:", logger.Silent)
	require.NoError(t, err)
	if migrate {
		require.NoError(t, db.Migrate(gdb))
	}
	t.Cleanup(func() { db.Close(gdb) })
	return gdb
}

// fakeStore is an in-memory ObjectStore that can be told to fail.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   int
	removed   []string
	uploadErr error
	removeErr error
	lastOpts  storage.UploadOptions
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(_ context.Context, key string, data []byte, opts storage.UploadOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	f.lastOpts = opts
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, ok := f.objects[key]; ok && !opts.Upsert {
		return "", storage.ErrObjectExists
	}
	f.objects[key] = data
	return key, nil
}

func (f *fakeStore) Remove(_ context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, keys...)
	if f.removeErr != nil {
		return f.removeErr
	}
	for _, k := range keys {
		delete(f.objects, k)
	}
	return nil
}

func (f *fakeStore) Download(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

var errBoom = errors.New("boom")
