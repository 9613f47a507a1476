package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBolt(filepath.Join(t.TempDir(), "objects.db"), "post-images")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltUploadDownload(t *testing.T) {
	ctx := context.Background()
	store := newTestBolt(t)

	path, err := store.Upload(ctx, "a.png", []byte("png-bytes"), UploadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a.png", path)

	data, err := store.Download(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestBoltUploadWithoutUpsertRejectsExistingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestBolt(t)

	_, err := store.Upload(ctx, "a.png", []byte("first"), UploadOptions{})
	require.NoError(t, err)

	_, err = store.Upload(ctx, "a.png", []byte("second"), UploadOptions{})
	assert.ErrorIs(t, err, ErrObjectExists)

	data, err := store.Download(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	_, err = store.Upload(ctx, "a.png", []byte("third"), UploadOptions{Upsert: true})
	require.NoError(t, err)
	data, _ = store.Download(ctx, "a.png")
	assert.Equal(t, []byte("third"), data)
}

func TestBoltRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestBolt(t)

	_, err := store.Upload(ctx, "a.png", []byte("a"), UploadOptions{})
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, []string{"a.png", "missing.png"}))

	_, err = store.Download(ctx, "a.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
