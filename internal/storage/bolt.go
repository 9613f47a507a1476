package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// BoltStore keeps objects in a local bbolt file, one bbolt bucket per
// storage bucket. It backs local development and tests.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
}

func OpenBolt(dbPath, bucket string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bolt dir: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return &BoltStore{db: db, bucket: []byte(bucket)}, nil
}

func (s *BoltStore) Upload(ctx context.Context, key string, data []byte, opts UploadOptions) (string, error) {
	if key == "" {
		return "", errors.New("empty object key")
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if !opts.Upsert && b.Get([]byte(key)) != nil {
			return ErrObjectExists
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *BoltStore) Remove(ctx context.Context, keys []string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *BoltStore) Download(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return ErrObjectNotFound
		}
		// v is only valid for the life of the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
