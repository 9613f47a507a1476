package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// item wraps cached bytes with their expiry.
type item struct {
	data      []byte
	expiresAt time.Time
}

// LRU is an in-process cache with per-entry expiry.
type LRU struct {
	lruCache *lru.Cache[string, item]
	now      func() time.Time
}

func NewLRU(size int) (*LRU, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("create LRU cache: %w", err)
	}
	return &LRU{lruCache: l, now: time.Now}, nil
}

func (c *LRU) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.lruCache.Add(key, item{
		data:      value,
		expiresAt: c.now().Add(ttl),
	})
}

// Get returns the cached value, dropping it if it has expired.
func (c *LRU) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	if c.now().After(val.expiresAt) {
		c.lruCache.Remove(key)
		return nil, false
	}

	return val.data, true
}

func (c *LRU) Delete(ctx context.Context, key string) {
	c.lruCache.Remove(key)
}
