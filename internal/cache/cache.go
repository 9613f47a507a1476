package cache

import (
	"context"
	"time"
)

// Cache stores encoded values by key. Misses and backend failures both read
// as a miss; callers fall back to the row store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type nop struct{}

// Nop returns a Cache that never stores anything.
func Nop() Cache { return nop{} }

func (nop) Get(context.Context, string) ([]byte, bool)        { return nil, false }
func (nop) Set(context.Context, string, []byte, time.Duration) {}
func (nop) Delete(context.Context, string)                     {}
