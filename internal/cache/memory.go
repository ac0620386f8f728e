package cache

import (
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize bounds the memory backend when no size is configured.
const DefaultMemorySize = 256

// MemoryBackend is a bounded in-process LRU. Entries expire after ttl
// when ttl is positive.
type MemoryBackend struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryBackend returns an LRU holding at most size entries.
func NewMemoryBackend(size int, ttl time.Duration) *MemoryBackend {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &MemoryBackend{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	value, ok := b.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (b *MemoryBackend) Set(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	b.lru.Add(key, stored)
	return nil
}

func (b *MemoryBackend) Remove(key string) error {
	b.lru.Remove(key)
	return nil
}

func (b *MemoryBackend) Clear() error {
	b.lru.Purge()
	return nil
}

func (b *MemoryBackend) Keys() ([]string, error) {
	keys := b.lru.Keys()
	sort.Strings(keys)
	return keys, nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
