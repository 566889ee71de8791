package storage

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore holds previews in process. Reads do not extend an entry's
// lifetime; expired entries are swept by the cache janitor.
type MemoryStore struct {
	cache *ttlcache.Cache[string, *Preview]
}

func NewMemoryStore() *MemoryStore {
	cache := ttlcache.New[string, *Preview](
		ttlcache.WithDisableTouchOnHit[string, *Preview](),
	)
	go cache.Start()

	return &MemoryStore{cache: cache}
}

func (m *MemoryStore) Put(_ context.Context, id string, preview *Preview, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	m.cache.Set(id, preview, ttl)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Preview, error) {
	item := m.cache.Get(id)
	if item == nil || item.IsExpired() {
		return nil, ErrPreviewNotFound
	}
	return item.Value(), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func (m *MemoryStore) Name() string {
	return "memory"
}

// Len counts live previews.
func (m *MemoryStore) Len() int {
	m.cache.DeleteExpired()
	return m.cache.Len()
}

func (m *MemoryStore) Close() error {
	m.cache.Stop()
	return nil
}
