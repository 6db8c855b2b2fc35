package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"todohub/internal/core/domain"
	"todohub/internal/core/port"
)

// Memory is a process-local cache used when no redis url is configured.
type Memory struct {
	store *gocache.Cache
}

func New() port.CacheRepository {
	return &Memory{
		store: gocache.New(gocache.NoExpiration, time.Minute),
	}
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	m.store.Set(key, value, ttl)

	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, found := m.store.Get(key)

	if !found {
		return nil, domain.ErrCacheMiss
	}

	return value.([]byte), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) error {
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
		}
	}

	return nil
}

func (m *Memory) Close() error {
	m.store.Flush()
	return nil
}
