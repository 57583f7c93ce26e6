// Package memory provides an in-process cache repository used when Redis
// is disabled, typically in development and tests.
package memory

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/forkcast/v2/internal/ports/outbound"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// CacheRepository is a mutex-guarded map with TTL support. Expired entries
// are dropped lazily on read and swept by a background janitor.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]entry
	done    chan struct{}
	once    sync.Once
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() *CacheRepository {
	r := &CacheRepository{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go r.janitor()
	return r
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// Get retrieves a value. A cache miss returns nil bytes and no error.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if e.expired(time.Now()) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return nil, nil
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, nil
}

// Set stores a value with a TTL. A zero TTL means no expiry.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	e := entry{value: stored}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = e
	r.mu.Unlock()
	return nil
}

// Delete removes a single key
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

// DeletePattern removes every key matching a glob pattern
func (r *CacheRepository) DeletePattern(ctx context.Context, pattern string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.entries {
		if matched, err := path.Match(pattern, key); err != nil {
			return err
		} else if matched {
			delete(r.entries, key)
		}
	}
	return nil
}

// Exists checks whether a key is present and unexpired
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return false, nil
	}
	return true, nil
}

// Close stops the janitor goroutine
func (r *CacheRepository) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *CacheRepository) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for key, e := range r.entries {
				if e.expired(now) {
					delete(r.entries, key)
				}
			}
			r.mu.Unlock()
		}
	}
}
