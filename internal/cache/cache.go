// Package cache provides a durable key-value cache with per-key TTL expiry.
// Entries survive process restarts; expired entries are purged lazily on read.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrStorage is returned when the underlying store cannot be written.
var ErrStorage = errors.New("cache storage error")

// TTL table. Geocoding results are effectively immutable; alerts are
// safety-critical and must stay fresh.
const (
	TTLGeocode  = 365 * 24 * time.Hour
	TTLForecast = 10 * time.Minute
	TTLAlerts   = 5 * time.Minute
	TTLStory    = 30 * time.Minute
)

// entry is the on-disk envelope for a cached value.
type entry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix seconds at Set time
}

// Cache stores one JSON document per key under a cache directory.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open creates or reuses the per-user cache directory.
func Open() (*Cache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return OpenAt(filepath.Join(base, "wxstory"))
}

// OpenAt opens a cache rooted at dir, creating it if needed.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &Cache{dir: dir}, nil
}

// Get returns the cached value for key if present and younger than ttl.
// It fails closed: a missing key, decode failure, or expiry all read as a
// miss, never an error. Expired entries are deleted on the spot.
func Get[T any](c *Cache, key string, ttl time.Duration) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	raw, err := os.ReadFile(c.path(key))
	c.mu.RUnlock()
	if err != nil {
		return zero, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return zero, false
	}

	age := time.Now().Unix() - e.Timestamp
	if age > int64(ttl.Seconds()) {
		_ = c.Remove(key)
		return zero, false
	}

	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, false
	}
	return v, true
}

// Set stores value under key, stamping it with the current time.
func (c *Cache) Set(key string, value any) error {
	return c.setAt(key, value, time.Now().Unix())
}

// setAt stores value with an explicit timestamp. Writes go through a temp
// file and rename so readers never observe a partial entry.
func (c *Cache) setAt(key string, value any, ts int64) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	raw, err := json.Marshal(entry{Key: key, Data: data, Timestamp: ts})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Remove deletes the entry for key, if any.
func (c *Cache) Remove(key string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Clear deletes all entries.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	names, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	for _, name := range names {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}
	return nil
}

// Stats describes the cache contents.
type Stats struct {
	Entries   int   `json:"entries"`
	SizeBytes int64 `json:"size_bytes"`
}

// Stats reports entry count and total size on disk.
func (c *Cache) Stats() Stats {
	var s Stats
	if c == nil {
		return s
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	names, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return s
	}
	for _, name := range names {
		info, err := os.Stat(name)
		if err != nil {
			continue
		}
		s.Entries++
		s.SizeBytes += info.Size()
	}
	return s
}

// path maps a key to its entry file. Keys are hashed so arbitrary query
// strings never leak into filenames.
func (c *Cache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+".json")
}
