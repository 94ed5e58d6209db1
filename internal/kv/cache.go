package kv

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lucasreed/vidvault/internal/constants"
	"github.com/lucasreed/vidvault/internal/logger"
)

// envelope is the serialized form written through to the backend. Carrying
// the timestamp and TTL with the payload lets read-through and Cleanup apply
// expiry to the persistent layer too.
type envelope struct {
	Value     json.RawMessage `json:"v"`
	Timestamp int64           `json:"ts"` // unix milliseconds
	TTLMillis int64           `json:"ttl,omitempty"`
}

func (e envelope) expired(now time.Time) bool {
	if e.TTLMillis <= 0 {
		return false
	}
	return now.UnixMilli() > e.Timestamp+e.TTLMillis
}

type entry struct {
	value     json.RawMessage
	timestamp time.Time
	ttl       time.Duration
}

// CacheConfig shapes a Cache. Zero values pick the compiled-in defaults.
type CacheConfig struct {
	MaxSize    int
	DefaultTTL time.Duration
	// SweepInterval starts a background Cleanup loop when positive.
	SweepInterval time.Duration
}

// Cache is a bounded in-process layer over one Backend. Writes go through to
// the backend; reads prefer the in-process entry and repopulate it from the
// backend on miss. Eviction is strict LRU by write time. The window between
// an in-process miss and the backend read is not atomic; concurrent callers
// may both repopulate, which is fine because writes are last-writer-wins.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	backend    Backend
	maxSize    int
	defaultTTL time.Duration
	log        *logger.Logger
	done       chan struct{}
	sweepOnce  sync.Once
}

// NewCache layers a bounded cache over backend.
func NewCache(backend Backend, cfg CacheConfig, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Default()
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = constants.DefaultCacheMaxSize
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = constants.DefaultCacheTTL
	}

	c := &Cache{
		entries:    make(map[string]entry),
		backend:    backend,
		maxSize:    cfg.MaxSize,
		defaultTTL: cfg.DefaultTTL,
		log:        log.WithComponent("cache"),
		done:       make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go c.sweepLoop(cfg.SweepInterval)
	}
	return c
}

func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(); err != nil {
				c.log.Warn("cache sweep failed", "error", err)
			}
		case <-c.done:
			return
		}
	}
}

// Close stops the background sweep, if one is running.
func (c *Cache) Close() {
	c.sweepOnce.Do(func() { close(c.done) })
}

// Set writes the raw JSON payload through to the backend and refreshes the
// in-process entry. ttl <= 0 uses the configured default. When the map grows
// past maxSize the oldest-written entries are evicted until back at the
// limit.
func (c *Cache) Set(key string, payload json.RawMessage, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := time.Now()

	env := envelope{Value: payload, Timestamp: now.UnixMilli(), TTLMillis: ttl.Milliseconds()}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.backend.Set(key, raw); err != nil {
		return fmt.Errorf("failed to write through cache entry: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = entry{value: payload, timestamp: now, ttl: ttl}
	c.evictLocked()
	c.mu.Unlock()
	return nil
}

// evictLocked removes oldest-timestamp entries until the map is within
// maxSize. Caller holds c.mu.
func (c *Cache) evictLocked() {
	for len(c.entries) > c.maxSize {
		var oldestKey string
		var oldest time.Time
		first := true
		for k, e := range c.entries {
			if first || e.timestamp.Before(oldest) {
				oldestKey, oldest, first = k, e.timestamp, false
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Get returns the payload for key, or (nil, false) when absent or expired.
// An unexpired in-process entry wins; otherwise the backend is consulted and
// the in-process entry repopulated. A corrupted stored value is treated as a
// miss, never an error.
func (c *Cache) Get(key string) (json.RawMessage, bool, error) {
	now := time.Now()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if e.ttl <= 0 || now.Before(e.timestamp.Add(e.ttl)) {
			c.mu.Unlock()
			return e.value, true, nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	raw, ok, err := c.backend.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache backend: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Corrupted value: recover locally as a miss.
		c.log.Debug("dropping undecodable cache value", "key", key)
		_ = c.backend.Delete(key)
		return nil, false, nil
	}
	if env.expired(now) {
		_ = c.backend.Delete(key)
		return nil, false, nil
	}

	c.mu.Lock()
	c.entries[key] = entry{value: env.Value, timestamp: now, ttl: c.defaultTTL}
	c.evictLocked()
	c.mu.Unlock()
	return env.Value, true, nil
}

// Has reports whether key holds an unexpired value in either layer.
func (c *Cache) Has(key string) (bool, error) {
	_, ok, err := c.Get(key)
	return ok, err
}

// Remove deletes key from both layers.
func (c *Cache) Remove(key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return c.backend.Delete(key)
}

// Clear empties both layers.
func (c *Cache) Clear() error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return c.backend.Clear()
}

// Cleanup sweeps both layers, removing entries whose timestamp + ttl has
// passed.
func (c *Cache) Cleanup() error {
	now := time.Now()

	c.mu.Lock()
	for k, e := range c.entries {
		if e.ttl > 0 && now.After(e.timestamp.Add(e.ttl)) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	keys, err := c.backend.Keys()
	if err != nil {
		return fmt.Errorf("failed to list backend keys: %w", err)
	}
	for _, k := range keys {
		raw, ok, err := c.backend.Get(k)
		if err != nil || !ok {
			continue
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			_ = c.backend.Delete(k)
			continue
		}
		if env.expired(now) {
			_ = c.backend.Delete(k)
		}
	}
	return nil
}

// Export returns every currently stored, unexpired key with its decoded
// payload, for backup purposes.
func (c *Cache) Export() (map[string]json.RawMessage, error) {
	keys, err := c.backend.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list backend keys: %w", err)
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		payload, ok, err := c.Get(k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = payload
		}
	}
	return out, nil
}

// Import bulk-loads the map produced by Export, each entry with the default
// TTL.
func (c *Cache) Import(data map[string]json.RawMessage) error {
	for k, v := range data {
		if err := c.Set(k, v, 0); err != nil {
			return err
		}
	}
	return nil
}

// Typed wrappers. All funnel through Get/Set and differ only in
// (de)serialization; decode failures behave as misses and return the default.

func (c *Cache) SetString(key, value string, ttl time.Duration) error {
	return c.setJSON(key, value, ttl)
}

func (c *Cache) GetString(key, def string) string {
	var v string
	if c.getJSON(key, &v) {
		return v
	}
	return def
}

func (c *Cache) SetInt(key string, value int64, ttl time.Duration) error {
	return c.setJSON(key, value, ttl)
}

func (c *Cache) GetInt(key string, def int64) int64 {
	var v int64
	if c.getJSON(key, &v) {
		return v
	}
	return def
}

func (c *Cache) SetFloat(key string, value float64, ttl time.Duration) error {
	return c.setJSON(key, value, ttl)
}

func (c *Cache) GetFloat(key string, def float64) float64 {
	var v float64
	if c.getJSON(key, &v) {
		return v
	}
	return def
}

func (c *Cache) SetBool(key string, value bool, ttl time.Duration) error {
	return c.setJSON(key, value, ttl)
}

func (c *Cache) GetBool(key string, def bool) bool {
	var v bool
	if c.getJSON(key, &v) {
		return v
	}
	return def
}

func (c *Cache) SetObject(key string, value any, ttl time.Duration) error {
	return c.setJSON(key, value, ttl)
}

// GetObject decodes the stored value into out and reports whether a value
// was present and decodable.
func (c *Cache) GetObject(key string, out any) bool {
	return c.getJSON(key, out)
}

// SetBinary stores raw bytes (JSON base64 encoding on the wire).
func (c *Cache) SetBinary(key string, value []byte, ttl time.Duration) error {
	return c.setJSON(key, value, ttl)
}

func (c *Cache) GetBinary(key string) ([]byte, bool) {
	var v []byte
	if c.getJSON(key, &v) {
		return v, true
	}
	return nil, false
}

func (c *Cache) setJSON(key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	return c.Set(key, payload, ttl)
}

func (c *Cache) getJSON(key string, out any) bool {
	payload, ok, err := c.Get(key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}
