package kv

import (
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/lucasreed/vidvault/internal/logger"
)

// Capability decides whether the persistent engine can be used. The check
// runs once, at factory construction, and is never re-evaluated.
type Capability interface {
	Available() bool
}

// FileProbe is the default capability strategy: it attempts to open the bolt
// file and reports whether that succeeded.
type FileProbe struct {
	Path string
}

func (p FileProbe) Available() bool {
	db, err := bolt.Open(p.Path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return false
	}
	_ = db.Close()
	return true
}

// Factory hands out one Backend per (namespace, prefix) pair, lazily created
// on first use. Implementation choice (persistent vs in-memory) is made once
// per process lifetime.
type Factory struct {
	mu       sync.Mutex
	backends map[string]Backend
	db       *bolt.DB // nil when degraded to memory
	log      *logger.Logger
}

// NewFactory probes the environment via probe (FileProbe{path} when nil) and
// opens the persistent engine if available. Probe or open failure degrades
// every backend to in-memory maps; this is logged as a durability warning and
// never surfaced to per-operation callers.
func NewFactory(path string, probe Capability, log *logger.Logger) *Factory {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("kv")

	f := &Factory{backends: make(map[string]Backend), log: log}

	if probe == nil {
		probe = FileProbe{Path: path}
	}
	if !probe.Available() {
		log.Warn("persistent backend unavailable, using in-memory storage; data will not survive restarts")
		return f
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Warn("persistent backend failed to open, using in-memory storage; data will not survive restarts", "error", err)
		return f
	}
	f.db = db
	return f
}

// Persistent reports whether backends are backed by the persistent engine.
func (f *Factory) Persistent() bool {
	return f.db != nil
}

// Get returns the memoized backend for (namespace, prefix), creating it on
// first use.
func (f *Factory) Get(namespace, prefix string) (Backend, error) {
	key := namespace + ":" + prefix

	f.mu.Lock()
	defer f.mu.Unlock()

	if b, ok := f.backends[key]; ok {
		return b, nil
	}

	var b Backend
	if f.db != nil {
		bb, err := newBoltBackend(f.db, key)
		if err != nil {
			return nil, err
		}
		b = bb
	} else {
		b = NewMemoryBackend()
	}
	f.backends[key] = b
	return b, nil
}

func (f *Factory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}
