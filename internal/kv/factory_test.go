package kv

import (
	"path/filepath"
	"testing"
)

// staticProbe reports a fixed capability result.
type staticProbe bool

func (p staticProbe) Available() bool { return bool(p) }

func TestFactory_PersistentBackends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.kv")
	f := NewFactory(path, nil, nil)
	defer func() {
		if err := f.Close(); err != nil {
			t.Logf("factory.Close error: %v", err)
		}
	}()

	if !f.Persistent() {
		t.Fatal("Expected persistent factory for a writable path")
	}

	b1, err := f.Get("app", "config")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := b1.(*BoltBackend); !ok {
		t.Errorf("Expected *BoltBackend, got %T", b1)
	}

	// Same pair is memoized
	b2, err := f.Get("app", "config")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if b1 != b2 {
		t.Error("Expected the same backend instance for repeated Get")
	}

	// Distinct pairs are isolated stores
	other, err := f.Get("app", "session")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if other == b1 {
		t.Fatal("Expected a distinct backend for a distinct prefix")
	}
	if err := b1.Set("key", []byte("one")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if ok, _ := other.Contains("key"); ok {
		t.Error("Expected prefixes to be isolated")
	}
}

func TestFactory_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.kv")

	f1 := NewFactory(path, nil, nil)
	b, err := f1.Get("app", "config")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if err := b.Set("theme", []byte(`"dark"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := f1.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f2 := NewFactory(path, nil, nil)
	defer func() {
		if err := f2.Close(); err != nil {
			t.Logf("factory.Close error: %v", err)
		}
	}()
	b2, err := f2.Get("app", "config")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	v, ok, err := b2.Get("theme")
	if err != nil || !ok {
		t.Fatalf("Expected persisted value after reopen: %v %v", ok, err)
	}
	if string(v) != `"dark"` {
		t.Errorf("Expected persisted value, got %s", v)
	}
}

func TestFactory_DegradesToMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.kv")
	f := NewFactory(path, staticProbe(false), nil)
	defer func() {
		if err := f.Close(); err != nil {
			t.Logf("factory.Close error: %v", err)
		}
	}()

	if f.Persistent() {
		t.Fatal("Expected degraded factory when capability probe fails")
	}

	// Degraded backends still satisfy the full contract
	b, err := f.Get("app", "config")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := b.(*MemoryBackend); !ok {
		t.Errorf("Expected *MemoryBackend, got %T", b)
	}
	if err := b.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := b.Get("k")
	if err != nil || !ok || string(v) != "v" {
		t.Errorf("Expected degraded backend to round trip, got %s %v %v", v, ok, err)
	}

	// Memoization applies either way
	again, _ := f.Get("app", "config")
	if again != b {
		t.Error("Expected memoized backend in degraded mode")
	}
}
