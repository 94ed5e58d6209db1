// Package kv provides the key-value layer: a persistent bolt-backed store
// with an in-memory fallback, a factory that picks one per namespace, and a
// bounded TTL cache layered on top.
package kv

// Backend is the uniform key-value contract shared by the persistent and
// in-memory implementations. Values are opaque bytes; serialization is the
// caller's concern.
type Backend interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, bool, error)
	Delete(key string) error
	Clear() error
	Keys() ([]string, error)
	Contains(key string) (bool, error)
}
