// Package kv is the persistence boundary of the configuration store: a
// minimal key-value layer the store serializes its full snapshot into.
package kv

import "errors"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// KV is a namespaced byte store. Implementations must be safe for
// concurrent use.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
