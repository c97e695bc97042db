// Package kvstore provides the local key-value medium the storage layer
// persists into: a flat namespace of string keys to string values,
// enumerable, with independent get/set/remove operations.
package kvstore

import "context"

// Store is the local key-value medium.
//
// Get reports presence explicitly: a missing key is (val="", ok=false, err=nil),
// never an error. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
	Keys(ctx context.Context) ([]string, error)
	Len(ctx context.Context) (int, error)
}
