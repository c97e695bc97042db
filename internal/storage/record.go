package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"libmatch/internal/cryptox"
	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
)

// RecordStore persists a single typed value under a fixed key: the value is
// serialized to JSON, masked with the legacy cipher and written to the
// key-value medium. Load reverses the steps.
type RecordStore[T any] struct {
	kv  kvstore.Store
	key string
	log logging.Logger
}

func NewRecordStore[T any](kv kvstore.Store, log logging.Logger, key string) *RecordStore[T] {
	return &RecordStore[T]{kv: kv, key: key, log: log.With("key", key)}
}

// Key returns the storage key this store writes under.
func (s *RecordStore[T]) Key() string {
	return s.key
}

func (s *RecordStore[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, cryptox.Obscure(string(data))); err != nil {
		s.log.Error(ctx, "record save failed", "error", err)
		return err
	}
	return nil
}

// Load returns the stored value, or (nil, nil) when the key is absent.
// A blob that is present but cannot be decoded yields ErrCorruptRecord.
func (s *RecordStore[T]) Load(ctx context.Context) (*T, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Error(ctx, "record load failed", "error", err)
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal([]byte(cryptox.Reveal(raw)), &value); err != nil {
		s.log.Warn(ctx, "record is corrupt", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, s.key)
	}
	return &value, nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *RecordStore[T]) Remove(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}

func (s *RecordStore[T]) Exists(ctx context.Context) (bool, error) {
	_, ok, err := s.kv.Get(ctx, s.key)
	return ok, err
}
