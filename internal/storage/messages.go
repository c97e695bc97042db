package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"libmatch/internal/cryptox"
	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
)

// MessageStore keeps one encrypted, ordered message collection per match,
// keyed by MessagesKey(matchID).
type MessageStore struct {
	kv  kvstore.Store
	log logging.Logger
}

func NewMessageStore(kv kvstore.Store, log logging.Logger) *MessageStore {
	return &MessageStore{kv: kv, log: log}
}

func (s *MessageStore) Save(ctx context.Context, matchID string, messages []models.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to serialize messages for match %s: %w", matchID, err)
	}
	return s.kv.Set(ctx, MessagesKey(matchID), cryptox.Obscure(string(data)))
}

// Load returns the match's messages in append order. An absent collection is
// an empty slice; a present but undecodable one yields ErrCorruptRecord.
func (s *MessageStore) Load(ctx context.Context, matchID string) ([]models.Message, error) {
	raw, ok, err := s.kv.Get(ctx, MessagesKey(matchID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Message{}, nil
	}

	var messages []models.Message
	if err := json.Unmarshal([]byte(cryptox.Reveal(raw)), &messages); err != nil {
		s.log.Warn(ctx, "message collection is corrupt", "matchId", matchID, "error", err)
		return nil, fmt.Errorf("%w: messages for match %s", ErrCorruptRecord, matchID)
	}
	return messages, nil
}

// Append loads the collection, appends the message and saves it back.
// This is a read-modify-write without any locking: two independent callers
// appending to the same match can lose one of the writes. A corrupt
// collection is recovered by starting over from empty.
func (s *MessageStore) Append(ctx context.Context, matchID string, message models.Message) error {
	messages, err := s.Load(ctx, matchID)
	if err != nil {
		if !errors.Is(err, ErrCorruptRecord) {
			return err
		}
		messages = []models.Message{}
	}
	return s.Save(ctx, matchID, append(messages, message))
}

func (s *MessageStore) Remove(ctx context.Context, matchID string) error {
	return s.kv.Delete(ctx, MessagesKey(matchID))
}

// ClearAll removes every message collection in the namespace.
func (s *MessageStore) ClearAll(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return err
	}

	var toRemove []string
	for _, key := range keys {
		if strings.HasPrefix(key, MessagesPrefix) {
			toRemove = append(toRemove, key)
		}
	}
	return s.kv.DeleteMany(ctx, toRemove)
}
