package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
)

func message(id, matchID, sender, content string) models.Message {
	return models.Message{
		ID:        id,
		MatchID:   matchID,
		SenderID:  sender,
		Content:   content,
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMessageStore_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore(kvstore.NewMemoryStore(), logging.NewDiscard())

	m1 := message("m1", "match-1", "u1", "hi")
	m2 := message("m2", "match-1", "u2", "hey")
	m3 := message("m3", "match-1", "u1", "coffee?")

	require.NoError(t, store.Append(ctx, "match-1", m1))
	require.NoError(t, store.Append(ctx, "match-1", m2))
	require.NoError(t, store.Append(ctx, "match-1", m3))

	messages, err := store.Load(ctx, "match-1")
	require.NoError(t, err)
	require.Equal(t, []models.Message{m1, m2, m3}, messages)
}

func TestMessageStore_AbsentIsEmpty(t *testing.T) {
	store := NewMessageStore(kvstore.NewMemoryStore(), logging.NewDiscard())

	messages, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	require.Empty(t, messages)
	require.NotNil(t, messages)
}

func TestMessageStore_AppendRecoversCorruptCollection(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	store := NewMessageStore(kv, logging.NewDiscard())

	require.NoError(t, kv.Set(ctx, MessagesKey("match-1"), "garbage value"))
	_, err := store.Load(ctx, "match-1")
	require.ErrorIs(t, err, ErrCorruptRecord)

	m := message("m1", "match-1", "u1", "fresh start")
	require.NoError(t, store.Append(ctx, "match-1", m))

	messages, err := store.Load(ctx, "match-1")
	require.NoError(t, err)
	require.Equal(t, []models.Message{m}, messages)
}

func TestMessageStore_ClearAll(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	store := NewMessageStore(kv, logging.NewDiscard())

	require.NoError(t, store.Append(ctx, "match-1", message("m1", "match-1", "u1", "a")))
	require.NoError(t, store.Append(ctx, "match-2", message("m2", "match-2", "u2", "b")))
	require.NoError(t, kv.Set(ctx, KeySettings, "unrelated"))

	require.NoError(t, store.ClearAll(ctx))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{KeySettings}, keys)
}
