package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libmatch/internal/directory"
	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
	"libmatch/internal/remote"
	"libmatch/internal/storage"
)

var testSecret = []byte("test-secret")

func newTestManager(t *testing.T, maxAge time.Duration) (*Manager, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	return NewManager(kv, logging.NewDiscard(), testSecret, maxAge), kv
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, DefaultMaxAge)

	require.False(t, m.IsActive(ctx))
	_, ok := m.CurrentUserID(ctx)
	require.False(t, ok)

	session, err := m.Establish(ctx, "u1", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", session.UserID)
	require.Equal(t, "alice@example.com", session.Email)
	require.NotEmpty(t, session.Token)

	require.True(t, m.IsActive(ctx))
	userID, ok := m.CurrentUserID(ctx)
	require.True(t, ok)
	require.Equal(t, "u1", userID)

	require.NoError(t, m.Terminate(ctx))
	require.False(t, m.IsActive(ctx))

	// terminating again is a no-op
	require.NoError(t, m.Terminate(ctx))
}

func TestManager_TokenExpiry(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, time.Millisecond)

	_, err := m.Establish(ctx, "u1", "alice@example.com")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.False(t, m.IsActive(ctx))
}

func TestManager_RejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	m := NewManager(kv, logging.NewDiscard(), testSecret, DefaultMaxAge)

	other := NewManager(kv, logging.NewDiscard(), []byte("other-secret"), DefaultMaxAge)
	_, err := other.Establish(ctx, "u1", "alice@example.com")
	require.NoError(t, err)

	require.False(t, m.IsActive(ctx))
}

func TestManager_LegacyDescriptorWithoutToken(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t, DefaultMaxAge)
	records := storage.NewRecordStore[models.Session](kv, logging.NewDiscard(), storage.KeySession)

	// a fresh tokenless descriptor is honored within the max age
	require.NoError(t, records.Save(ctx, models.Session{
		UserID:    "u1",
		Email:     "alice@example.com",
		LastLogin: time.Now().Add(-time.Hour),
	}))
	require.True(t, m.IsActive(ctx))

	// but not beyond it
	require.NoError(t, records.Save(ctx, models.Session{
		UserID:    "u1",
		Email:     "alice@example.com",
		LastLogin: time.Now().Add(-25 * time.Hour),
	}))
	require.False(t, m.IsActive(ctx))

	// a descriptor without an identity is never valid
	require.NoError(t, records.Save(ctx, models.Session{LastLogin: time.Now()}))
	require.False(t, m.IsActive(ctx))
}

func TestManager_CorruptDescriptorIsAbsent(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t, DefaultMaxAge)

	require.NoError(t, kv.Set(ctx, storage.KeySession, "shredded descriptor"))
	require.False(t, m.IsActive(ctx))
}

// fakeRemote answers GetUserByID from a canned user or error and leaves
// every other operation unavailable.
type fakeRemote struct {
	remote.Unconfigured
	user *models.User
	err  error
}

func (f *fakeRemote) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestManager_CurrentUser(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t, DefaultMaxAge)
	dir := directory.New(kv, logging.NewDiscard())

	local := models.User{ID: "u1", Email: "alice@example.com", Name: "Local Alice"}
	require.NoError(t, dir.Put(ctx, local))

	_, err := m.Establish(ctx, "u1", "alice@example.com")
	require.NoError(t, err)

	// the remote answer wins over the directory
	remoteUser := &models.User{ID: "u1", Email: "alice@example.com", Name: "Remote Alice"}
	user, err := m.CurrentUser(ctx, &fakeRemote{user: remoteUser}, dir)
	require.NoError(t, err)
	require.Equal(t, "Remote Alice", user.Name)

	// a definitive not-found never falls back to the directory
	user, err = m.CurrentUser(ctx, &fakeRemote{err: remote.ErrNotFound}, dir)
	require.NoError(t, err)
	require.Nil(t, user)

	// only unavailability does
	user, err = m.CurrentUser(ctx, &fakeRemote{err: remote.ErrUnavailable}, dir)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "Local Alice", user.Name)
}

func TestManager_CurrentUser_NoSession(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t, DefaultMaxAge)
	dir := directory.New(kv, logging.NewDiscard())

	user, err := m.CurrentUser(ctx, &fakeRemote{}, dir)
	require.NoError(t, err)
	require.Nil(t, user)
}
