package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libmatch/internal/cryptox"
	"libmatch/internal/directory"
	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
	"libmatch/internal/remote"
	"libmatch/internal/session"
	"libmatch/internal/storage"
)

// fakeRemote is an in-memory remote store keyed by lowercased email. Every
// operation the tests do not script stays unavailable through the embedded
// Unconfigured.
type fakeRemote struct {
	remote.Unconfigured
	users    map[string]models.User
	emailErr error
	nextID   int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{users: map[string]models.User{}}
}

func (f *fakeRemote) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	user, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, remote.ErrNotFound
	}
	return &user, nil
}

func (f *fakeRemote) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	key := strings.ToLower(user.Email)
	if _, ok := f.users[key]; ok {
		return nil, remote.ErrAlreadyExists
	}
	f.nextID++
	created := *user
	created.ID = fmt.Sprintf("remote-%d", f.nextID)
	created.CreatedAt = time.Now()
	f.users[key] = created
	return &created, nil
}

func (f *fakeRemote) DeleteUser(ctx context.Context, id string) error {
	for key, user := range f.users {
		if user.ID == id {
			delete(f.users, key)
			return nil
		}
	}
	return remote.ErrNotFound
}

type fixture struct {
	coordinator *Coordinator
	dir         *directory.Directory
	sessions    *session.Manager
	store       *storage.Manager
	kv          *kvstore.MemoryStore
}

func newFixture(t *testing.T, store remote.Store) *fixture {
	t.Helper()

	log := logging.NewDiscard()
	kv := kvstore.NewMemoryStore()
	dir := directory.New(kv, log)
	sessions := session.NewManager(kv, log, []byte("test-secret"), session.DefaultMaxAge)
	manager := storage.NewManager(kv, log)

	return &fixture{
		coordinator: NewCoordinator(store, dir, sessions, manager, log),
		dir:         dir,
		sessions:    sessions,
		store:       manager,
		kv:          kv,
	}
}

func validRegistration() RegisterData {
	return RegisterData{
		Email:           "alice@example.com",
		Password:        "Sunset!2024",
		ConfirmPassword: "Sunset!2024",
		Name:            "Alice",
		Age:             29,
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	tests := []struct {
		name   string
		mutate func(*RegisterData)
	}{
		{"invalid email", func(d *RegisterData) { d.Email = "not-an-email" }},
		{"weak password", func(d *RegisterData) { d.Password, d.ConfirmPassword = "short", "short" }},
		{"mismatched confirmation", func(d *RegisterData) { d.ConfirmPassword = "Sunset!2025" }},
		{"under age", func(d *RegisterData) { d.Age = 17 }},
		{"over age", func(d *RegisterData) { d.Age = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validRegistration()
			tt.mutate(&data)

			_, err := f.coordinator.Register(ctx, data)
			require.Error(t, err)
			require.Equal(t, KindValidation, KindOf(err))
		})
	}

	// validation failures leave no session behind
	require.False(t, f.sessions.IsActive(ctx))
}

func TestRegister_LocalFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	authUser, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.True(t, authUser.Authenticated)
	require.True(t, strings.HasPrefix(authUser.ID, "user_"))
	require.Equal(t, "alice@example.com", authUser.Email)

	// the account landed in the local directory with a salted digest
	stored, err := f.dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.PasswordDigest, 64)
	require.NotEmpty(t, stored.Salt)
	require.NotContains(t, stored.PasswordDigest, "Sunset")

	require.True(t, f.sessions.IsActive(ctx))
	userID, ok := f.sessions.CurrentUserID(ctx)
	require.True(t, ok)
	require.Equal(t, authUser.ID, userID)
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	_, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)

	data := validRegistration()
	data.Email = "ALICE@example.com" // duplicates differ only in case
	_, err = f.coordinator.Register(ctx, data)
	require.Error(t, err)
	require.Equal(t, KindConflict, KindOf(err))
}

func TestRegister_RemoteCreatesUser(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRemote()
	f := newFixture(t, fake)

	authUser, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.Equal(t, "remote-1", authUser.ID)

	// nothing was written to the local directory
	stored, err := f.dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Nil(t, stored)

	_, err = f.coordinator.Register(ctx, validRegistration())
	require.Error(t, err)
	require.Equal(t, KindConflict, KindOf(err))
}

func TestLogin_SucceedsWithCorrectPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	registered, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, f.coordinator.Logout(ctx))
	require.False(t, f.sessions.IsActive(ctx))

	authUser, err := f.coordinator.Login(ctx, Credentials{
		Email:    "alice@example.com",
		Password: "Sunset!2024",
	})
	require.NoError(t, err)
	require.Equal(t, registered.ID, authUser.ID)
	require.True(t, f.sessions.IsActive(ctx))
}

func TestLogin_WrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	_, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, f.coordinator.Logout(ctx))

	_, wrongPassword := f.coordinator.Login(ctx, Credentials{
		Email:    "alice@example.com",
		Password: "Wrong!2024",
	})
	require.Error(t, wrongPassword)
	require.Equal(t, KindUnauthorized, KindOf(wrongPassword))

	_, unknownEmail := f.coordinator.Login(ctx, Credentials{
		Email:    "nobody@example.com",
		Password: "Sunset!2024",
	})
	require.Error(t, unknownEmail)
	require.Equal(t, KindUnauthorized, KindOf(unknownEmail))

	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	require.False(t, f.sessions.IsActive(ctx))
}

func TestLogin_RemoteNotFoundNeverConsultsDirectory(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRemote()
	f := newFixture(t, fake)

	// the directory knows the user, but the remote's answer is final
	salt, err := cryptox.GenerateSalt(cryptox.SaltLength)
	require.NoError(t, err)
	require.NoError(t, f.dir.Put(ctx, models.User{
		ID:             "u1",
		Email:          "alice@example.com",
		PasswordDigest: cryptox.HashPassword("Sunset!2024", salt),
		Salt:           salt,
	}))

	_, err = f.coordinator.Login(ctx, Credentials{
		Email:    "alice@example.com",
		Password: "Sunset!2024",
	})
	require.Error(t, err)
	require.Equal(t, KindUnauthorized, KindOf(err))
}

func TestLogin_LegacyRollingHashDigest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	// an account written by the first client generation
	salt := "legacy-salt"
	require.NoError(t, f.dir.Put(ctx, models.User{
		ID:             "u1",
		Email:          "old@example.com",
		PasswordDigest: cryptox.LegacyHash("Sunset!2024" + salt),
		Salt:           salt,
	}))

	authUser, err := f.coordinator.Login(ctx, Credentials{
		Email:    "old@example.com",
		Password: "Sunset!2024",
	})
	require.NoError(t, err)
	require.Equal(t, "u1", authUser.ID)

	require.NoError(t, f.coordinator.Logout(ctx))
	_, err = f.coordinator.Login(ctx, Credentials{
		Email:    "old@example.com",
		Password: "Wrong!2024",
	})
	require.Error(t, err)
	require.Equal(t, KindUnauthorized, KindOf(err))
}

func TestLogin_EmptyDigestIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	require.NoError(t, f.dir.Put(ctx, models.User{ID: "u1", Email: "alice@example.com"}))

	_, err := f.coordinator.Login(ctx, Credentials{
		Email:    "alice@example.com",
		Password: "Sunset!2024",
	})
	require.Error(t, err)
	require.Equal(t, KindUnauthorized, KindOf(err))
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, remote.Unconfigured{})

	// without a session there is nothing to delete
	deleted, err := f.coordinator.DeleteAccount(ctx)
	require.NoError(t, err)
	require.False(t, deleted)

	authUser, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)

	// a per-user key that must be swept with the account
	require.NoError(t, f.kv.Set(ctx, "lib-match-backup-"+authUser.ID, "x"))

	deleted, err = f.coordinator.DeleteAccount(ctx)
	require.NoError(t, err)
	require.True(t, deleted)

	require.False(t, f.sessions.IsActive(ctx))
	_, ok, err := f.kv.Get(ctx, "lib-match-backup-"+authUser.ID)
	require.NoError(t, err)
	require.False(t, ok)

	stored, err := f.dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestDeleteAccount_RemovesRemoteRecord(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRemote()
	f := newFixture(t, fake)

	_, err := f.coordinator.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.Len(t, fake.users, 1)

	deleted, err := f.coordinator.DeleteAccount(ctx)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Empty(t, fake.users)
}
