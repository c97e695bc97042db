// Package auth orchestrates registration, login and account lifecycle
// against the remote store with the local directory as fallback.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"libmatch/internal/cryptox"
	"libmatch/internal/directory"
	"libmatch/internal/logging"
	"libmatch/internal/models"
	"libmatch/internal/remote"
	"libmatch/internal/session"
	"libmatch/internal/storage"
)

// invalidCredentials is deliberately the same for "unknown email" and
// "wrong password" so login responses cannot be used to enumerate users.
const invalidCredentials = "invalid credentials"

// RegisterData is the registration input.
type RegisterData struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Age             int
}

// Credentials is the login input.
type Credentials struct {
	Email    string
	Password string
}

// Coordinator wires the remote store, local directory, session manager and
// storage manager behind the public auth operations. All collaborators are
// injected; the coordinator holds no global state.
type Coordinator struct {
	remote   remote.Store
	dir      *directory.Directory
	sessions *session.Manager
	store    *storage.Manager
	log      logging.Logger
}

func NewCoordinator(store remote.Store, dir *directory.Directory, sessions *session.Manager, local *storage.Manager, log logging.Logger) *Coordinator {
	return &Coordinator{
		remote:   store,
		dir:      dir,
		sessions: sessions,
		store:    local,
		log:      log,
	}
}

// internal logs the underlying failure and returns the generic error the
// caller is allowed to see.
func (c *Coordinator) internal(ctx context.Context, op string, err error) *Error {
	c.log.Error(ctx, "auth operation failed", "op", op, "error", err)
	return newError(KindInternal, "internal error")
}

// resolveByEmail finds a user by email: remote first, local directory only
// when the remote is unavailable. A remote "not found" is final.
func (c *Coordinator) resolveByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := c.remote.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, remote.ErrNotFound) {
		return nil, nil
	}
	if errors.Is(err, remote.ErrUnavailable) {
		return c.dir.FindByEmail(ctx, email)
	}
	return nil, err
}

// Register validates the input, rejects duplicate emails, creates the user
// remotely (or locally when the remote is unavailable) and establishes a
// session. Validation failures have no side effects.
func (c *Coordinator) Register(ctx context.Context, data RegisterData) (*models.AuthUser, error) {
	if !ValidEmail(data.Email) {
		return nil, newError(KindValidation, "invalid email")
	}
	if errs := PasswordErrors(data.Password); len(errs) > 0 {
		return nil, newError(KindValidation, strings.Join(errs, ", "))
	}
	if data.Password != data.ConfirmPassword {
		return nil, newError(KindValidation, "passwords do not match")
	}
	if data.Age < minAge {
		return nil, newError(KindValidation, fmt.Sprintf("you must be at least %d years old", minAge))
	}
	if data.Age > maxAge {
		return nil, newError(KindValidation, fmt.Sprintf("age must be between %d and %d", minAge, maxAge))
	}

	existing, err := c.resolveByEmail(ctx, data.Email)
	if err != nil {
		return nil, c.internal(ctx, "register", err)
	}
	if existing != nil {
		return nil, newError(KindConflict, "email already registered")
	}

	salt, err := cryptox.GenerateSalt(cryptox.SaltLength)
	if err != nil {
		return nil, c.internal(ctx, "register", err)
	}

	user := &models.User{
		Email:          SanitizeInput(strings.ToLower(data.Email)),
		PasswordDigest: cryptox.HashPassword(data.Password, salt),
		Salt:           salt,
		Name:           SanitizeInput(data.Name),
		Age:            data.Age,
		Interests:      []string{},
		Photos:         []string{},
		Preferences:    models.DefaultPreferences(),
	}

	created, err := c.remote.CreateUser(ctx, user)
	switch {
	case err == nil:
	case errors.Is(err, remote.ErrAlreadyExists):
		return nil, newError(KindConflict, "email already registered")
	case errors.Is(err, remote.ErrUnavailable):
		c.log.Info(ctx, "remote store unavailable, creating user locally",
			"email", cryptox.MaskSensitive(user.Email, 2))
		user.ID = newLocalUserID()
		user.CreatedAt = time.Now()
		if err := c.dir.Put(ctx, *user); err != nil {
			return nil, c.internal(ctx, "register", err)
		}
		created = user
	default:
		return nil, c.internal(ctx, "register", err)
	}

	if _, err := c.sessions.Establish(ctx, created.ID, created.Email); err != nil {
		return nil, c.internal(ctx, "register", err)
	}

	return &models.AuthUser{
		ID:            created.ID,
		Email:         created.Email,
		Authenticated: true,
		CreatedAt:     created.CreatedAt,
		LastLogin:     time.Now(),
	}, nil
}

// Login resolves the user and verifies the password digest computed with the
// STORED salt against the stored digest. Unknown email and wrong password
// are indistinguishable to the caller.
func (c *Coordinator) Login(ctx context.Context, credentials Credentials) (*models.AuthUser, error) {
	if !ValidEmail(credentials.Email) {
		return nil, newError(KindValidation, "invalid email")
	}

	user, err := c.resolveByEmail(ctx, credentials.Email)
	if err != nil {
		return nil, c.internal(ctx, "login", err)
	}
	if user == nil || user.PasswordDigest == "" {
		return nil, newError(KindUnauthorized, invalidCredentials)
	}

	if !verifyDigest(user, credentials.Password) {
		return nil, newError(KindUnauthorized, invalidCredentials)
	}

	sess, err := c.sessions.Establish(ctx, user.ID, user.Email)
	if err != nil {
		return nil, c.internal(ctx, "login", err)
	}

	return &models.AuthUser{
		ID:            user.ID,
		Email:         user.Email,
		Authenticated: true,
		CreatedAt:     user.CreatedAt,
		LastLogin:     sess.LastLogin,
	}, nil
}

// Logout terminates the session.
func (c *Coordinator) Logout(ctx context.Context) error {
	return c.sessions.Terminate(ctx)
}

// DeleteAccount removes the current user's session, every local key derived
// from the user id, the directory record, and the remote record when the
// remote is reachable. Returns false when no session is active.
func (c *Coordinator) DeleteAccount(ctx context.Context) (bool, error) {
	userID, ok := c.sessions.CurrentUserID(ctx)
	if !ok {
		return false, nil
	}

	if err := c.sessions.Terminate(ctx); err != nil {
		return false, c.internal(ctx, "deleteAccount", err)
	}

	removed, err := c.store.RemoveKeysContaining(ctx, userID)
	if err != nil {
		return false, c.internal(ctx, "deleteAccount", err)
	}
	c.log.Info(ctx, "removed local keys for deleted account", "userId", userID, "count", removed)

	if err := c.dir.Remove(ctx, userID); err != nil {
		return false, c.internal(ctx, "deleteAccount", err)
	}

	err = c.remote.DeleteUser(ctx, userID)
	if err != nil && !errors.Is(err, remote.ErrUnavailable) && !errors.Is(err, remote.ErrNotFound) {
		return false, c.internal(ctx, "deleteAccount", err)
	}

	return true, nil
}

// verifyDigest compares the digest derived from the candidate password and
// the user's stored salt against the stored digest. Records written by the
// first client generation carry a short rolling-hash digest and are checked
// through the legacy function.
func verifyDigest(user *models.User, password string) bool {
	candidate := cryptox.HashPassword(password, user.Salt)
	if isLegacyDigest(user.PasswordDigest) {
		candidate = cryptox.LegacyHash(password + user.Salt)
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(user.PasswordDigest)) == 1
}

// isLegacyDigest reports whether the stored digest came from the 32-bit
// rolling hash (at most 8 hex chars) rather than from HashPassword.
func isLegacyDigest(digest string) bool {
	return len(digest) <= 8
}

// newLocalUserID synthesizes an id for accounts created while the remote
// store is unavailable, in the format earlier clients used.
func newLocalUserID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), suffix)
}
