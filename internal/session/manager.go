// Package session manages the persisted session descriptor: the marker of
// the last known authenticated identity, hardened with a signed expiring
// token.
package session

import (
	"context"
	"errors"
	"time"

	"libmatch/internal/directory"
	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
	"libmatch/internal/remote"
	"libmatch/internal/storage"
)

// DefaultMaxAge bounds how long a session stays valid without a new login.
const DefaultMaxAge = 24 * time.Hour

// Manager issues and validates session descriptors persisted through the
// encrypted record store.
type Manager struct {
	records *storage.RecordStore[models.Session]
	secret  []byte
	maxAge  time.Duration
	log     logging.Logger
}

func NewManager(kv kvstore.Store, log logging.Logger, secret []byte, maxAge time.Duration) *Manager {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Manager{
		records: storage.NewRecordStore[models.Session](kv, log, storage.KeySession),
		secret:  secret,
		maxAge:  maxAge,
		log:     log,
	}
}

// Establish creates and persists a descriptor for the given identity,
// stamped with the current time and a signed token carrying the expiry.
func (m *Manager) Establish(ctx context.Context, userID, email string) (*models.Session, error) {
	token, err := GenerateToken(userID, m.secret, m.maxAge)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		UserID:    userID,
		Email:     email,
		LastLogin: time.Now(),
		Token:     token,
	}
	if err := m.records.Save(ctx, session); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "session established", "userId", userID)
	return &session, nil
}

// load returns the descriptor or nil. Corrupt descriptors are treated as
// absent (logged at Warn by the record store).
func (m *Manager) load(ctx context.Context) *models.Session {
	session, err := m.records.Load(ctx)
	if err != nil {
		return nil
	}
	return session
}

// valid reports whether the descriptor is well-formed and unexpired.
// Descriptors written by clients that predate the signed token carry no
// token; for those the LastLogin age is checked against the max age instead.
func (m *Manager) valid(session *models.Session) bool {
	if session == nil || session.UserID == "" {
		return false
	}
	if session.Token == "" {
		return time.Since(session.LastLogin) < m.maxAge
	}
	userID, err := UserIDFromToken(session.Token, m.secret)
	return err == nil && userID == session.UserID
}

// IsActive reports whether a valid session is present. Any decode error
// yields false.
func (m *Manager) IsActive(ctx context.Context) bool {
	return m.valid(m.load(ctx))
}

// CurrentUserID returns the session's user id, or ok=false when no valid
// session exists.
func (m *Manager) CurrentUserID(ctx context.Context) (string, bool) {
	session := m.load(ctx)
	if !m.valid(session) {
		return "", false
	}
	return session.UserID, true
}

// Terminate removes the descriptor. Terminating an absent session is a no-op.
func (m *Manager) Terminate(ctx context.Context) error {
	return m.records.Remove(ctx)
}

// CurrentUser resolves the session's user record: the remote store is
// authoritative, and the local directory is consulted only when the remote
// is unavailable — never when the remote answered "not found".
func (m *Manager) CurrentUser(ctx context.Context, store remote.Store, dir *directory.Directory) (*models.User, error) {
	userID, ok := m.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}

	user, err := store.GetUserByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, remote.ErrNotFound) {
		return nil, nil
	}
	if !errors.Is(err, remote.ErrUnavailable) {
		return nil, err
	}

	m.log.Debug(ctx, "remote store unavailable, resolving user locally", "userId", userID)
	return dir.FindByID(ctx, userID)
}
