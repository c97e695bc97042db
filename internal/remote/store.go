// Package remote defines the remote data store collaborator: CRUD over
// users, matches, messages and events. The store is optional; callers treat
// ErrUnavailable as a normal condition and fall back to local storage.
package remote

import (
	"context"
	"errors"

	"libmatch/internal/models"
)

var (
	// ErrUnavailable means the store is unconfigured or unreachable. It is
	// never surfaced to end users; it triggers the local fallback path.
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrNotFound means the store answered and the resource does not exist.
	// The fallback tier must NOT be consulted in this case.
	ErrNotFound = errors.New("not found")
)

// Store is the remote collaborator. Timestamps on created resources are
// server-managed.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, updates *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]models.User, error)

	// Matches.
	CreateMatch(ctx context.Context, user1ID, user2ID string) (*models.Match, error)
	UpdateMatchStatus(ctx context.Context, matchID string, status models.MatchStatus) (*models.Match, error)
	UserMatches(ctx context.Context, userID string) ([]models.Match, error)

	// Messages.
	CreateMessage(ctx context.Context, matchID, senderID, content string) (*models.Message, error)
	MatchMessages(ctx context.Context, matchID string) ([]models.Message, error)

	// Events.
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	JoinEvent(ctx context.Context, eventID, userID string) error
}
