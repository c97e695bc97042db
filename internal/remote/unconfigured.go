package remote

import (
	"context"

	"libmatch/internal/models"
)

// Unconfigured is the Store used when no remote endpoint is configured.
// Every operation reports ErrUnavailable, which callers treat as the signal
// to use local storage.
type Unconfigured struct{}

var _ Store = Unconfigured{}

func (Unconfigured) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) UpdateUser(ctx context.Context, id string, updates *models.User) (*models.User, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) DeleteUser(ctx context.Context, id string) error {
	return ErrUnavailable
}

func (Unconfigured) ListUsers(ctx context.Context) ([]models.User, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) CreateMatch(ctx context.Context, user1ID, user2ID string) (*models.Match, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) UpdateMatchStatus(ctx context.Context, matchID string, status models.MatchStatus) (*models.Match, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) UserMatches(ctx context.Context, userID string) ([]models.Match, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) CreateMessage(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) MatchMessages(ctx context.Context, matchID string) ([]models.Message, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) ListEvents(ctx context.Context) ([]models.Event, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) JoinEvent(ctx context.Context, eventID, userID string) error {
	return ErrUnavailable
}
