// Package directory implements the local user directory: a fallback store
// of full user records used when the remote store is unavailable. It is a
// linear-scan map, acceptable only for the small datasets of offline use.
package directory

import (
	"context"
	"errors"
	"strings"

	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
	"libmatch/internal/storage"
)

// Directory keeps id -> user in one encrypted record under the users key.
type Directory struct {
	records *storage.RecordStore[map[string]models.User]
	log     logging.Logger
}

func New(kv kvstore.Store, log logging.Logger) *Directory {
	return &Directory{
		records: storage.NewRecordStore[map[string]models.User](kv, log, storage.KeyUsers),
		log:     log,
	}
}

// load returns the directory map. An absent or corrupt record behaves as an
// empty directory; corruption is logged, not surfaced.
func (d *Directory) load(ctx context.Context) (map[string]models.User, error) {
	users, err := d.records.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptRecord) {
			d.log.Warn(ctx, "user directory is corrupt, starting empty")
			return map[string]models.User{}, nil
		}
		return nil, err
	}
	if users == nil {
		return map[string]models.User{}, nil
	}
	return *users, nil
}

// FindByEmail looks up a user by email, case-insensitively. Returns
// (nil, nil) when no user matches.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, nil
}

// FindByID returns the user with the given id, or (nil, nil).
func (d *Directory) FindByID(ctx context.Context, id string) (*models.User, error) {
	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	if user, ok := users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

// Put inserts or replaces the user record.
func (d *Directory) Put(ctx context.Context, user models.User) error {
	users, err := d.load(ctx)
	if err != nil {
		return err
	}
	users[user.ID] = user
	return d.records.Save(ctx, users)
}

// Remove deletes the user with the given id. Removing an unknown id is a no-op.
func (d *Directory) Remove(ctx context.Context, id string) error {
	users, err := d.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := users[id]; !ok {
		return nil
	}
	delete(users, id)
	return d.records.Save(ctx, users)
}

// All returns every stored user record.
func (d *Directory) All(ctx context.Context) ([]models.User, error) {
	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.User, 0, len(users))
	for _, user := range users {
		result = append(result, user)
	}
	return result, nil
}
