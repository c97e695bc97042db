package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"libmatch/internal/kvstore"
	"libmatch/internal/logging"
	"libmatch/internal/models"
)

// Manager bundles the per-key stores of the app namespace and implements
// the housekeeping operations over it: clearing, statistics, integrity
// checks, orphan cleanup and backup/restore.
type Manager struct {
	Profile  *RecordStore[models.User]
	Matches  *RecordStore[[]models.Match]
	Settings *RecordStore[models.Settings]
	Events   *RecordStore[[]models.Event]
	Messages *MessageStore

	kv  kvstore.Store
	log logging.Logger
}

func NewManager(kv kvstore.Store, log logging.Logger) *Manager {
	return &Manager{
		Profile:  NewRecordStore[models.User](kv, log, KeyUserProfile),
		Matches:  NewRecordStore[[]models.Match](kv, log, KeyMatches),
		Settings: NewRecordStore[models.Settings](kv, log, KeySettings),
		Events:   NewRecordStore[[]models.Event](kv, log, KeyEvents),
		Messages: NewMessageStore(kv, log),
		kv:       kv,
		log:      log,
	}
}

// InitializeDefaultSettings writes the default settings blob unless one is
// already present.
func (m *Manager) InitializeDefaultSettings(ctx context.Context) error {
	exists, err := m.Settings.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.Settings.Save(ctx, models.DefaultSettings())
}

// ClearAllUserData removes the profile, matches, settings, events and every
// message collection.
func (m *Manager) ClearAllUserData(ctx context.Context) error {
	var errs []error
	errs = append(errs, m.Profile.Remove(ctx))
	errs = append(errs, m.Matches.Remove(ctx))
	errs = append(errs, m.Settings.Remove(ctx))
	errs = append(errs, m.Events.Remove(ctx))
	errs = append(errs, m.Messages.ClearAll(ctx))
	return errors.Join(errs...)
}

// HasUserData reports whether a profile or match list has been saved.
func (m *Manager) HasUserData(ctx context.Context) (bool, error) {
	hasProfile, err := m.Profile.Exists(ctx)
	if err != nil {
		return false, err
	}
	if hasProfile {
		return true, nil
	}
	return m.Matches.Exists(ctx)
}

// RemoveKeysContaining deletes every key whose name contains substr and
// returns the number of keys removed. Used by account deletion to sweep
// per-user leftovers.
func (m *Manager) RemoveKeysContaining(ctx context.Context, substr string) (int, error) {
	if substr == "" {
		return 0, nil
	}
	keys, err := m.kv.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var toRemove []string
	for _, key := range keys {
		if strings.Contains(key, substr) {
			toRemove = append(toRemove, key)
		}
	}
	if err := m.kv.DeleteMany(ctx, toRemove); err != nil {
		return 0, err
	}
	return len(toRemove), nil
}

// Stats summarizes usage of the key-value medium.
type Stats struct {
	TotalKeys     int
	TotalSize     int
	UserDataSize  int
	MessagesCount int
}

func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	keys, err := m.kv.Keys(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, key := range keys {
		value, ok, err := m.kv.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		stats.TotalKeys++
		stats.TotalSize += len(value)

		if strings.HasPrefix(key, Namespace) {
			stats.UserDataSize += len(value)
			if strings.HasPrefix(key, MessagesPrefix) {
				stats.MessagesCount++
			}
		}
	}
	return stats, nil
}

// IntegrityReport lists problems found in the saved data.
type IntegrityReport struct {
	Valid    bool
	Problems []string
}

// ValidateIntegrity checks the saved profile and matches for missing
// required fields and flags a suspicious surplus of message collections.
func (m *Manager) ValidateIntegrity(ctx context.Context) (*IntegrityReport, error) {
	report := &IntegrityReport{Valid: true}

	profile, err := m.Profile.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptRecord) {
		return nil, err
	}
	if errors.Is(err, ErrCorruptRecord) {
		report.Valid = false
		report.Problems = append(report.Problems, "user profile is unreadable")
	} else if profile != nil {
		if profile.ID == "" || profile.Name == "" || profile.Age == 0 {
			report.Valid = false
			report.Problems = append(report.Problems, "user profile is incomplete")
		}
	}

	matches, err := m.Matches.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptRecord) {
		return nil, err
	}
	matchCount := 0
	if errors.Is(err, ErrCorruptRecord) {
		report.Valid = false
		report.Problems = append(report.Problems, "match list is unreadable")
	} else if matches != nil {
		matchCount = len(*matches)
		for i, match := range *matches {
			if match.ID == "" || match.User1ID == "" || match.User2ID == "" {
				report.Valid = false
				report.Problems = append(report.Problems, fmt.Sprintf("match %d has invalid data", i+1))
			}
		}
	}

	keys, err := m.kv.Keys(ctx)
	if err != nil {
		return nil, err
	}
	messageKeys := 0
	for _, key := range keys {
		if strings.HasPrefix(key, MessagesPrefix) {
			messageKeys++
		}
	}
	// Tolerate stale keys up to twice the match count before flagging.
	if messageKeys > matchCount*2 {
		report.Problems = append(report.Problems, "possible orphaned message collections detected")
	}

	return report, nil
}

// CleanupOrphanedData removes message collections whose match id no longer
// appears in the saved match list and returns how many were removed.
// A corrupt match list aborts the sweep: without a readable list every
// collection would look orphaned.
func (m *Manager) CleanupOrphanedData(ctx context.Context) (int, error) {
	matches, err := m.Matches.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorruptRecord) {
			m.log.Warn(ctx, "match list is unreadable, skipping orphan cleanup")
			return 0, nil
		}
		return 0, err
	}

	valid := make(map[string]struct{})
	if matches != nil {
		for _, match := range *matches {
			valid[match.ID] = struct{}{}
		}
	}

	keys, err := m.kv.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var toRemove []string
	for _, key := range keys {
		if !strings.HasPrefix(key, MessagesPrefix+"-") {
			continue
		}
		matchID := strings.TrimPrefix(key, MessagesPrefix+"-")
		if _, ok := valid[matchID]; !ok {
			toRemove = append(toRemove, key)
		}
	}

	if err := m.kv.DeleteMany(ctx, toRemove); err != nil {
		return 0, err
	}
	if len(toRemove) > 0 {
		m.log.Info(ctx, "removed orphaned message collections", "count", len(toRemove))
	}
	return len(toRemove), nil
}

// Backup is an exported snapshot of the user-owned local data.
type Backup struct {
	Profile   *models.User     `json:"profile"`
	Matches   []models.Match   `json:"matches"`
	Settings  *models.Settings `json:"settings"`
	Timestamp time.Time        `json:"timestamp"`
}

// Export snapshots profile, matches and settings. Corrupt records are
// exported as empty slots.
func (m *Manager) Export(ctx context.Context) (*Backup, error) {
	backup := &Backup{Timestamp: time.Now()}

	profile, err := m.Profile.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptRecord) {
		return nil, err
	}
	backup.Profile = profile

	matches, err := m.Matches.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptRecord) {
		return nil, err
	}
	if matches != nil {
		backup.Matches = *matches
	}

	settings, err := m.Settings.Load(ctx)
	if err != nil && !errors.Is(err, ErrCorruptRecord) {
		return nil, err
	}
	backup.Settings = settings

	return backup, nil
}

// Import restores the slots present in the backup, leaving the rest untouched.
func (m *Manager) Import(ctx context.Context, backup *Backup) error {
	if backup == nil {
		return nil
	}
	if backup.Profile != nil {
		if err := m.Profile.Save(ctx, *backup.Profile); err != nil {
			return err
		}
	}
	if backup.Matches != nil {
		if err := m.Matches.Save(ctx, backup.Matches); err != nil {
			return err
		}
	}
	if backup.Settings != nil {
		if err := m.Settings.Save(ctx, *backup.Settings); err != nil {
			return err
		}
	}
	return nil
}
