package remote

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"libmatch/internal/cryptox"
	"libmatch/internal/dbx"
	"libmatch/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrAlreadyExists means a uniqueness constraint rejected the write.
var ErrAlreadyExists = errors.New("already exists")

const uniqueViolationCode = "23505"

// PostgresStore implements Store against a Postgres database. Sensitive
// columns (email, name, bio, location, message content, event text) are
// stored through the legacy cipher, matching what earlier clients wrote.
// Lookups by email therefore compare obscured values, which works because
// the cipher is deterministic.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to dsn, verifies reachability and applies the
// embedded migrations. An unreachable server yields ErrUnavailable.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "migrations")
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is currently reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// mapError translates driver errors into the store's sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrAlreadyExists
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return fmt.Errorf("db error: %w", err)
}

func marshalJSON(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	interests, err := marshalJSON(user.Interests)
	if err != nil {
		return nil, err
	}
	photos, err := marshalJSON(user.Photos)
	if err != nil {
		return nil, err
	}
	preferences, err := marshalJSON(user.Preferences)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (email, password_hash, salt, name, age, bio, interests, location, photos, preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	created := *user
	err = s.db.QueryRowContext(ctx, query,
		cryptox.Obscure(user.Email), user.PasswordDigest, user.Salt,
		cryptox.Obscure(user.Name), user.Age, cryptox.Obscure(user.Bio),
		interests, cryptox.Obscure(user.Location), photos, preferences,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	return &created, nil
}

const userColumns = `id, email, password_hash, salt, name, age, bio, interests, location, photos, preferences, created_at`

func (s *PostgresStore) scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var (
		user        models.User
		interests   []byte
		photos      []byte
		preferences []byte
	)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordDigest, &user.Salt,
		&user.Name, &user.Age, &user.Bio, &interests, &user.Location, &photos,
		&preferences, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	user.Email = cryptox.Reveal(user.Email)
	user.Name = cryptox.Reveal(user.Name)
	user.Bio = cryptox.Reveal(user.Bio)
	user.Location = cryptox.Reveal(user.Location)

	if err := json.Unmarshal(interests, &user.Interests); err != nil {
		return nil, fmt.Errorf("failed to decode interests: %w", err)
	}
	if err := json.Unmarshal(photos, &user.Photos); err != nil {
		return nil, fmt.Errorf("failed to decode photos: %w", err)
	}
	if err := json.Unmarshal(preferences, &user.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, cryptox.Obscure(email)))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id string, updates *models.User) (*models.User, error) {
	interests, err := marshalJSON(updates.Interests)
	if err != nil {
		return nil, err
	}
	photos, err := marshalJSON(updates.Photos)
	if err != nil {
		return nil, err
	}
	preferences, err := marshalJSON(updates.Preferences)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE users
		SET name = $2, age = $3, bio = $4, interests = $5, location = $6, photos = $7, preferences = $8
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id,
		cryptox.Obscure(updates.Name), updates.Age, cryptox.Obscure(updates.Bio),
		interests, cryptox.Obscure(updates.Location), photos, preferences))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, mapError(err)
		}
		result = append(result, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *PostgresStore) CreateMatch(ctx context.Context, user1ID, user2ID string) (*models.Match, error) {
	query := `
		INSERT INTO matches (user1_id, user2_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, user1_id, user2_id, status, created_at
	`
	match := &models.Match{}
	err := s.db.QueryRowContext(ctx, query, user1ID, user2ID).
		Scan(&match.ID, &match.User1ID, &match.User2ID, &match.Status, &match.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return match, nil
}

func (s *PostgresStore) UpdateMatchStatus(ctx context.Context, matchID string, status models.MatchStatus) (*models.Match, error) {
	query := `
		UPDATE matches SET status = $2 WHERE id = $1
		RETURNING id, user1_id, user2_id, status, created_at
	`
	match := &models.Match{}
	err := s.db.QueryRowContext(ctx, query, matchID, string(status)).
		Scan(&match.ID, &match.User1ID, &match.User2ID, &match.Status, &match.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return match, nil
}

func (s *PostgresStore) UserMatches(ctx context.Context, userID string) ([]models.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, status, created_at FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status = 'matched'
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []models.Match
	for rows.Next() {
		var match models.Match
		if err := rows.Scan(&match.ID, &match.User1ID, &match.User2ID, &match.Status, &match.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		result = append(result, match)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *PostgresStore) CreateMessage(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	query := `
		INSERT INTO messages (match_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, match_id, sender_id, created_at
	`
	message := &models.Message{Content: content}
	err := s.db.QueryRowContext(ctx, query, matchID, senderID, cryptox.Obscure(content)).
		Scan(&message.ID, &message.MatchID, &message.SenderID, &message.Timestamp)
	if err != nil {
		return nil, mapError(err)
	}
	return message, nil
}

func (s *PostgresStore) MatchMessages(ctx context.Context, matchID string) ([]models.Message, error) {
	query := `
		SELECT id, match_id, sender_id, content, created_at FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []models.Message
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(&message.ID, &message.MatchID, &message.SenderID, &message.Content, &message.Timestamp); err != nil {
			return nil, mapError(err)
		}
		message.Content = cryptox.Reveal(message.Content)
		result = append(result, message)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *PostgresStore) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	query := `
		INSERT INTO events (title, description, date, location, max_participants, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, current_participants, created_at
	`
	created := *event
	createdBy := sql.NullString{String: event.CreatedBy, Valid: event.CreatedBy != ""}
	err := s.db.QueryRowContext(ctx, query,
		cryptox.Obscure(event.Title), cryptox.Obscure(event.Description),
		event.Date, cryptox.Obscure(event.Location), event.MaxParticipants, createdBy,
	).Scan(&created.ID, &created.CurrentParticipants, &created.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

func (s *PostgresStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, description, date, location, max_participants, current_participants, created_by, created_at
		FROM events
		ORDER BY date ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		var (
			event     models.Event
			createdBy sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Date,
			&event.Location, &event.MaxParticipants, &event.CurrentParticipants,
			&createdBy, &event.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		event.Title = cryptox.Reveal(event.Title)
		event.Description = cryptox.Reveal(event.Description)
		event.Location = cryptox.Reveal(event.Location)
		event.CreatedBy = createdBy.String
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *PostgresStore) JoinEvent(ctx context.Context, eventID, userID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`, eventID, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE events SET current_participants = current_participants + 1 WHERE id = $1`, eventID)
		return err
	})
	return mapError(err)
}
