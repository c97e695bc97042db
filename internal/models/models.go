// Package models defines the record types shared by the storage, session
// and auth layers.
package models

import "time"

// Preferences holds a user's discovery settings.
type Preferences struct {
	AgeRange    [2]int   `json:"ageRange"`
	MaxDistance int      `json:"maxDistance"`
	Interests   []string `json:"interests"`
}

// DefaultPreferences returns the preferences assigned to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		AgeRange:    [2]int{18, 65},
		MaxDistance: 50,
		Interests:   []string{},
	}
}

// User is the full user record. It is owned by the remote store, or by the
// local directory when the account was created during an outage. The ID is
// opaque and immutable once assigned.
type User struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	PasswordDigest string      `json:"passwordHash,omitempty"`
	Salt           string      `json:"salt,omitempty"`
	Name           string      `json:"name"`
	Age            int         `json:"age"`
	Bio            string      `json:"bio"`
	Interests      []string    `json:"interests"`
	Location       string      `json:"location"`
	Photos         []string    `json:"photos"`
	Preferences    Preferences `json:"preferences"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchMatched  MatchStatus = "matched"
	MatchRejected MatchStatus = "rejected"
)

// Match links two users.
type Match struct {
	ID        string      `json:"id"`
	User1ID   string      `json:"user1Id"`
	User2ID   string      `json:"user2Id"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Message is a single chat message inside a match. The local layer treats
// message collections as append-only.
type Message struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"matchId,omitempty"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Event is a community event users can join.
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Date                time.Time `json:"date"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"maxParticipants"`
	CurrentParticipants int       `json:"currentParticipants"`
	CreatedBy           string    `json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Session is the persisted session descriptor: a marker of the last known
// authenticated identity, plus a signed token carrying the expiry.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	LastLogin time.Time `json:"lastLogin"`
	Token     string    `json:"token,omitempty"`
}

// AuthUser is the view of an authenticated user returned to callers of the
// auth layer. It never carries the password digest.
type AuthUser struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Authenticated bool      `json:"isAuthenticated"`
	CreatedAt     time.Time `json:"createdAt"`
	LastLogin     time.Time `json:"lastLogin"`
}
