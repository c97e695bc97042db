// Package storage implements encrypted keyed record persistence on top of
// the local key-value medium: a generic single-key record store, a per-match
// message store, and housekeeping utilities over the app's key namespace.
package storage

// All keys owned by this layer live under the application prefix so they
// never collide with unrelated data in a shared medium.
const (
	Namespace = "lib-match-"

	KeyUserProfile = Namespace + "user-profile"
	KeyMatches     = Namespace + "matches"
	KeySettings    = Namespace + "settings"
	KeyEvents      = Namespace + "events"
	KeySession     = Namespace + "auth-session"
	KeyUsers       = Namespace + "users"

	// MessagesPrefix is extended with "-<matchId>" per collection.
	MessagesPrefix = Namespace + "messages"
)

// MessagesKey returns the storage key for a match's message collection.
func MessagesKey(matchID string) string {
	return MessagesPrefix + "-" + matchID
}
