package models

// Collection names. These are the Firestore-era collection names the SPA and
// store-side rules already depend on; the Dynamo tables carry them as suffixes.
const (
	UsersCollection       = "users"
	ConnectionsCollection = "connections"
	DatePlansCollection   = "dates"
	LikesCollection       = "likes"
	MatchesCollection     = "matches"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Connection statuses
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionBlocked  = "blocked"
)

// Match statuses
const (
	MatchPending   = "pending"
	MatchConfirmed = "confirmed"
	MatchCompleted = "completed"
	MatchCancelled = "cancelled"
)

// RelationTypeSolo marks plans visible to signed-out visitors.
const RelationTypeSolo = "solo"

// ValidMatchStatus reports whether s is a known match lifecycle status.
func ValidMatchStatus(s string) bool {
	switch s {
	case MatchPending, MatchConfirmed, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}
