package domain

// Storage keys shared with the client storage layer.
const (
	StorageKeyToken        = "token"
	StorageKeyCurrentUser  = "currentUser"
	StorageKeySelectedRole = "selectedRole"
	StorageKeyTrainings    = "trainings"
)

// SessionKeys are the keys owned by a session; clearing a session removes exactly these.
var SessionKeys = []string{StorageKeyToken, StorageKeyCurrentUser, StorageKeySelectedRole}

// Session is the persisted token, user and role tuple of one client.
// A role implies a user and a user implies a token.
type Session struct {
	Token *string
	User  *User
	Role  *Role
}

// Valid reports whether the role ⇒ user ⇒ token chain holds.
func (s Session) Valid() bool {
	if s.Role != nil && s.User == nil {
		return false
	}
	if s.User != nil && s.Token == nil {
		return false
	}
	return true
}

// AuthStatus is derived from storage on every check.
type AuthStatus struct {
	IsAuthenticated bool    `json:"isAuthenticated"`
	HasRole         bool    `json:"hasRole"`
	HasUser         bool    `json:"hasUser"`
	Role            Role    `json:"role"`
	User            *User   `json:"user"`
	Token           *string `json:"token"`
}
