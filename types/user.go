package types

import "time"

// Staff roles. Every account carries exactly one.
const (
	RoleWriter = "writer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleWriter, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// User represents a staff account in the newsroom.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen at registration.
	// It is immutable after creation.
	Username string `json:"username" db:"username"`

	// Role indicates the user's authorization level within the
	// newsroom: "writer", "editor" or "admin".
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Principal is the authenticated identity recovered from a verified
// session token and attached to the request context.
type Principal struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
