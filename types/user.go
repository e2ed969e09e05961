package types

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// RoleAllowed reports whether actual is one of the allowed roles.
// An empty allowed set permits any authenticated role.
func RoleAllowed(allowed []Role, actual Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		if role == actual {
			return true
		}
	}
	return false
}

// UserStatus is the activity state of a user account.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
	UserBlocked  UserStatus = "BLOCKED"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address, unique across accounts.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level within the system.
	Role Role `json:"role" db:"role"`

	// Status indicates whether the account is active. Only active users
	// may list their own posts.
	Status UserStatus `json:"status" db:"status"`

	// EmailVerified reports whether the user has confirmed their email
	// address. Unverified users are rejected by the auth middleware.
	EmailVerified bool `json:"emailVerified" db:"email_verified"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Author is the subset of user fields embedded in post and comment responses.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session carries the identity attached to an authenticated request.
type Session struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}
