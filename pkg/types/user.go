package types

import (
	"strings"
	"time"
)

// UserRole represents the closed set of portal roles
type UserRole string

const (
	RolePatient   UserRole = "patient"
	RoleClinician UserRole = "clinician"
	RoleStaff     UserRole = "staff"
)

// Valid reports whether the role is one of the known portal roles
func (r UserRole) Valid() bool {
	switch r {
	case RolePatient, RoleClinician, RoleStaff:
		return true
	}
	return false
}

// User represents an authenticated portal account.
// Username and Role are immutable once the account is created; usernames are the
// join key into appointments and notes, so there is no rename operation.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Subject is the authenticated identity every core operation receives explicitly.
// Handlers build it from session claims; services never read ambient state.
type Subject struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// SameUser compares two usernames the way the portal does everywhere:
// stored case-sensitively, matched case-insensitively.
func SameUser(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// UserRegistrationRequest represents signup data
type UserRegistrationRequest struct {
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Role            UserRole `json:"role"`
}

// Credentials represents login credentials
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthToken represents the session token response
type AuthToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// UserClaims represents the identity carried by a session token
type UserClaims struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// Subject converts token claims into the explicit subject passed to services
func (c *UserClaims) Subject() Subject {
	return Subject{Username: c.Username, Role: c.Role}
}
