package interfaces

import (
	"context"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// IdentityService defines identity and session operations
type IdentityService interface {
	Register(req *types.UserRegistrationRequest) (*types.User, error)
	Login(credentials *types.Credentials) (*types.AuthToken, error)
	ValidateToken(tokenString string) (*types.UserClaims, error)
	ListClinicians() ([]*types.User, error)

	// DeleteAccount removes the subject's account after password re-confirmation
	// and cascades to all appointments and clinical notes carrying the username.
	DeleteAccount(ctx context.Context, subject types.Subject, password string) error
}

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(user *types.User) error
	GetByUsername(username string) (*types.User, error)
	ListByRole(role types.UserRole) ([]*types.User, error)
	CascadeDelete(ctx context.Context, username string) error
}

// PasswordManager defines password hashing operations
type PasswordManager interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) (bool, error)
}
