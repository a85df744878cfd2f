package iam

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/monitoring"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// usernamePattern mirrors the signup rule: letters only, 3 to 15 characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z]{3,15}$`)

// timeNow is swapped out in tests
var timeNow = time.Now

// Service implements identity and session management
type Service struct {
	userRepo interfaces.UserRepository
	password interfaces.PasswordManager
	tokens   *TokenManager
	metrics  *monitoring.MetricsCollector
	logger   *logger.Logger
}

// NewService creates a new identity service. The metrics collector may be nil
// when monitoring is disabled.
func NewService(
	userRepo interfaces.UserRepository,
	password interfaces.PasswordManager,
	tokens *TokenManager,
	metrics *monitoring.MetricsCollector,
	log *logger.Logger,
) interfaces.IdentityService {
	return &Service{
		userRepo: userRepo,
		password: password,
		tokens:   tokens,
		metrics:  metrics,
		logger:   log,
	}
}

// audit writes the audit log line and feeds the audit-event counter
func (s *Service) audit(username, action, resource string, success bool, details map[string]interface{}) {
	s.logger.Audit(username, action, resource, success, details)
	if s.metrics != nil {
		s.metrics.RecordAuditEvent(action, success)
	}
}

// Register creates a new portal account. Validation runs before any
// persistence is attempted.
func (s *Service) Register(req *types.UserRegistrationRequest) (*types.User, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to hash password", err)
	}

	user := &types.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    timeNow(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.audit(user.Username, "register", "account", true, map[string]interface{}{
		"role": user.Role,
	})

	return user, nil
}

func (s *Service) validateRegistration(req *types.UserRegistrationRequest) error {
	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		return types.NewValidationError(types.ErrCodeInvalidInput,
			"username must be 3-15 letters with no digits or symbols")
	}
	if err := CheckPasswordStrength(req.Password); err != nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return types.NewValidationError(types.ErrCodeInvalidInput, "passwords do not match")
	}
	if !req.Role.Valid() {
		return types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown role %q", req.Role))
	}
	return nil
}

// Login authenticates credentials and issues a session token. A missing user
// and a wrong password surface as the same error so the response does not
// reveal which usernames exist.
func (s *Service) Login(credentials *types.Credentials) (*types.AuthToken, error) {
	if credentials.Username == "" || credentials.Password == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "username and password are required")
	}

	user, err := s.userRepo.GetByUsername(strings.TrimSpace(credentials.Username))
	if err != nil {
		if types.IsErrorType(err, types.ErrorTypeNotFound) {
			return nil, types.NewAuthenticationError(types.ErrCodeInvalidCredentials, "invalid username or password")
		}
		return nil, err
	}

	valid, err := s.password.VerifyPassword(user.PasswordHash, credentials.Password)
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to verify password", err)
	}
	if !valid {
		s.audit(user.Username, "login", "session", false, nil)
		return nil, types.NewAuthenticationError(types.ErrCodeInvalidCredentials, "invalid username or password")
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to issue session token", err)
	}

	s.audit(user.Username, "login", "session", true, nil)
	return token, nil
}

// ValidateToken validates a session token and returns the identity it carries
func (s *Service) ValidateToken(tokenString string) (*types.UserClaims, error) {
	return s.tokens.ValidateToken(tokenString)
}

// ListClinicians returns every clinician account, for the booking form
func (s *Service) ListClinicians() ([]*types.User, error) {
	return s.userRepo.ListByRole(types.RoleClinician)
}

// DeleteAccount removes the subject's account after re-confirming the password.
// Appointments and clinical notes carrying the username go with it.
func (s *Service) DeleteAccount(ctx context.Context, subject types.Subject, password string) error {
	if password == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "password confirmation is required")
	}

	user, err := s.userRepo.GetByUsername(subject.Username)
	if err != nil {
		return err
	}

	valid, err := s.password.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return types.NewInternalError(types.ErrCodeInternalError, "failed to verify password", err)
	}
	if !valid {
		s.audit(subject.Username, "delete_account", "account", false, nil)
		return types.NewAuthenticationError(types.ErrCodeInvalidCredentials, "incorrect password")
	}

	if err := s.userRepo.CascadeDelete(ctx, user.Username); err != nil {
		return err
	}

	s.audit(subject.Username, "delete_account", "account", true, nil)
	return nil
}
