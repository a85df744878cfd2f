package iam

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/config"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// TokenManager issues and validates session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a new token manager from session configuration
func NewTokenManager(cfg *config.SessionConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.SecretKey),
		ttl:    time.Duration(cfg.TokenTTL) * time.Second,
		issuer: cfg.Issuer,
	}
}

// sessionClaims represents the JWT payload carried by a session token
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for an authenticated user
func (tm *TokenManager) IssueToken(user *types.User) (*types.AuthToken, error) {
	now := time.Now()

	claims := &sessionClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tm.issuer,
			Subject:   user.Username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &types.AuthToken{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tm.ttl.Seconds()),
		IssuedAt:    now,
	}, nil
}

// ValidateToken validates a session token and returns the identity it carries
func (tm *TokenManager) ValidateToken(tokenString string) (*types.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		return nil, types.NewAuthenticationError(types.ErrCodeUnauthorized, "invalid session token")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, types.NewAuthenticationError(types.ErrCodeUnauthorized, "invalid session token")
	}

	role := types.UserRole(claims.Role)
	if !role.Valid() {
		return nil, types.NewAuthenticationError(types.ErrCodeUnauthorized, "unknown role in session token")
	}

	return &types.UserClaims{
		Username: claims.Username,
		Role:     role,
	}, nil
}
