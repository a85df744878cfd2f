package iam

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/database"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// UserRepository implements user persistence
type UserRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB, log *logger.Logger) interfaces.UserRepository {
	return &UserRepository{
		db:     db,
		logger: log,
	}
}

// Create creates a new user in the database. The unique index on
// LOWER(username) rejects duplicates that differ only in case, so "Bob"
// cannot register alongside "bob".
func (r *UserRepository) Create(user *types.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return types.NewConflictError(types.ErrCodeUsernameExists, "Username taken")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.WithSubject(user.Username, string(user.Role)).Info("User created")
	return nil
}

// GetByUsername retrieves a user by username. Usernames are compared
// case-insensitively everywhere, lookup included.
func (r *UserRepository) GetByUsername(username string) (*types.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)`

	var user types.User
	err := r.db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// ListByRole retrieves all users with the given role
func (r *UserRepository) ListByRole(role types.UserRole) ([]*types.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY username ASC`

	rows, err := r.db.Query(query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// CascadeDelete removes a user account together with every appointment and
// clinical note carrying the username as patient or clinician, in a single
// transaction. Cascade scope is declared here and nowhere else.
func (r *UserRepository) CascadeDelete(ctx context.Context, username string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM visit_notes WHERE appointment_id IN (
			SELECT id FROM appointments
			WHERE LOWER(patient_username) = LOWER($1) OR LOWER(clinician_username) = LOWER($1))`,
		`DELETE FROM appointments WHERE LOWER(patient_username) = LOWER($1) OR LOWER(clinician_username) = LOWER($1)`,
		`DELETE FROM clinical_notes WHERE LOWER(patient_username) = LOWER($1) OR LOWER(clinician_username) = LOWER($1)`,
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, username); err != nil {
			return fmt.Errorf("failed to cascade delete records for %s: %w", username, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE LOWER(username) = LOWER($1)`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "User not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cascade delete: %w", err)
	}

	r.logger.WithField("username", username).Info("Account and associated records deleted")
	return nil
}
