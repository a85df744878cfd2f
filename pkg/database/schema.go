package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the portal tables and indexes
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	tables := []string{
		createUsersTable,
		createAppointmentsTable,
		createClinicalNotesTable,
		createVisitNotesTable,
		createBillingEntriesTable,
		createStaffRecordsTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createUsersIndexes,
		createAppointmentsIndexes,
		createClinicalNotesIndexes,
		createVisitNotesIndexes,
		createBillingEntriesIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// SQL DDL statements for table creation.
// Ownership runs on username string equality, so patient/clinician columns are
// denormalized text with no foreign key into users.
// Usernames keep their original casing but must be unique case-insensitively,
// so uniqueness is enforced by the LOWER(username) index rather than a column
// constraint.
const (
	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createAppointmentsTable = `
		CREATE TABLE IF NOT EXISTS appointments (
			id BIGSERIAL PRIMARY KEY,
			patient_username VARCHAR(50) NOT NULL,
			clinician_username VARCHAR(50),
			scheduled_at TIMESTAMPTZ NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			deleted_by_clinician BOOLEAN NOT NULL DEFAULT FALSE
		);`

	createClinicalNotesTable = `
		CREATE TABLE IF NOT EXISTS clinical_notes (
			id BIGSERIAL PRIMARY KEY,
			patient_username VARCHAR(50) NOT NULL,
			clinician_username VARCHAR(50),
			text TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createVisitNotesTable = `
		CREATE TABLE IF NOT EXISTS visit_notes (
			id BIGSERIAL PRIMARY KEY,
			appointment_id BIGINT NOT NULL REFERENCES appointments(id),
			clinician_username VARCHAR(50) NOT NULL,
			text TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createBillingEntriesTable = `
		CREATE TABLE IF NOT EXISTS billing_entries (
			id BIGSERIAL PRIMARY KEY,
			patient_username VARCHAR(50) NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			description TEXT,
			billed_on DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createStaffRecordsTable = `
		CREATE TABLE IF NOT EXISTS staff_records (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			role VARCHAR(100),
			shift VARCHAR(100)
		);`
)

// SQL DDL statements for index creation
const (
	createUsersIndexes = `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username));`

	createAppointmentsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_username);
		CREATE INDEX IF NOT EXISTS idx_appointments_clinician ON appointments(clinician_username);`

	createClinicalNotesIndexes = `
		CREATE INDEX IF NOT EXISTS idx_clinical_notes_patient ON clinical_notes(patient_username);`

	createVisitNotesIndexes = `
		CREATE INDEX IF NOT EXISTS idx_visit_notes_appointment ON visit_notes(appointment_id);`

	createBillingEntriesIndexes = `
		CREATE INDEX IF NOT EXISTS idx_billing_entries_patient ON billing_entries(patient_username);`
)

// SeedUser is a default account inserted at startup when absent
type SeedUser struct {
	Username     string
	PasswordHash string
	Role         string
}

// SeedUsers inserts the default demo accounts if they do not exist yet
func (db *DB) SeedUsers(ctx context.Context, users []SeedUser) error {
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (LOWER(username)) DO NOTHING`

	for _, u := range users {
		if _, err := db.ExecContext(ctx, query, u.Username, u.PasswordHash, u.Role); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
		db.logger.WithField("username", u.Username).Debug("Seed user ensured")
	}

	return nil
}
