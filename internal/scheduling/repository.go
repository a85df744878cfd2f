package scheduling

import (
	"database/sql"
	"fmt"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/database"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

const appointmentColumns = `id, patient_username, COALESCE(clinician_username, ''), scheduled_at, status, deleted_by_clinician`

// AppointmentRepository implements appointment persistence
type AppointmentRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *database.DB, log *logger.Logger) interfaces.AppointmentRepository {
	return &AppointmentRepository{
		db:     db,
		logger: log,
	}
}

// Create inserts a new appointment and returns its id
func (r *AppointmentRepository) Create(apt *types.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (patient_username, clinician_username, scheduled_at, status, deleted_by_clinician)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(query,
		apt.PatientUsername,
		apt.ClinicianUsername,
		apt.ScheduledAt,
		apt.Status,
		apt.DeletedByClinician,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}

	apt.ID = id
	return id, nil
}

// GetByID retrieves an appointment by id. Soft-deleted rows are returned too;
// visibility is the caller's concern.
func (r *AppointmentRepository) GetByID(id int64) (*types.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var apt types.Appointment
	err := r.db.QueryRow(query, id).Scan(
		&apt.ID,
		&apt.PatientUsername,
		&apt.ClinicianUsername,
		&apt.ScheduledAt,
		&apt.Status,
		&apt.DeletedByClinician,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Appointment not found")
		}
		return nil, fmt.Errorf("failed to get appointment %d: %w", id, err)
	}

	return &apt, nil
}

// UpdateStatus sets an appointment's lifecycle status
func (r *AppointmentRepository) UpdateStatus(id int64, status types.AppointmentStatus) error {
	result, err := r.db.Exec(`UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment %d status: %w", id, err)
	}
	return r.requireRow(result, id)
}

// MarkDeletedByClinician flips the soft-delete flag. The row survives so the
// patient keeps seeing the appointment.
func (r *AppointmentRepository) MarkDeletedByClinician(id int64) error {
	result, err := r.db.Exec(`UPDATE appointments SET deleted_by_clinician = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete appointment %d: %w", id, err)
	}
	return r.requireRow(result, id)
}

// Delete removes an appointment row permanently, visit notes first
func (r *AppointmentRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM visit_notes WHERE appointment_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete visit notes for appointment %d: %w", id, err)
	}

	result, err := r.db.Exec(`DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	return r.requireRow(result, id)
}

// ListByPatient returns every appointment for a patient, soft-deleted included
func (r *AppointmentRepository) ListByPatient(username string) ([]*types.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE LOWER(patient_username) = LOWER($1)
		ORDER BY scheduled_at DESC`
	return r.list(query, username)
}

// ListByClinician returns a clinician's assigned appointments that they have
// not soft-deleted
func (r *AppointmentRepository) ListByClinician(username string) ([]*types.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE LOWER(clinician_username) = LOWER($1) AND deleted_by_clinician = FALSE
		ORDER BY scheduled_at DESC`
	return r.list(query, username)
}

// ListAll returns every appointment in the system, soft-deleted included.
// The visibility layer decides what each role actually sees.
func (r *AppointmentRepository) ListAll() ([]*types.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY scheduled_at DESC`
	return r.list(query)
}

func (r *AppointmentRepository) list(query string, args ...interface{}) ([]*types.Appointment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appts []*types.Appointment
	for rows.Next() {
		var apt types.Appointment
		if err := rows.Scan(
			&apt.ID,
			&apt.PatientUsername,
			&apt.ClinicianUsername,
			&apt.ScheduledAt,
			&apt.Status,
			&apt.DeletedByClinician,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appts = append(appts, &apt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}

	return appts, nil
}

func (r *AppointmentRepository) requireRow(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "Appointment not found")
	}
	return nil
}
