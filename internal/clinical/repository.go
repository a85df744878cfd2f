package clinical

import (
	"database/sql"
	"fmt"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/database"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// ClinicalNoteRepository implements medical-history persistence
type ClinicalNoteRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewClinicalNoteRepository creates a new clinical note repository
func NewClinicalNoteRepository(db *database.DB, log *logger.Logger) interfaces.ClinicalNoteRepository {
	return &ClinicalNoteRepository{
		db:     db,
		logger: log,
	}
}

// Create inserts a new clinical note and returns its id
func (r *ClinicalNoteRepository) Create(note *types.ClinicalNote) (int64, error) {
	query := `
		INSERT INTO clinical_notes (patient_username, clinician_username, text, recorded_at)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(query,
		note.PatientUsername,
		note.ClinicianUsername,
		note.Text,
		note.RecordedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create clinical note: %w", err)
	}

	note.ID = id
	return id, nil
}

// GetByID retrieves a clinical note by id
func (r *ClinicalNoteRepository) GetByID(id int64) (*types.ClinicalNote, error) {
	query := `
		SELECT id, patient_username, COALESCE(clinician_username, ''), text, recorded_at
		FROM clinical_notes
		WHERE id = $1`

	var note types.ClinicalNote
	err := r.db.QueryRow(query, id).Scan(
		&note.ID,
		&note.PatientUsername,
		&note.ClinicianUsername,
		&note.Text,
		&note.RecordedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Note not found")
		}
		return nil, fmt.Errorf("failed to get clinical note %d: %w", id, err)
	}

	return &note, nil
}

// Delete removes a clinical note permanently
func (r *ClinicalNoteRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM clinical_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinical note %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "Note not found")
	}
	return nil
}

// ListByPatient returns every clinical note for a patient, newest first
func (r *ClinicalNoteRepository) ListByPatient(username string) ([]*types.ClinicalNote, error) {
	query := `
		SELECT id, patient_username, COALESCE(clinician_username, ''), text, recorded_at
		FROM clinical_notes
		WHERE LOWER(patient_username) = LOWER($1)
		ORDER BY recorded_at DESC`

	rows, err := r.db.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	defer rows.Close()

	var notes []*types.ClinicalNote
	for rows.Next() {
		var note types.ClinicalNote
		if err := rows.Scan(
			&note.ID,
			&note.PatientUsername,
			&note.ClinicianUsername,
			&note.Text,
			&note.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clinical note row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clinical note rows: %w", err)
	}

	return notes, nil
}

// VisitNoteRepository implements per-appointment note persistence
type VisitNoteRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewVisitNoteRepository creates a new visit note repository
func NewVisitNoteRepository(db *database.DB, log *logger.Logger) interfaces.VisitNoteRepository {
	return &VisitNoteRepository{
		db:     db,
		logger: log,
	}
}

// Create inserts a new visit note and returns its id
func (r *VisitNoteRepository) Create(note *types.VisitNote) (int64, error) {
	query := `
		INSERT INTO visit_notes (appointment_id, clinician_username, text, recorded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(query,
		note.AppointmentID,
		note.ClinicianUsername,
		note.Text,
		note.RecordedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create visit note: %w", err)
	}

	note.ID = id
	return id, nil
}

// GetByID retrieves a visit note by id
func (r *VisitNoteRepository) GetByID(id int64) (*types.VisitNote, error) {
	query := `
		SELECT id, appointment_id, clinician_username, text, recorded_at
		FROM visit_notes
		WHERE id = $1`

	var note types.VisitNote
	err := r.db.QueryRow(query, id).Scan(
		&note.ID,
		&note.AppointmentID,
		&note.ClinicianUsername,
		&note.Text,
		&note.RecordedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Note not found")
		}
		return nil, fmt.Errorf("failed to get visit note %d: %w", id, err)
	}

	return &note, nil
}

// Delete removes a visit note permanently
func (r *VisitNoteRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM visit_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete visit note %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "Note not found")
	}
	return nil
}

// ListByAppointment returns every visit note for an appointment, newest first
func (r *VisitNoteRepository) ListByAppointment(appointmentID int64) ([]*types.VisitNote, error) {
	query := `
		SELECT id, appointment_id, clinician_username, text, recorded_at
		FROM visit_notes
		WHERE appointment_id = $1
		ORDER BY recorded_at DESC`

	rows, err := r.db.Query(query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visit notes: %w", err)
	}
	defer rows.Close()

	var notes []*types.VisitNote
	for rows.Next() {
		var note types.VisitNote
		if err := rows.Scan(
			&note.ID,
			&note.AppointmentID,
			&note.ClinicianUsername,
			&note.Text,
			&note.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visit note row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visit note rows: %w", err)
	}

	return notes, nil
}
