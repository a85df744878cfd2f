package directory

import (
	"database/sql"
	"fmt"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/database"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// BillingRepository implements billing persistence
type BillingRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *database.DB, log *logger.Logger) interfaces.BillingRepository {
	return &BillingRepository{
		db:     db,
		logger: log,
	}
}

// Create inserts a new billing entry and returns its id
func (r *BillingRepository) Create(entry *types.BillingEntry) (int64, error) {
	query := `
		INSERT INTO billing_entries (patient_username, amount, description, billed_on, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(query,
		entry.PatientUsername,
		entry.Amount,
		entry.Description,
		entry.BilledOn,
		entry.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create billing entry: %w", err)
	}

	entry.ID = id
	return id, nil
}

// GetByID retrieves a billing entry by id
func (r *BillingRepository) GetByID(id int64) (*types.BillingEntry, error) {
	query := `
		SELECT id, patient_username, amount, COALESCE(description, ''), billed_on, created_at
		FROM billing_entries
		WHERE id = $1`

	var entry types.BillingEntry
	err := r.db.QueryRow(query, id).Scan(
		&entry.ID,
		&entry.PatientUsername,
		&entry.Amount,
		&entry.Description,
		&entry.BilledOn,
		&entry.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Billing entry not found")
		}
		return nil, fmt.Errorf("failed to get billing entry %d: %w", id, err)
	}

	return &entry, nil
}

// Delete removes a billing entry permanently
func (r *BillingRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM billing_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete billing entry %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "Billing entry not found")
	}
	return nil
}

// ListAll returns every billing entry, newest first
func (r *BillingRepository) ListAll() ([]*types.BillingEntry, error) {
	query := `
		SELECT id, patient_username, amount, COALESCE(description, ''), billed_on, created_at
		FROM billing_entries
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing entries: %w", err)
	}
	defer rows.Close()

	var entries []*types.BillingEntry
	for rows.Next() {
		var entry types.BillingEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.PatientUsername,
			&entry.Amount,
			&entry.Description,
			&entry.BilledOn,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan billing entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating billing entry rows: %w", err)
	}

	return entries, nil
}

// StaffRepository implements staff directory persistence
type StaffRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *database.DB, log *logger.Logger) interfaces.StaffRepository {
	return &StaffRepository{
		db:     db,
		logger: log,
	}
}

// Create inserts a new directory record and returns its id
func (r *StaffRepository) Create(rec *types.StaffRecord) (int64, error) {
	query := `
		INSERT INTO staff_records (name, role, shift)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(query, rec.Name, rec.Role, rec.Shift).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create staff record: %w", err)
	}

	rec.ID = id
	return id, nil
}

// GetByID retrieves a directory record by id
func (r *StaffRepository) GetByID(id int64) (*types.StaffRecord, error) {
	query := `
		SELECT id, name, COALESCE(role, ''), COALESCE(shift, '')
		FROM staff_records
		WHERE id = $1`

	var rec types.StaffRecord
	err := r.db.QueryRow(query, id).Scan(&rec.ID, &rec.Name, &rec.Role, &rec.Shift)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Staff record not found")
		}
		return nil, fmt.Errorf("failed to get staff record %d: %w", id, err)
	}

	return &rec, nil
}

// Delete removes a directory record permanently
func (r *StaffRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM staff_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff record %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "Staff record not found")
	}
	return nil
}

// Search returns directory records matching the term with a case-insensitive
// substring match on name, role, and shift. An empty term returns everything.
func (r *StaffRepository) Search(query string) ([]*types.StaffRecord, error) {
	stmt := `
		SELECT id, name, COALESCE(role, ''), COALESCE(shift, '')
		FROM staff_records
		WHERE name ILIKE $1 OR role ILIKE $1 OR shift ILIKE $1
		ORDER BY name ASC`

	rows, err := r.db.Query(stmt, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search staff records: %w", err)
	}
	defer rows.Close()

	var records []*types.StaffRecord
	for rows.Next() {
		var rec types.StaffRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Role, &rec.Shift); err != nil {
			return nil, fmt.Errorf("failed to scan staff record row: %w", err)
		}
		records = append(records, &rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff record rows: %w", err)
	}

	return records, nil
}
