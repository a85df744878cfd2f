package types

import "time"

// BillingEntry represents a charge raised against a patient.
// There is no update operation; corrections are delete and recreate.
type BillingEntry struct {
	ID              int64      `json:"id" db:"id"`
	PatientUsername string     `json:"patient_username" db:"patient_username"`
	Amount          float64    `json:"amount" db:"amount"`
	Description     string     `json:"description,omitempty" db:"description"`
	BilledOn        *time.Time `json:"billed_on,omitempty" db:"billed_on"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// BillingCreateRequest represents a billing entry submission
type BillingCreateRequest struct {
	PatientUsername string     `json:"patient_username"`
	Amount          float64    `json:"amount"`
	Description     string     `json:"description,omitempty"`
	BilledOn        *time.Time `json:"billed_on,omitempty"`
}

// StaffRecord is a directory entry, not an identity: the name/role/shift are
// free text and carry no link to the users table.
type StaffRecord struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Role  string `json:"role,omitempty" db:"role"`
	Shift string `json:"shift,omitempty" db:"shift"`
}

// StaffCreateRequest represents a directory entry submission
type StaffCreateRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Shift string `json:"shift,omitempty"`
}
