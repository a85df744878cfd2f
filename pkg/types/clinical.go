package types

import "time"

// ClinicalNote represents a longitudinal medical-history entry for a patient.
// It is clinician-authored and not tied to a single appointment. Notes with an
// empty clinician username are legacy/unattributed entries visible to every
// clinician treating the patient.
type ClinicalNote struct {
	ID                int64     `json:"id" db:"id"`
	PatientUsername   string    `json:"patient_username" db:"patient_username"`
	ClinicianUsername string    `json:"clinician_username,omitempty" db:"clinician_username"`
	Text              string    `json:"text" db:"text"`
	RecordedAt        time.Time `json:"recorded_at" db:"recorded_at"`
}

// VisitNote represents a clinician note scoped to one appointment.
// Visit notes are visible to clinicians only.
type VisitNote struct {
	ID                int64     `json:"id" db:"id"`
	AppointmentID     int64     `json:"appointment_id" db:"appointment_id"`
	ClinicianUsername string    `json:"clinician_username" db:"clinician_username"`
	Text              string    `json:"text" db:"text"`
	RecordedAt        time.Time `json:"recorded_at" db:"recorded_at"`
}

// AppointmentDossier is the clinician's per-appointment working view:
// the appointment, the patient's history visible to the viewer, and the
// visit notes attached to the appointment, all newest-first.
type AppointmentDossier struct {
	Appointment *Appointment    `json:"appointment"`
	History     []*ClinicalNote `json:"history"`
	VisitNotes  []*VisitNote    `json:"visit_notes"`
}
