package types

import "time"

// AppointmentStatus represents appointment status values
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusAccepted AppointmentStatus = "accepted"
	StatusRejected AppointmentStatus = "rejected"
)

// Appointment represents a scheduled care episode.
//
// DeletedByClinician is a visibility flag, not a status: a soft-deleted
// appointment stays visible to its patient and disappears from clinician and
// staff listings. Clinician usernames may be empty for unassigned requests.
type Appointment struct {
	ID                 int64             `json:"id" db:"id"`
	PatientUsername    string            `json:"patient_username" db:"patient_username"`
	ClinicianUsername  string            `json:"clinician_username,omitempty" db:"clinician_username"`
	ScheduledAt        time.Time         `json:"scheduled_at" db:"scheduled_at"`
	Status             AppointmentStatus `json:"status" db:"status"`
	DeletedByClinician bool              `json:"deleted_by_clinician" db:"deleted_by_clinician"`
}

// AppointmentCreateRequest represents an appointment booking request.
// Patients book for themselves; staff and clinicians name the patient.
// NotesText is only honored on clinician-created appointments.
type AppointmentCreateRequest struct {
	PatientUsername   string    `json:"patient_username,omitempty"`
	ClinicianUsername string    `json:"clinician_username,omitempty"`
	ScheduledAt       time.Time `json:"scheduled_at"`
	NotesText         string    `json:"notes,omitempty"`
}

// DeleteMode distinguishes the two appointment deletion paths
type DeleteMode string

const (
	// DeleteModeSoft marks the row deleted_by_clinician; the record survives.
	DeleteModeSoft DeleteMode = "soft"
	// DeleteModeHard removes the row permanently.
	DeleteModeHard DeleteMode = "hard"
)

// DeleteResult reports which deletion mode was applied
type DeleteResult struct {
	Mode DeleteMode `json:"mode"`
}
