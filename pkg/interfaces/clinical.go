package interfaces

import "github.com/Smitha2005/hospitalmanagementsystem/pkg/types"

// ClinicalService owns medical-history and visit-note operations
type ClinicalService interface {
	AddClinicalNote(subject types.Subject, patientUsername, text string) (*types.ClinicalNote, error)
	DeleteClinicalNote(subject types.Subject, id int64) error
	ListClinicalNotes(subject types.Subject, patientUsername string) ([]*types.ClinicalNote, error)
	AddVisitNote(subject types.Subject, appointmentID int64, text string) (*types.VisitNote, error)
	DeleteVisitNote(subject types.Subject, id int64) error
	GetAppointmentDossier(subject types.Subject, appointmentID int64) (*types.AppointmentDossier, error)
}

// ClinicalNoteRepository defines medical-history persistence operations
type ClinicalNoteRepository interface {
	Create(note *types.ClinicalNote) (int64, error)
	GetByID(id int64) (*types.ClinicalNote, error)
	Delete(id int64) error
	ListByPatient(username string) ([]*types.ClinicalNote, error)
}

// VisitNoteRepository defines per-appointment note persistence operations
type VisitNoteRepository interface {
	Create(note *types.VisitNote) (int64, error)
	GetByID(id int64) (*types.VisitNote, error)
	Delete(id int64) error
	ListByAppointment(appointmentID int64) ([]*types.VisitNote, error)
}
