package clinical

import (
	"strings"
	"time"

	"github.com/Smitha2005/hospitalmanagementsystem/internal/policy"
	"github.com/Smitha2005/hospitalmanagementsystem/internal/visibility"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/monitoring"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// timeNow is swapped out in tests
var timeNow = time.Now

// Service owns medical-history and visit-note operations
type Service struct {
	notes        interfaces.ClinicalNoteRepository
	visitNotes   interfaces.VisitNoteRepository
	appointments interfaces.AppointmentRepository
	metrics      *monitoring.MetricsCollector
	logger       *logger.Logger
}

// NewService creates a new clinical service. The metrics collector may be nil
// when monitoring is disabled.
func NewService(
	notes interfaces.ClinicalNoteRepository,
	visitNotes interfaces.VisitNoteRepository,
	appointments interfaces.AppointmentRepository,
	metrics *monitoring.MetricsCollector,
	log *logger.Logger,
) interfaces.ClinicalService {
	return &Service{
		notes:        notes,
		visitNotes:   visitNotes,
		appointments: appointments,
		metrics:      metrics,
		logger:       log,
	}
}

// decide runs the policy engine and records the outcome
func (s *Service) decide(subject types.Subject, action policy.Action, target policy.Target) policy.Decision {
	d := policy.Decide(subject, action, target)
	if s.metrics != nil {
		s.metrics.RecordAuthzDecision(string(action), string(subject.Role), d.Allowed)
	}
	return d
}

// AddClinicalNote records a history entry for a patient, attributed to the
// acting clinician
func (s *Service) AddClinicalNote(subject types.Subject, patientUsername, text string) (*types.ClinicalNote, error) {
	if d := s.decide(subject, policy.ActionAddClinicalNote, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	patientUsername = strings.TrimSpace(patientUsername)
	text = strings.TrimSpace(text)
	if patientUsername == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "patient username is required")
	}
	if text == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "note text is required")
	}

	note := &types.ClinicalNote{
		PatientUsername:   patientUsername,
		ClinicianUsername: subject.Username,
		Text:              text,
		RecordedAt:        timeNow(),
	}

	if _, err := s.notes.Create(note); err != nil {
		return nil, err
	}

	s.logger.Audit(subject.Username, "add", "clinical_note", true, map[string]interface{}{
		"note_id": note.ID,
		"patient": patientUsername,
	})

	return note, nil
}

// DeleteClinicalNote removes a history entry. Only the authoring clinician may
// do this, and a missing note surfaces as NotFound before any ownership check.
func (s *Service) DeleteClinicalNote(subject types.Subject, id int64) error {
	note, err := s.notes.GetByID(id)
	if err != nil {
		return err
	}

	d := s.decide(subject, policy.ActionDeleteClinicalNote, policy.Target{ClinicalNote: note})
	if !d.Allowed {
		s.logger.Audit(subject.Username, "delete", "clinical_note", false, map[string]interface{}{
			"note_id": id,
		})
		return d.Err()
	}

	if err := s.notes.Delete(id); err != nil {
		return err
	}

	s.logger.Audit(subject.Username, "delete", "clinical_note", true, map[string]interface{}{
		"note_id": id,
	})
	return nil
}

// ListClinicalNotes returns a patient's history scoped to the viewer.
// Patients read their own full history; clinicians read the notes they
// authored plus unattributed entries.
func (s *Service) ListClinicalNotes(subject types.Subject, patientUsername string) ([]*types.ClinicalNote, error) {
	if d := s.decide(subject, policy.ActionListClinicalNotes, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	switch subject.Role {
	case types.RolePatient:
		// Patients only ever read their own history, whatever the request names.
		notes, err := s.notes.ListByPatient(subject.Username)
		if err != nil {
			return nil, err
		}
		visibility.SortNotesNewestFirst(notes)
		return notes, nil
	case types.RoleClinician:
		patientUsername = strings.TrimSpace(patientUsername)
		if patientUsername == "" {
			return nil, types.NewValidationError(types.ErrCodeInvalidInput, "patient username is required")
		}
		notes, err := s.notes.ListByPatient(patientUsername)
		if err != nil {
			return nil, err
		}
		return visibility.ClinicianHistory(subject.Username, notes), nil
	}

	return nil, types.NewAuthorizationError(types.ErrCodeForbidden, "role may not read clinical notes")
}

// AddVisitNote attaches a note to an appointment. The appointment must exist;
// attribution is always the acting clinician.
func (s *Service) AddVisitNote(subject types.Subject, appointmentID int64, text string) (*types.VisitNote, error) {
	if d := s.decide(subject, policy.ActionAddVisitNote, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "note text is required")
	}

	if _, err := s.appointments.GetByID(appointmentID); err != nil {
		return nil, err
	}

	note := &types.VisitNote{
		AppointmentID:     appointmentID,
		ClinicianUsername: subject.Username,
		Text:              text,
		RecordedAt:        timeNow(),
	}

	if _, err := s.visitNotes.Create(note); err != nil {
		return nil, err
	}

	s.logger.Audit(subject.Username, "add", "visit_note", true, map[string]interface{}{
		"note_id":        note.ID,
		"appointment_id": appointmentID,
	})

	return note, nil
}

// DeleteVisitNote removes a visit note, author-only
func (s *Service) DeleteVisitNote(subject types.Subject, id int64) error {
	note, err := s.visitNotes.GetByID(id)
	if err != nil {
		return err
	}

	d := s.decide(subject, policy.ActionDeleteVisitNote, policy.Target{VisitNote: note})
	if !d.Allowed {
		s.logger.Audit(subject.Username, "delete", "visit_note", false, map[string]interface{}{
			"note_id": id,
		})
		return d.Err()
	}

	if err := s.visitNotes.Delete(id); err != nil {
		return err
	}

	s.logger.Audit(subject.Username, "delete", "visit_note", true, map[string]interface{}{
		"note_id": id,
	})
	return nil
}

// GetAppointmentDossier assembles the clinician's working view of one
// appointment: the appointment itself, the patient history visible to the
// viewer, and the attached visit notes.
func (s *Service) GetAppointmentDossier(subject types.Subject, appointmentID int64) (*types.AppointmentDossier, error) {
	apt, err := s.appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}

	if d := s.decide(subject, policy.ActionViewVisitNotes, policy.Target{Appointment: apt}); !d.Allowed {
		return nil, d.Err()
	}

	history, err := s.notes.ListByPatient(apt.PatientUsername)
	if err != nil {
		return nil, err
	}

	visitNotes, err := s.visitNotes.ListByAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	visibility.SortVisitNotesNewestFirst(visitNotes)

	return &types.AppointmentDossier{
		Appointment: apt,
		History:     visibility.ClinicianHistory(subject.Username, history),
		VisitNotes:  visitNotes,
	}, nil
}
