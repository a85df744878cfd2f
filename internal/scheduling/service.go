package scheduling

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

// Service owns the appointment lifecycle
type Service struct {
	appointments interfaces.AppointmentRepository
	notes        interfaces.ClinicalNoteRepository
	metrics      *monitoring.MetricsCollector
	logger       *logger.Logger
}

// NewService creates a new scheduling service. The metrics collector may be
// nil when monitoring is disabled.
func NewService(
	appointments interfaces.AppointmentRepository,
	notes interfaces.ClinicalNoteRepository,
	metrics *monitoring.MetricsCollector,
	log *logger.Logger,
) interfaces.SchedulingService {
	return &Service{
		appointments: appointments,
		notes:        notes,
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

// CreateAppointment books an appointment on behalf of the subject.
//
// Patients book for themselves and the request enters the queue pending.
// Staff books for a named patient, also pending. Clinicians book for a named
// patient, become the assigned clinician, and the appointment is accepted
// immediately; an optional history note rides along with the booking.
func (s *Service) CreateAppointment(subject types.Subject, req *types.AppointmentCreateRequest) (*types.Appointment, error) {
	if d := s.decide(subject, policy.ActionCreateAppointment, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	apt := &types.Appointment{
		ScheduledAt: req.ScheduledAt,
		Status:      types.StatusPending,
	}

	switch subject.Role {
	case types.RolePatient:
		apt.PatientUsername = subject.Username
		apt.ClinicianUsername = strings.TrimSpace(req.ClinicianUsername)
	case types.RoleStaff:
		apt.PatientUsername = strings.TrimSpace(req.PatientUsername)
		apt.ClinicianUsername = strings.TrimSpace(req.ClinicianUsername)
	case types.RoleClinician:
		apt.PatientUsername = strings.TrimSpace(req.PatientUsername)
		apt.ClinicianUsername = subject.Username
		apt.Status = types.StatusAccepted
	}

	if apt.PatientUsername == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "patient username is required")
	}
	if apt.ScheduledAt.IsZero() {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "scheduled time is required")
	}

	if _, err := s.appointments.Create(apt); err != nil {
		return nil, err
	}

	// A clinician booking may carry an initial history note. The appointment
	// is already committed at this point, so a note failure is logged and the
	// booking stands.
	if subject.Role == types.RoleClinician && strings.TrimSpace(req.NotesText) != "" {
		note := &types.ClinicalNote{
			PatientUsername:   apt.PatientUsername,
			ClinicianUsername: subject.Username,
			Text:              strings.TrimSpace(req.NotesText),
			RecordedAt:        timeNow(),
		}
		if _, err := s.notes.Create(note); err != nil {
			s.logger.WithError(err).WithField("appointment_id", apt.ID).
				Warn("Appointment created but initial history note failed")
		}
	}

	s.logger.Audit(subject.Username, "create", "appointment", true, map[string]interface{}{
		"appointment_id": apt.ID,
		"status":         apt.Status,
	})

	return apt, nil
}

// AcceptAppointment transitions an appointment to accepted. Accepting does not
// assign the acting clinician; assignment happens only at booking time.
func (s *Service) AcceptAppointment(subject types.Subject, id int64) error {
	return s.transition(subject, id, policy.ActionAcceptAppointment, types.StatusAccepted)
}

// RejectAppointment transitions an appointment to rejected
func (s *Service) RejectAppointment(subject types.Subject, id int64) error {
	return s.transition(subject, id, policy.ActionRejectAppointment, types.StatusRejected)
}

// transition runs the shared accept/reject path: existence first so a missing
// id is NotFound rather than Forbidden, then the policy decision, then an
// unconditional status write. Repeating a transition is a no-op by design.
func (s *Service) transition(subject types.Subject, id int64, action policy.Action, status types.AppointmentStatus) error {
	apt, err := s.appointments.GetByID(id)
	if err != nil {
		return err
	}

	if d := s.decide(subject, action, policy.Target{Appointment: apt}); !d.Allowed {
		s.logger.Audit(subject.Username, string(action), "appointment", false, map[string]interface{}{
			"appointment_id": id,
		})
		return d.Err()
	}

	if err := s.appointments.UpdateStatus(id, status); err != nil {
		return err
	}

	s.logger.Audit(subject.Username, string(action), "appointment", true, map[string]interface{}{
		"appointment_id": id,
		"status":         status,
	})
	return nil
}

// DeleteAppointment applies the differential deletion policy: the assigned
// clinician's delete hides the appointment from clinician and staff views but
// keeps it for the patient; the patient's delete removes the row outright.
func (s *Service) DeleteAppointment(subject types.Subject, id int64) (*types.DeleteResult, error) {
	apt, err := s.appointments.GetByID(id)
	if err != nil {
		return nil, err
	}

	d := s.decide(subject, policy.ActionDeleteAppointment, policy.Target{Appointment: apt})
	if !d.Allowed {
		s.logger.Audit(subject.Username, "delete", "appointment", false, map[string]interface{}{
			"appointment_id": id,
		})
		return nil, d.Err()
	}

	switch d.Mode {
	case types.DeleteModeSoft:
		err = s.appointments.MarkDeletedByClinician(id)
	case types.DeleteModeHard:
		err = s.appointments.Delete(id)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Audit(subject.Username, "delete", "appointment", true, map[string]interface{}{
		"appointment_id": id,
		"mode":           d.Mode,
	})

	return &types.DeleteResult{Mode: d.Mode}, nil
}

// ListVisibleAppointments returns the subject's role-scoped appointment view
func (s *Service) ListVisibleAppointments(subject types.Subject) ([]*types.Appointment, error) {
	if d := s.decide(subject, policy.ActionListAppointments, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	var (
		appts []*types.Appointment
		err   error
	)
	switch subject.Role {
	case types.RolePatient:
		appts, err = s.appointments.ListByPatient(subject.Username)
	case types.RoleClinician:
		appts, err = s.appointments.ListByClinician(subject.Username)
	case types.RoleStaff:
		appts, err = s.appointments.ListAll()
	}
	if err != nil {
		return nil, err
	}

	// The repository queries already narrow the set; the projection is the
	// single place the visibility rules are authoritative.
	return visibility.Appointments(subject, appts), nil
}
