package policy

import (
	"fmt"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// Action identifies a portal operation for authorization purposes
type Action string

const (
	ActionCreateAppointment Action = "appointment:create"
	ActionAcceptAppointment Action = "appointment:accept"
	ActionRejectAppointment Action = "appointment:reject"
	ActionDeleteAppointment Action = "appointment:delete"
	ActionListAppointments  Action = "appointment:list"

	ActionAddClinicalNote    Action = "clinical_note:add"
	ActionDeleteClinicalNote Action = "clinical_note:delete"
	ActionListClinicalNotes  Action = "clinical_note:list"

	ActionAddVisitNote    Action = "visit_note:add"
	ActionDeleteVisitNote Action = "visit_note:delete"
	ActionViewVisitNotes  Action = "visit_note:view"

	ActionAddBillingEntry    Action = "billing:add"
	ActionDeleteBillingEntry Action = "billing:delete"
	ActionListBilling        Action = "billing:list"

	ActionAddStaffRecord    Action = "staff_record:add"
	ActionDeleteStaffRecord Action = "staff_record:delete"
	ActionSearchStaff       Action = "staff_record:search"

	ActionDeleteAccount Action = "account:delete"
)

// roleGate maps each action to the minimal set of roles allowed to attempt it.
// Evaluated before any ownership check; a role outside the set is denied
// regardless of what it owns.
var roleGate = map[Action][]types.UserRole{
	ActionCreateAppointment: {types.RolePatient, types.RoleClinician, types.RoleStaff},
	ActionAcceptAppointment: {types.RoleClinician},
	ActionRejectAppointment: {types.RoleClinician},
	ActionDeleteAppointment: {types.RolePatient, types.RoleClinician},
	ActionListAppointments:  {types.RolePatient, types.RoleClinician, types.RoleStaff},

	ActionAddClinicalNote:    {types.RoleClinician},
	ActionDeleteClinicalNote: {types.RoleClinician},
	ActionListClinicalNotes:  {types.RolePatient, types.RoleClinician},

	ActionAddVisitNote:    {types.RoleClinician},
	ActionDeleteVisitNote: {types.RoleClinician},
	ActionViewVisitNotes:  {types.RoleClinician},

	ActionAddBillingEntry:    {types.RoleStaff},
	ActionDeleteBillingEntry: {types.RoleStaff},
	ActionListBilling:        {types.RoleStaff},

	ActionAddStaffRecord:    {types.RoleClinician, types.RoleStaff},
	ActionDeleteStaffRecord: {types.RoleClinician, types.RoleStaff},
	ActionSearchStaff:       {types.RoleClinician, types.RoleStaff},

	ActionDeleteAccount: {types.RolePatient, types.RoleClinician, types.RoleStaff},
}

// Target carries the already-loaded entity snapshot a decision runs against.
// Existence is the caller's concern: a missing target id must surface as
// NotFound before Decide is ever called, so 404 and 403 stay distinguishable.
type Target struct {
	Appointment  *types.Appointment
	ClinicalNote *types.ClinicalNote
	VisitNote    *types.VisitNote
}

// Decision is the outcome of an authorization check
type Decision struct {
	Allowed bool
	// Mode is set when an allowed appointment deletion resolves to soft or hard.
	Mode   types.DeleteMode
	Reason string
}

// Allow returns a permitting decision
func Allow() Decision {
	return Decision{Allowed: true}
}

// AllowDelete returns a permitting decision carrying the resolved deletion mode
func AllowDelete(mode types.DeleteMode) Decision {
	return Decision{Allowed: true, Mode: mode}
}

// Deny returns a refusing decision with a reason
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a denial into the error surfaced to callers
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return types.NewAuthorizationError(types.ErrCodeForbidden, d.Reason)
}

// Decide is the pure authorization function: no I/O, no hidden state.
// Rules run in priority order: the role gate first, then ownership, then
// (for appointment deletion) resolution of the deletion mode.
func Decide(subject types.Subject, action Action, target Target) Decision {
	if !roleAllowed(subject.Role, action) {
		return Deny(fmt.Sprintf("role %s may not perform %s", subject.Role, action))
	}

	switch action {
	case ActionAcceptAppointment, ActionRejectAppointment:
		return decideAppointmentTransition(subject, target.Appointment)
	case ActionDeleteAppointment:
		return decideAppointmentDeletion(subject, target.Appointment)
	case ActionDeleteClinicalNote:
		return decideClinicalNoteDeletion(subject, target.ClinicalNote)
	case ActionDeleteVisitNote:
		return decideVisitNoteDeletion(subject, target.VisitNote)
	}

	return Allow()
}

func roleAllowed(role types.UserRole, action Action) bool {
	for _, allowed := range roleGate[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// decideAppointmentTransition gates accept/reject. The assigned clinician may
// transition; so may any clinician when the appointment is still unassigned,
// which is how pending walk-in requests get picked up.
func decideAppointmentTransition(subject types.Subject, apt *types.Appointment) Decision {
	if apt.ClinicianUsername == "" {
		return Allow()
	}
	if !types.SameUser(apt.ClinicianUsername, subject.Username) {
		return Deny("only the assigned clinician may transition this appointment")
	}
	return Allow()
}

// decideAppointmentDeletion resolves the differential deletion policy: the
// assigned clinician soft-deletes (the record survives for the patient), the
// owning patient hard-deletes (full retraction). Nobody else may delete.
func decideAppointmentDeletion(subject types.Subject, apt *types.Appointment) Decision {
	switch subject.Role {
	case types.RoleClinician:
		if types.SameUser(apt.ClinicianUsername, subject.Username) {
			return AllowDelete(types.DeleteModeSoft)
		}
		return Deny("only the assigned clinician may delete this appointment")
	case types.RolePatient:
		if types.SameUser(apt.PatientUsername, subject.Username) {
			return AllowDelete(types.DeleteModeHard)
		}
		return Deny("only the owning patient may delete this appointment")
	}
	return Deny("role may not delete appointments")
}

// decideClinicalNoteDeletion allows only the authoring clinician; staff has no
// override path.
func decideClinicalNoteDeletion(subject types.Subject, note *types.ClinicalNote) Decision {
	if !types.SameUser(note.ClinicianUsername, subject.Username) {
		return Deny("only the authoring clinician may delete this note")
	}
	return Allow()
}

func decideVisitNoteDeletion(subject types.Subject, note *types.VisitNote) Decision {
	if !types.SameUser(note.ClinicianUsername, subject.Username) {
		return Deny("only the authoring clinician may delete this note")
	}
	return Allow()
}
