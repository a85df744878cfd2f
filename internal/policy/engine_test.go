package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

var (
	alice = types.Subject{Username: "alice", Role: types.RoleClinician}
	bob   = types.Subject{Username: "bob", Role: types.RolePatient}
	carol = types.Subject{Username: "carol", Role: types.RoleStaff}
)

func TestDecide_RoleGates(t *testing.T) {
	tests := []struct {
		name    string
		subject types.Subject
		action  Action
		allowed bool
	}{
		{"patient cannot accept", bob, ActionAcceptAppointment, false},
		{"staff cannot accept", carol, ActionAcceptAppointment, false},
		{"staff cannot delete appointment", carol, ActionDeleteAppointment, false},
		{"patient cannot add clinical note", bob, ActionAddClinicalNote, false},
		{"staff cannot read clinical notes", carol, ActionListClinicalNotes, false},
		{"patient cannot add billing", bob, ActionAddBillingEntry, false},
		{"clinician cannot add billing", alice, ActionAddBillingEntry, false},
		{"staff can add billing", carol, ActionAddBillingEntry, true},
		{"clinician can search staff", alice, ActionSearchStaff, true},
		{"staff can search staff", carol, ActionSearchStaff, true},
		{"patient cannot search staff", bob, ActionSearchStaff, false},
		{"patient cannot view visit notes", bob, ActionViewVisitNotes, false},
		{"everyone can create appointments", bob, ActionCreateAppointment, true},
		{"everyone can delete their account", carol, ActionDeleteAccount, true},
	}

	apt := &types.Appointment{ID: 1, PatientUsername: "bob", ClinicianUsername: "alice"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.subject, tt.action, Target{Appointment: apt})
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Error(t, d.Err())
				assert.True(t, types.IsErrorType(d.Err(), types.ErrorTypeAuthorization))
			}
		})
	}
}

func TestDecide_AppointmentDeletionModes(t *testing.T) {
	apt := &types.Appointment{ID: 7, PatientUsername: "bob", ClinicianUsername: "alice"}

	t.Run("assigned clinician soft-deletes", func(t *testing.T) {
		d := Decide(alice, ActionDeleteAppointment, Target{Appointment: apt})
		assert.True(t, d.Allowed)
		assert.Equal(t, types.DeleteModeSoft, d.Mode)
	})

	t.Run("owning patient hard-deletes", func(t *testing.T) {
		d := Decide(bob, ActionDeleteAppointment, Target{Appointment: apt})
		assert.True(t, d.Allowed)
		assert.Equal(t, types.DeleteModeHard, d.Mode)
	})

	t.Run("other clinician denied", func(t *testing.T) {
		other := types.Subject{Username: "dave", Role: types.RoleClinician}
		d := Decide(other, ActionDeleteAppointment, Target{Appointment: apt})
		assert.False(t, d.Allowed)
	})

	t.Run("other patient denied", func(t *testing.T) {
		other := types.Subject{Username: "erin", Role: types.RolePatient}
		d := Decide(other, ActionDeleteAppointment, Target{Appointment: apt})
		assert.False(t, d.Allowed)
	})
}

func TestDecide_OwnershipIsCaseInsensitive(t *testing.T) {
	apt := &types.Appointment{ID: 9, PatientUsername: "Bob", ClinicianUsername: "ALICE"}

	d := Decide(alice, ActionDeleteAppointment, Target{Appointment: apt})
	assert.True(t, d.Allowed)
	assert.Equal(t, types.DeleteModeSoft, d.Mode)

	d = Decide(bob, ActionDeleteAppointment, Target{Appointment: apt})
	assert.True(t, d.Allowed)
	assert.Equal(t, types.DeleteModeHard, d.Mode)
}

func TestDecide_AppointmentTransitions(t *testing.T) {
	t.Run("assigned clinician may accept", func(t *testing.T) {
		apt := &types.Appointment{ID: 1, PatientUsername: "bob", ClinicianUsername: "alice"}
		d := Decide(alice, ActionAcceptAppointment, Target{Appointment: apt})
		assert.True(t, d.Allowed)
	})

	t.Run("any clinician may pick up an unassigned request", func(t *testing.T) {
		apt := &types.Appointment{ID: 2, PatientUsername: "bob"}
		d := Decide(alice, ActionAcceptAppointment, Target{Appointment: apt})
		assert.True(t, d.Allowed)
	})

	t.Run("unassigned clinician may not transition an assigned appointment", func(t *testing.T) {
		apt := &types.Appointment{ID: 3, PatientUsername: "bob", ClinicianUsername: "dave"}
		d := Decide(alice, ActionRejectAppointment, Target{Appointment: apt})
		assert.False(t, d.Allowed)
	})
}

func TestDecide_NoteDeletionIsAuthorOnly(t *testing.T) {
	note := &types.ClinicalNote{ID: 1, PatientUsername: "bob", ClinicianUsername: "alice"}
	visit := &types.VisitNote{ID: 2, AppointmentID: 1, ClinicianUsername: "alice"}

	assert.True(t, Decide(alice, ActionDeleteClinicalNote, Target{ClinicalNote: note}).Allowed)
	assert.True(t, Decide(alice, ActionDeleteVisitNote, Target{VisitNote: visit}).Allowed)

	other := types.Subject{Username: "dave", Role: types.RoleClinician}
	assert.False(t, Decide(other, ActionDeleteClinicalNote, Target{ClinicalNote: note}).Allowed)
	assert.False(t, Decide(other, ActionDeleteVisitNote, Target{VisitNote: visit}).Allowed)
}

// Same inputs must always produce the same decision: the engine holds no state.
func TestDecide_IsPure(t *testing.T) {
	apt := &types.Appointment{ID: 4, PatientUsername: "bob", ClinicianUsername: "alice"}

	first := Decide(alice, ActionDeleteAppointment, Target{Appointment: apt})
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Decide(alice, ActionDeleteAppointment, Target{Appointment: apt}))
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow().Err())
	err := Deny("nope").Err()
	assert.Error(t, err)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))
}
