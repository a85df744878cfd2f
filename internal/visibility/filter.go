// Package visibility projects the record universe down to what a given
// subject may see. All soft-delete suppression lives here, so the rule that
// soft-deleted appointments stay visible to their patient and hidden from
// everyone else is enforced in one place.
package visibility

import (
	"sort"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// Appointments returns the subset of appointments the subject may see.
//
// Patients see their own appointments including clinician-soft-deleted ones.
// Clinicians see appointments assigned to them that they have not deleted.
// Staff sees the aggregate view with soft-deleted items hidden.
func Appointments(subject types.Subject, appts []*types.Appointment) []*types.Appointment {
	visible := make([]*types.Appointment, 0, len(appts))

	for _, apt := range appts {
		switch subject.Role {
		case types.RolePatient:
			if types.SameUser(apt.PatientUsername, subject.Username) {
				visible = append(visible, apt)
			}
		case types.RoleClinician:
			if types.SameUser(apt.ClinicianUsername, subject.Username) && !apt.DeletedByClinician {
				visible = append(visible, apt)
			}
		case types.RoleStaff:
			if !apt.DeletedByClinician {
				visible = append(visible, apt)
			}
		}
	}

	return visible
}

// ClinicianHistory returns the clinical notes for one patient that the viewing
// clinician may read: notes they authored plus unattributed legacy notes,
// newest first.
func ClinicianHistory(viewer string, notes []*types.ClinicalNote) []*types.ClinicalNote {
	visible := make([]*types.ClinicalNote, 0, len(notes))

	for _, note := range notes {
		if note.ClinicianUsername == "" || types.SameUser(note.ClinicianUsername, viewer) {
			visible = append(visible, note)
		}
	}

	SortNotesNewestFirst(visible)
	return visible
}

// SortNotesNewestFirst orders clinical notes most-recent-first in place
func SortNotesNewestFirst(notes []*types.ClinicalNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].RecordedAt.After(notes[j].RecordedAt)
	})
}

// SortVisitNotesNewestFirst orders visit notes most-recent-first in place
func SortVisitNotesNewestFirst(notes []*types.VisitNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].RecordedAt.After(notes[j].RecordedAt)
	})
}
