package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// handleAddClinicalNote records a history entry for a named patient
func (s *Service) handleAddClinicalNote(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	note, err := s.clinical.AddClinicalNote(subject, mux.Vars(r)["username"], req.Text)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message": "Note recorded",
		"note":    note,
	})
}

// handleListClinicalNotes returns a named patient's history scoped to the caller
func (s *Service) handleListClinicalNotes(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	notes, err := s.clinical.ListClinicalNotes(subject, mux.Vars(r)["username"])
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"history": notes,
	})
}

// handleListOwnHistory returns the calling patient's own history
func (s *Service) handleListOwnHistory(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	notes, err := s.clinical.ListClinicalNotes(subject, subject.Username)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"history": notes,
	})
}

// handleDeleteClinicalNote removes a history entry, author-only
func (s *Service) handleDeleteClinicalNote(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid note id")
		return
	}

	if err := s.clinical.DeleteClinicalNote(subject, id); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Note deleted",
	})
}

// handleAddVisitNote attaches a note to an appointment
func (s *Service) handleAddVisitNote(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid appointment id")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	note, err := s.clinical.AddVisitNote(subject, id, req.Text)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message": "Note recorded",
		"note":    note,
	})
}

// handleDeleteVisitNote removes a visit note, author-only
func (s *Service) handleDeleteVisitNote(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid note id")
		return
	}

	if err := s.clinical.DeleteVisitNote(subject, id); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Note deleted",
	})
}

// handleAppointmentDossier returns the clinician's working view of an appointment
func (s *Service) handleAppointmentDossier(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid appointment id")
		return
	}

	dossier, err := s.clinical.GetAppointmentDossier(subject, id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordRecordAccess(string(subject.Role), "dossier", "success")
	}

	s.writeJSONResponse(w, http.StatusOK, dossier)
}
