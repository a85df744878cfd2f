package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// pathID extracts the numeric id route variable
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// handleCreateAppointment books an appointment for the caller's role
func (s *Service) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req types.AppointmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	apt, err := s.scheduling.CreateAppointment(subject, &req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message":     "Appointment created",
		"appointment": apt,
	})
}

// handleListAppointments returns the caller's role-scoped appointment view
func (s *Service) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	appts, err := s.scheduling.ListVisibleAppointments(subject)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
	})
}

// handleAcceptAppointment transitions an appointment to accepted
func (s *Service) handleAcceptAppointment(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.scheduling.AcceptAppointment, "Appointment accepted")
}

// handleRejectAppointment transitions an appointment to rejected
func (s *Service) handleRejectAppointment(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.scheduling.RejectAppointment, "Appointment rejected")
}

func (s *Service) handleTransition(w http.ResponseWriter, r *http.Request,
	transition func(types.Subject, int64) error, message string) {

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

	if err := transition(subject, id); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": message,
	})
}

// handleDeleteAppointment applies the role-dependent deletion policy
func (s *Service) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.scheduling.DeleteAppointment(subject, id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Appointment deleted",
		"mode":    result.Mode,
	})
}
