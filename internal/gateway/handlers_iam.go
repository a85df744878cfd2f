package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// handleRegister handles account signup
func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.UserRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	user, err := s.identity.Register(&req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordAuthAttempt("register", "success")
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created",
		"user": map[string]interface{}{
			"id":         user.ID,
			"username":   user.Username,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		},
	})
}

// handleLogin handles authentication
func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var credentials types.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	token, err := s.identity.Login(&credentials)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordAuthAttempt("login", "failure")
		}
		s.handleError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordAuthAttempt("login", "success")
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Authentication successful",
		"token":   token,
	})
}

// handleDeleteAccount removes the caller's account after password confirmation
func (s *Service) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	if err := s.identity.DeleteAccount(r.Context(), subject, req.Password); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Account deleted",
	})
}

// handleListClinicians lists clinician accounts for the booking form
func (s *Service) handleListClinicians(w http.ResponseWriter, r *http.Request) {
	if _, ok := subjectFromRequest(r); !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	clinicians, err := s.identity.ListClinicians()
	if err != nil {
		s.handleError(w, err)
		return
	}

	names := make([]string, 0, len(clinicians))
	for _, c := range clinicians {
		names = append(names, c.Username)
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"clinicians": names,
	})
}
