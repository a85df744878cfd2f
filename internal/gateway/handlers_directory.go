package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// handleAddBillingEntry records a charge against a patient
func (s *Service) handleAddBillingEntry(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req types.BillingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	entry, err := s.directory.AddBillingEntry(subject, &req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message": "Billing entry recorded",
		"entry":   entry,
	})
}

// handleListBilling returns the billing ledger
func (s *Service) handleListBilling(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	entries, err := s.directory.ListBillingEntries(subject)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// handleDeleteBillingEntry removes a charge
func (s *Service) handleDeleteBillingEntry(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid entry id")
		return
	}

	if err := s.directory.DeleteBillingEntry(subject, id); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Billing entry deleted",
	})
}

// handleAddStaffRecord adds a directory entry
func (s *Service) handleAddStaffRecord(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req types.StaffCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid request body")
		return
	}

	rec, err := s.directory.AddStaffRecord(subject, &req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message": "Staff record added",
		"record":  rec,
	})
}

// handleDeleteStaffRecord removes a directory entry
func (s *Service) handleDeleteStaffRecord(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, types.ErrCodeInvalidInput, "invalid record id")
		return
	}

	if err := s.directory.DeleteStaffRecord(subject, id); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Staff record deleted",
	})
}

// handleSearchStaff runs a directory search; the q parameter is the term
func (s *Service) handleSearchStaff(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromRequest(r)
	if !ok {
		s.writeErrorResponse(w, http.StatusUnauthorized, types.ErrCodeUnauthorized, "not authenticated")
		return
	}

	records, err := s.directory.SearchStaff(subject, r.URL.Query().Get("q"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"staff": records,
	})
}
