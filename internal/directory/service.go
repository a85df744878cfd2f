package directory

import (
	"strings"
	"time"

	"github.com/Smitha2005/hospitalmanagementsystem/internal/policy"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// timeNow is swapped out in tests
var timeNow = time.Now

// Service owns the billing ledger and the staff directory
type Service struct {
	billing interfaces.BillingRepository
	staff   interfaces.StaffRepository
	logger  *logger.Logger
}

// NewService creates a new directory service
func NewService(
	billing interfaces.BillingRepository,
	staff interfaces.StaffRepository,
	log *logger.Logger,
) interfaces.DirectoryService {
	return &Service{
		billing: billing,
		staff:   staff,
		logger:  log,
	}
}

// AddBillingEntry records a charge against a patient, staff-only
func (s *Service) AddBillingEntry(subject types.Subject, req *types.BillingCreateRequest) (*types.BillingEntry, error) {
	if d := policy.Decide(subject, policy.ActionAddBillingEntry, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	patient := strings.TrimSpace(req.PatientUsername)
	if patient == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "patient username is required")
	}
	if req.Amount <= 0 {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "amount must be greater than zero")
	}

	entry := &types.BillingEntry{
		PatientUsername: patient,
		Amount:          req.Amount,
		Description:     strings.TrimSpace(req.Description),
		BilledOn:        req.BilledOn,
		CreatedAt:       timeNow(),
	}

	if _, err := s.billing.Create(entry); err != nil {
		return nil, err
	}

	s.logger.Audit(subject.Username, "add", "billing_entry", true, map[string]interface{}{
		"entry_id": entry.ID,
		"patient":  patient,
	})

	return entry, nil
}

// DeleteBillingEntry removes a charge, staff-only. Missing ids surface as
// NotFound before the role check can turn them into Forbidden.
func (s *Service) DeleteBillingEntry(subject types.Subject, id int64) error {
	if _, err := s.billing.GetByID(id); err != nil {
		return err
	}

	if d := policy.Decide(subject, policy.ActionDeleteBillingEntry, policy.Target{}); !d.Allowed {
		return d.Err()
	}

	if err := s.billing.Delete(id); err != nil {
		return err
	}

	s.logger.Audit(subject.Username, "delete", "billing_entry", true, map[string]interface{}{
		"entry_id": id,
	})
	return nil
}

// ListBillingEntries returns the full ledger, staff-only
func (s *Service) ListBillingEntries(subject types.Subject) ([]*types.BillingEntry, error) {
	if d := policy.Decide(subject, policy.ActionListBilling, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}
	return s.billing.ListAll()
}

// AddStaffRecord adds a directory entry
func (s *Service) AddStaffRecord(subject types.Subject, req *types.StaffCreateRequest) (*types.StaffRecord, error) {
	if d := policy.Decide(subject, policy.ActionAddStaffRecord, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "staff name is required")
	}

	rec := &types.StaffRecord{
		Name:  name,
		Role:  strings.TrimSpace(req.Role),
		Shift: strings.TrimSpace(req.Shift),
	}

	if _, err := s.staff.Create(rec); err != nil {
		return nil, err
	}

	s.logger.Audit(subject.Username, "add", "staff_record", true, map[string]interface{}{
		"record_id": rec.ID,
	})

	return rec, nil
}

// DeleteStaffRecord removes a directory entry
func (s *Service) DeleteStaffRecord(subject types.Subject, id int64) error {
	if _, err := s.staff.GetByID(id); err != nil {
		return err
	}

	if d := policy.Decide(subject, policy.ActionDeleteStaffRecord, policy.Target{}); !d.Allowed {
		return d.Err()
	}

	if err := s.staff.Delete(id); err != nil {
		return err
	}

	s.logger.Audit(subject.Username, "delete", "staff_record", true, map[string]interface{}{
		"record_id": id,
	})
	return nil
}

// SearchStaff runs a directory search. The empty query lists everyone.
func (s *Service) SearchStaff(subject types.Subject, query string) ([]*types.StaffRecord, error) {
	if d := policy.Decide(subject, policy.ActionSearchStaff, policy.Target{}); !d.Allowed {
		return nil, d.Err()
	}
	return s.staff.Search(strings.TrimSpace(query))
}
