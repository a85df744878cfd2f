package interfaces

import "github.com/Smitha2005/hospitalmanagementsystem/pkg/types"

// DirectoryService owns the staff directory and billing ledger
type DirectoryService interface {
	AddBillingEntry(subject types.Subject, req *types.BillingCreateRequest) (*types.BillingEntry, error)
	DeleteBillingEntry(subject types.Subject, id int64) error
	ListBillingEntries(subject types.Subject) ([]*types.BillingEntry, error)
	AddStaffRecord(subject types.Subject, req *types.StaffCreateRequest) (*types.StaffRecord, error)
	DeleteStaffRecord(subject types.Subject, id int64) error
	SearchStaff(subject types.Subject, query string) ([]*types.StaffRecord, error)
}

// BillingRepository defines billing persistence operations
type BillingRepository interface {
	Create(entry *types.BillingEntry) (int64, error)
	GetByID(id int64) (*types.BillingEntry, error)
	Delete(id int64) error
	ListAll() ([]*types.BillingEntry, error)
}

// StaffRepository defines staff directory persistence operations
type StaffRepository interface {
	Create(rec *types.StaffRecord) (int64, error)
	GetByID(id int64) (*types.StaffRecord, error)
	Delete(id int64) error
	Search(query string) ([]*types.StaffRecord, error)
}
