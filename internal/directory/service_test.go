package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// MockBillingRepository is a mock implementation of BillingRepository
type MockBillingRepository struct {
	mock.Mock
}

func (m *MockBillingRepository) Create(entry *types.BillingEntry) (int64, error) {
	args := m.Called(entry)
	id := args.Get(0).(int64)
	if args.Error(1) == nil {
		// mirror the real repository, which assigns the generated id to the entry
		entry.ID = id
	}
	return id, args.Error(1)
}

func (m *MockBillingRepository) GetByID(id int64) (*types.BillingEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BillingEntry), args.Error(1)
}

func (m *MockBillingRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBillingRepository) ListAll() ([]*types.BillingEntry, error) {
	args := m.Called()
	return args.Get(0).([]*types.BillingEntry), args.Error(1)
}

// MockStaffRepository is a mock implementation of StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(rec *types.StaffRecord) (int64, error) {
	args := m.Called(rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaffRepository) GetByID(id int64) (*types.StaffRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.StaffRecord), args.Error(1)
}

func (m *MockStaffRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStaffRepository) Search(query string) ([]*types.StaffRecord, error) {
	args := m.Called(query)
	return args.Get(0).([]*types.StaffRecord), args.Error(1)
}

var (
	alice = types.Subject{Username: "alice", Role: types.RoleClinician}
	bob   = types.Subject{Username: "bob", Role: types.RolePatient}
	carol = types.Subject{Username: "carol", Role: types.RoleStaff}
)

func newTestService() (*Service, *MockBillingRepository, *MockStaffRepository) {
	billing := new(MockBillingRepository)
	staff := new(MockStaffRepository)
	svc := NewService(billing, staff, logger.New("error")).(*Service)
	return svc, billing, staff
}

func TestAddBillingEntry_StaffOnly(t *testing.T) {
	svc, billing, _ := newTestService()

	billing.On("Create", mock.MatchedBy(func(e *types.BillingEntry) bool {
		return e.PatientUsername == "bob" && e.Amount == 125.50
	})).Return(int64(1), nil)

	entry, err := svc.AddBillingEntry(carol, &types.BillingCreateRequest{
		PatientUsername: "bob",
		Amount:          125.50,
		Description:     "consultation",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)

	_, err = svc.AddBillingEntry(alice, &types.BillingCreateRequest{PatientUsername: "bob", Amount: 10})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))

	_, err = svc.AddBillingEntry(bob, &types.BillingCreateRequest{PatientUsername: "bob", Amount: 10})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))
}

func TestAddBillingEntry_Validation(t *testing.T) {
	svc, billing, _ := newTestService()

	_, err := svc.AddBillingEntry(carol, &types.BillingCreateRequest{Amount: 10})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeValidation))

	_, err = svc.AddBillingEntry(carol, &types.BillingCreateRequest{PatientUsername: "bob", Amount: 0})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeValidation))

	_, err = svc.AddBillingEntry(carol, &types.BillingCreateRequest{PatientUsername: "bob", Amount: -5})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeValidation))

	billing.AssertNotCalled(t, "Create", mock.Anything)
}

func TestDeleteBillingEntry_MissingIsNotFound(t *testing.T) {
	svc, billing, _ := newTestService()

	billing.On("GetByID", int64(99)).Return(nil,
		types.NewNotFoundError(types.ErrCodeNotFound, "Billing entry not found"))

	// Existence wins over authorization, so even a patient gets NotFound here.
	err := svc.DeleteBillingEntry(bob, 99)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeNotFound))
}

func TestDeleteBillingEntry(t *testing.T) {
	svc, billing, _ := newTestService()

	billing.On("GetByID", int64(4)).Return(&types.BillingEntry{ID: 4, PatientUsername: "bob"}, nil)
	billing.On("Delete", int64(4)).Return(nil)

	assert.NoError(t, svc.DeleteBillingEntry(carol, 4))

	err := svc.DeleteBillingEntry(bob, 4)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))
}

func TestListBillingEntries_RoleGate(t *testing.T) {
	svc, billing, _ := newTestService()

	billing.On("ListAll").Return([]*types.BillingEntry{{ID: 1}}, nil)

	entries, err := svc.ListBillingEntries(carol)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.ListBillingEntries(bob)
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))
}

func TestAddStaffRecord(t *testing.T) {
	svc, _, staff := newTestService()

	staff.On("Create", mock.MatchedBy(func(r *types.StaffRecord) bool {
		return r.Name == "Richard" && r.Role == "Cardiologist" && r.Shift == "Night"
	})).Return(int64(1), nil)

	rec, err := svc.AddStaffRecord(carol, &types.StaffCreateRequest{
		Name: "  Richard  ", Role: "Cardiologist", Shift: "Night",
	})
	require.NoError(t, err)
	assert.Equal(t, "Richard", rec.Name)

	_, err = svc.AddStaffRecord(carol, &types.StaffCreateRequest{Name: "  "})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeValidation))

	_, err = svc.AddStaffRecord(bob, &types.StaffCreateRequest{Name: "Richard"})
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))
}

func TestSearchStaff(t *testing.T) {
	svc, _, staff := newTestService()

	staff.On("Search", "card").Return([]*types.StaffRecord{
		{ID: 1, Name: "Richard", Role: "Cardiologist", Shift: "Night"},
	}, nil)

	records, err := svc.SearchStaff(alice, "  card  ")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Cardiologist", records[0].Role)

	_, err = svc.SearchStaff(bob, "card")
	assert.True(t, types.IsErrorType(err, types.ErrorTypeAuthorization))
}

func TestSearchStaff_EmptyQueryListsAll(t *testing.T) {
	svc, _, staff := newTestService()

	staff.On("Search", "").Return([]*types.StaffRecord{{ID: 1}, {ID: 2}}, nil)

	records, err := svc.SearchStaff(carol, "")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
