package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/config"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// MockIdentityService is a mock implementation of IdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(req *types.UserRegistrationRequest) (*types.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockIdentityService) Login(credentials *types.Credentials) (*types.AuthToken, error) {
	args := m.Called(credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthToken), args.Error(1)
}

func (m *MockIdentityService) ValidateToken(tokenString string) (*types.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserClaims), args.Error(1)
}

func (m *MockIdentityService) ListClinicians() ([]*types.User, error) {
	args := m.Called()
	return args.Get(0).([]*types.User), args.Error(1)
}

func (m *MockIdentityService) DeleteAccount(ctx context.Context, subject types.Subject, password string) error {
	args := m.Called(ctx, subject, password)
	return args.Error(0)
}

// MockSchedulingService is a mock implementation of SchedulingService
type MockSchedulingService struct {
	mock.Mock
}

func (m *MockSchedulingService) CreateAppointment(subject types.Subject, req *types.AppointmentCreateRequest) (*types.Appointment, error) {
	args := m.Called(subject, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Appointment), args.Error(1)
}

func (m *MockSchedulingService) AcceptAppointment(subject types.Subject, id int64) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockSchedulingService) RejectAppointment(subject types.Subject, id int64) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockSchedulingService) DeleteAppointment(subject types.Subject, id int64) (*types.DeleteResult, error) {
	args := m.Called(subject, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DeleteResult), args.Error(1)
}

func (m *MockSchedulingService) ListVisibleAppointments(subject types.Subject) ([]*types.Appointment, error) {
	args := m.Called(subject)
	return args.Get(0).([]*types.Appointment), args.Error(1)
}

// MockClinicalService is a mock implementation of ClinicalService
type MockClinicalService struct {
	mock.Mock
}

func (m *MockClinicalService) AddClinicalNote(subject types.Subject, patientUsername, text string) (*types.ClinicalNote, error) {
	args := m.Called(subject, patientUsername, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ClinicalNote), args.Error(1)
}

func (m *MockClinicalService) DeleteClinicalNote(subject types.Subject, id int64) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockClinicalService) ListClinicalNotes(subject types.Subject, patientUsername string) ([]*types.ClinicalNote, error) {
	args := m.Called(subject, patientUsername)
	return args.Get(0).([]*types.ClinicalNote), args.Error(1)
}

func (m *MockClinicalService) AddVisitNote(subject types.Subject, appointmentID int64, text string) (*types.VisitNote, error) {
	args := m.Called(subject, appointmentID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.VisitNote), args.Error(1)
}

func (m *MockClinicalService) DeleteVisitNote(subject types.Subject, id int64) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockClinicalService) GetAppointmentDossier(subject types.Subject, appointmentID int64) (*types.AppointmentDossier, error) {
	args := m.Called(subject, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AppointmentDossier), args.Error(1)
}

// MockDirectoryService is a mock implementation of DirectoryService
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) AddBillingEntry(subject types.Subject, req *types.BillingCreateRequest) (*types.BillingEntry, error) {
	args := m.Called(subject, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BillingEntry), args.Error(1)
}

func (m *MockDirectoryService) DeleteBillingEntry(subject types.Subject, id int64) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockDirectoryService) ListBillingEntries(subject types.Subject) ([]*types.BillingEntry, error) {
	args := m.Called(subject)
	return args.Get(0).([]*types.BillingEntry), args.Error(1)
}

func (m *MockDirectoryService) AddStaffRecord(subject types.Subject, req *types.StaffCreateRequest) (*types.StaffRecord, error) {
	args := m.Called(subject, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.StaffRecord), args.Error(1)
}

func (m *MockDirectoryService) DeleteStaffRecord(subject types.Subject, id int64) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockDirectoryService) SearchStaff(subject types.Subject, query string) ([]*types.StaffRecord, error) {
	args := m.Called(subject, query)
	return args.Get(0).([]*types.StaffRecord), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:      "127.0.0.1",
			Port:      0,
			LoginPath: "/login",
		},
		Monitoring: config.MonitoringConfig{
			Enabled:     false,
			MetricsPath: "/metrics",
			HealthPath:  "/health",
		},
	}
}

func newTestGateway() (*Service, *MockIdentityService, *MockSchedulingService, *MockClinicalService, *MockDirectoryService) {
	identity := new(MockIdentityService)
	schedulingSvc := new(MockSchedulingService)
	clinicalSvc := new(MockClinicalService)
	directorySvc := new(MockDirectoryService)

	svc := NewService(testConfig(), identity, schedulingSvc, clinicalSvc, directorySvc,
		nil, nil, logger.New("error"))

	return svc, identity, schedulingSvc, clinicalSvc, directorySvc
}

func TestAuthMiddleware_MissingTokenAPI(t *testing.T) {
	svc, _, _, _, _ := newTestGateway()

	req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, types.ErrCodeUnauthorized, body["error"])
}

func TestAuthMiddleware_BrowserRedirectsToLogin(t *testing.T) {
	svc, _, _, _, _ := newTestGateway()

	req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	svc, identity, _, _, _ := newTestGateway()

	identity.On("ValidateToken", "bad-token").Return(nil,
		types.NewAuthenticationError(types.ErrCodeUnauthorized, "invalid session token"))

	req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidTokenReachesHandler(t *testing.T) {
	svc, identity, schedulingSvc, _, _ := newTestGateway()

	identity.On("ValidateToken", "good-token").Return(&types.UserClaims{
		Username: "bob", Role: types.RolePatient,
	}, nil)
	schedulingSvc.On("ListVisibleAppointments", types.Subject{
		Username: "bob", Role: types.RolePatient,
	}).Return([]*types.Appointment{{ID: 1, PatientUsername: "bob"}}, nil)

	req := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	schedulingSvc.AssertExpectations(t)
}

func TestRegister_PublicAndConflictMapsTo409(t *testing.T) {
	svc, identity, _, _, _ := newTestGateway()

	identity.On("Register", mock.Anything).Return(nil,
		types.NewConflictError(types.ErrCodeUsernameExists, "Username taken"))

	body := `{"username":"bob","password":"Sup3rSecret!","confirm_password":"Sup3rSecret!","role":"patient"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found maps to 404", types.NewNotFoundError(types.ErrCodeNotFound, "Appointment not found"), http.StatusNotFound},
		{"forbidden maps to 403", types.NewAuthorizationError(types.ErrCodeForbidden, "not yours"), http.StatusForbidden},
		{"validation maps to 400", types.NewValidationError(types.ErrCodeInvalidInput, "bad input"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, identity, schedulingSvc, _, _ := newTestGateway()

			identity.On("ValidateToken", "good-token").Return(&types.UserClaims{
				Username: "alice", Role: types.RoleClinician,
			}, nil)
			schedulingSvc.On("AcceptAppointment", mock.Anything, int64(7)).Return(tt.err)

			req := httptest.NewRequest("POST", "/api/v1/appointments/7/accept", nil)
			req.Header.Set("Authorization", "Bearer good-token")
			rec := httptest.NewRecorder()

			svc.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDeleteAppointment_ReportsMode(t *testing.T) {
	svc, identity, schedulingSvc, _, _ := newTestGateway()

	identity.On("ValidateToken", "good-token").Return(&types.UserClaims{
		Username: "alice", Role: types.RoleClinician,
	}, nil)
	schedulingSvc.On("DeleteAppointment", mock.Anything, int64(3)).Return(
		&types.DeleteResult{Mode: types.DeleteModeSoft}, nil)

	req := httptest.NewRequest("DELETE", "/api/v1/appointments/3", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "soft", body["mode"])
}

func TestSecurityHeaders(t *testing.T) {
	svc, identity, _, _, _ := newTestGateway()

	identity.On("Login", mock.Anything).Return(&types.AuthToken{AccessToken: "t", TokenType: "Bearer"}, nil)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"username":"bob","password":"x"}`))
	rec := httptest.NewRecorder()

	svc.Router().ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
