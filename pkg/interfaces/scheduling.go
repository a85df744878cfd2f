package interfaces

import "github.com/Smitha2005/hospitalmanagementsystem/pkg/types"

// SchedulingService owns the appointment lifecycle
type SchedulingService interface {
	CreateAppointment(subject types.Subject, req *types.AppointmentCreateRequest) (*types.Appointment, error)
	AcceptAppointment(subject types.Subject, id int64) error
	RejectAppointment(subject types.Subject, id int64) error
	DeleteAppointment(subject types.Subject, id int64) (*types.DeleteResult, error)
	ListVisibleAppointments(subject types.Subject) ([]*types.Appointment, error)
}

// AppointmentRepository defines appointment persistence operations
type AppointmentRepository interface {
	Create(apt *types.Appointment) (int64, error)
	GetByID(id int64) (*types.Appointment, error)
	UpdateStatus(id int64, status types.AppointmentStatus) error
	MarkDeletedByClinician(id int64) error
	Delete(id int64) error
	ListByPatient(username string) ([]*types.Appointment, error)
	ListByClinician(username string) ([]*types.Appointment, error)
	ListAll() ([]*types.Appointment, error)
}
