package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Smitha2005/hospitalmanagementsystem/pkg/config"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/interfaces"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/monitoring"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

// Service is the portal's HTTP surface. It owns the router, the middleware
// chain, and the translation between PortalError values and HTTP responses.
type Service struct {
	router     *mux.Router
	server     *http.Server
	identity   interfaces.IdentityService
	scheduling interfaces.SchedulingService
	clinical   interfaces.ClinicalService
	directory  interfaces.DirectoryService
	metrics    *monitoring.MetricsCollector
	health     *monitoring.HealthManager
	logger     *logger.Logger
	loginPath  string
}

// NewService assembles the portal HTTP service
func NewService(
	cfg *config.Config,
	identity interfaces.IdentityService,
	scheduling interfaces.SchedulingService,
	clinical interfaces.ClinicalService,
	directory interfaces.DirectoryService,
	metrics *monitoring.MetricsCollector,
	health *monitoring.HealthManager,
	log *logger.Logger,
) *Service {
	s := &Service{
		router:     mux.NewRouter(),
		identity:   identity,
		scheduling: scheduling,
		clinical:   clinical,
		directory:  directory,
		metrics:    metrics,
		health:     health,
		logger:     log,
		loginPath:  cfg.Server.LoginPath,
	}

	s.setupRoutes(cfg)
	s.setupMiddleware()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return s
}

// Router exposes the assembled router, mainly for tests
func (s *Service) Router() *mux.Router {
	return s.router
}

// Start starts the HTTP server
func (s *Service) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting portal server")
	return s.server.ListenAndServe()
}

// Stop shuts the HTTP server down gracefully
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Info("Stopping portal server")
	return s.server.Shutdown(ctx)
}

// setupRoutes sets up the routing
func (s *Service) setupRoutes(cfg *config.Config) {
	if s.health != nil {
		s.router.HandleFunc(cfg.Monitoring.HealthPath, s.health.HTTPHandler()).Methods("GET")
	}
	if s.metrics != nil && cfg.Monitoring.Enabled {
		s.router.Handle(cfg.Monitoring.MetricsPath, s.metrics.Handler()).Methods("GET")
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Authentication endpoints, reachable without a session
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", s.handleRegister).Methods("POST")
	auth.HandleFunc("/login", s.handleLogin).Methods("POST")

	// Everything below requires a valid session
	api.HandleFunc("/account", s.handleDeleteAccount).Methods("DELETE")
	api.HandleFunc("/clinicians", s.handleListClinicians).Methods("GET")

	api.HandleFunc("/appointments", s.handleListAppointments).Methods("GET")
	api.HandleFunc("/appointments", s.handleCreateAppointment).Methods("POST")
	api.HandleFunc("/appointments/{id:[0-9]+}/accept", s.handleAcceptAppointment).Methods("POST")
	api.HandleFunc("/appointments/{id:[0-9]+}/reject", s.handleRejectAppointment).Methods("POST")
	api.HandleFunc("/appointments/{id:[0-9]+}", s.handleDeleteAppointment).Methods("DELETE")
	api.HandleFunc("/appointments/{id:[0-9]+}/dossier", s.handleAppointmentDossier).Methods("GET")
	api.HandleFunc("/appointments/{id:[0-9]+}/notes", s.handleAddVisitNote).Methods("POST")

	api.HandleFunc("/patients/{username}/history", s.handleListClinicalNotes).Methods("GET")
	api.HandleFunc("/patients/{username}/history", s.handleAddClinicalNote).Methods("POST")
	api.HandleFunc("/history", s.handleListOwnHistory).Methods("GET")
	api.HandleFunc("/history/{id:[0-9]+}", s.handleDeleteClinicalNote).Methods("DELETE")
	api.HandleFunc("/visit-notes/{id:[0-9]+}", s.handleDeleteVisitNote).Methods("DELETE")

	api.HandleFunc("/billing", s.handleListBilling).Methods("GET")
	api.HandleFunc("/billing", s.handleAddBillingEntry).Methods("POST")
	api.HandleFunc("/billing/{id:[0-9]+}", s.handleDeleteBillingEntry).Methods("DELETE")

	api.HandleFunc("/staff", s.handleSearchStaff).Methods("GET")
	api.HandleFunc("/staff", s.handleAddStaffRecord).Methods("POST")
	api.HandleFunc("/staff/{id:[0-9]+}", s.handleDeleteStaffRecord).Methods("DELETE")
}

// setupMiddleware sets up the middleware chain
func (s *Service) setupMiddleware() {
	s.router.Use(s.securityHeadersMiddleware)
	if s.metrics != nil {
		s.router.Use(s.metrics.HTTPMiddleware)
	}
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.authMiddleware)
}

// writeJSONResponse writes a JSON response
func (s *Service) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// writeErrorResponse writes an error response
func (s *Service) writeErrorResponse(w http.ResponseWriter, statusCode int, code, message string) {
	s.writeJSONResponse(w, statusCode, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

// handleError maps a service error onto the wire. Validation is 400,
// authentication 401, authorization 403, not-found 404, conflict 409, and
// anything unrecognized is a logged 500.
func (s *Service) handleError(w http.ResponseWriter, err error) {
	if pe, ok := err.(*types.PortalError); ok {
		s.writeErrorResponse(w, statusForErrorType(pe.Type), pe.Code, pe.Message)
		return
	}

	s.logger.WithError(err).Error("Internal server error")
	s.writeErrorResponse(w, http.StatusInternalServerError,
		types.ErrCodeInternalError, "An internal error occurred")
}

func statusForErrorType(errorType types.ErrorType) int {
	switch errorType {
	case types.ErrorTypeValidation:
		return http.StatusBadRequest
	case types.ErrorTypeAuthentication:
		return http.StatusUnauthorized
	case types.ErrorTypeAuthorization:
		return http.StatusForbidden
	case types.ErrorTypeNotFound:
		return http.StatusNotFound
	case types.ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
