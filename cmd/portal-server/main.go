package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Smitha2005/hospitalmanagementsystem/internal/clinical"
	"github.com/Smitha2005/hospitalmanagementsystem/internal/directory"
	"github.com/Smitha2005/hospitalmanagementsystem/internal/gateway"
	"github.com/Smitha2005/hospitalmanagementsystem/internal/iam"
	"github.com/Smitha2005/hospitalmanagementsystem/internal/scheduling"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/config"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/database"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/logger"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/monitoring"
	"github.com/Smitha2005/hospitalmanagementsystem/pkg/types"
)

const serviceName = "portal-server"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.WithField("version", "1.0.0").Info("Starting portal server")

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.CreateSchema(ctx); err != nil {
		log.WithError(err).Error("Failed to create database schema")
		os.Exit(1)
	}

	passwordManager := iam.NewPasswordManager()

	if cfg.Database.SeedUsers {
		if err := seedDefaultUsers(ctx, db, passwordManager); err != nil {
			log.WithError(err).Error("Failed to seed default users")
			os.Exit(1)
		}
	}

	// Repositories
	userRepo := iam.NewUserRepository(db, log)
	appointmentRepo := scheduling.NewAppointmentRepository(db, log)
	clinicalNoteRepo := clinical.NewClinicalNoteRepository(db, log)
	visitNoteRepo := clinical.NewVisitNoteRepository(db, log)
	billingRepo := directory.NewBillingRepository(db, log)
	staffRepo := directory.NewStaffRepository(db, log)

	// Monitoring
	var metrics *monitoring.MetricsCollector
	if cfg.Monitoring.Enabled {
		metrics = monitoring.NewMetricsCollector(serviceName)
	}
	health := monitoring.NewHealthManager(serviceName, "1.0.0")
	health.RegisterChecker("database", monitoring.NewDatabaseHealthChecker(db.DB))

	// Services
	tokenManager := iam.NewTokenManager(&cfg.Session)
	identityService := iam.NewService(userRepo, passwordManager, tokenManager, metrics, log)
	schedulingService := scheduling.NewService(appointmentRepo, clinicalNoteRepo, metrics, log)
	clinicalService := clinical.NewService(clinicalNoteRepo, visitNoteRepo, appointmentRepo, metrics, log)
	directoryService := directory.NewService(billingRepo, staffRepo, log)

	server := gateway.NewService(
		cfg,
		identityService,
		schedulingService,
		clinicalService,
		directoryService,
		metrics,
		health,
		log,
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start HTTP server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down portal server...")

	if err := server.Stop(); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}

	log.Info("Portal server stopped")
}

// seedDefaultUsers ensures the demo accounts exist. Passwords are hashed at
// startup so no hash material lives in the source tree.
func seedDefaultUsers(ctx context.Context, db *database.DB, pm *iam.PasswordManager) error {
	defaults := []struct {
		username string
		password string
		role     types.UserRole
	}{
		{"patient", "Patient@123", types.RolePatient},
		{"doctor", "Doctor@123", types.RoleClinician},
		{"staff", "Staff@123", types.RoleStaff},
	}

	seeds := make([]database.SeedUser, 0, len(defaults))
	for _, d := range defaults {
		hash, err := pm.HashPassword(d.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", d.username, err)
		}
		seeds = append(seeds, database.SeedUser{
			Username:     d.username,
			PasswordHash: hash,
			Role:         string(d.role),
		})
	}

	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return db.SeedUsers(seedCtx, seeds)
}
