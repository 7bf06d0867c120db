// Package app assembles services, handlers and the fiber server from
// already opened infrastructure.
package app

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/brightrock/efficiency-platform/internal/api/http"
	"github.com/brightrock/efficiency-platform/internal/api/http/handlers"
	"github.com/brightrock/efficiency-platform/internal/auth"
	"github.com/brightrock/efficiency-platform/internal/config"
	"github.com/brightrock/efficiency-platform/internal/events"
	"github.com/brightrock/efficiency-platform/internal/observability"
	"github.com/brightrock/efficiency-platform/internal/repository"
	"github.com/brightrock/efficiency-platform/internal/service"
	"github.com/brightrock/efficiency-platform/internal/session"
	"github.com/brightrock/efficiency-platform/internal/storage"
	"github.com/brightrock/efficiency-platform/internal/worker"
)

// Infra is the infrastructure the application runs on.
type Infra struct {
	Store        storage.Store
	Repositories repository.Repositories
	// Dependencies are reported by the readiness probe.
	Dependencies map[string]handlers.Pinger
}

// App is the assembled application.
type App struct {
	Server    *fiber.App
	Sessions  *session.Manager
	Auth      *service.AuthService
	Trainings *service.TrainingService
	Metrics   *observability.Metrics
}

// New wires services, the route guard and HTTP handlers.
func New(cfg config.Config, logger *zap.Logger, infra Infra) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	repos := infra.Repositories
	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	sessions := session.NewManager(infra.Store, logger)
	guard := auth.NewGuard(cfg.Guard.DashboardBypass)
	authMiddleware := auth.NewMiddleware(sessions, guard, logger, cfg.App.CookieSecure)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:          repos.Users,
		PasswordResetRepo: repos.PasswordResets,
		Sessions:          sessions,
		Dispatcher:        dispatcher,
		Logger:            logger,
	})
	trainingService := service.NewTrainingService(repos.Trainings, dispatcher, logger)
	userService := service.NewUserService(repos.Users)
	attendanceService := service.NewAttendanceService(repos.Attendance, repos.Trainings, dispatcher, logger)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		SpecialistTasks: repos.SpecialistTasks,
		TeamTasks:       repos.TeamTasks,
		Members:         repos.TeamMembers,
		Users:           repos.Users,
		Trainings:       repos.Trainings,
		Attendance:      repos.Attendance,
	})
	reportService := service.NewReportService(repos.Trainings, repos.Attendance)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Name:           cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout(),
	}, logger, metrics, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, infra.Dependencies),
		Auth:           handlers.NewAuthHandler(authService),
		Pages:          handlers.NewPagesHandler(authMiddleware),
		Trainings:      handlers.NewTrainingsHandler(trainingService),
		Users:          handlers.NewUsersHandler(userService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Dashboards:     handlers.NewDashboardsHandler(dashboardService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	return &App{
		Server:    server,
		Sessions:  sessions,
		Auth:      authService,
		Trainings: trainingService,
		Metrics:   metrics,
	}
}
