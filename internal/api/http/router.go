package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/api/http/handlers"
	"github.com/brightrock/efficiency-platform/internal/auth"
	"github.com/brightrock/efficiency-platform/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Pages          *handlers.PagesHandler
	Trainings      *handlers.TrainingsHandler
	Users          *handlers.UsersHandler
	Attendance     *handlers.AttendanceHandler
	Dashboards     *handlers.DashboardsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
}

var adminRoles = []domain.Role{domain.DirectoryRoleAdmin, domain.DirectoryRoleESDAdmin}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Use(cfg.AuthMiddleware.ClientIdentity)

	registerAPIRoutes(app, cfg)
	registerPageRoutes(app, cfg)

	app.Use(notFoundHandler)
}

func registerAPIRoutes(app *fiber.App, cfg RouteConfig) {
	mw := cfg.AuthMiddleware
	anyRole := mw.RequireAPI()
	admin := mw.RequireAPI(adminRoles...)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/direct-access", cfg.Auth.DirectAccess)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/status", cfg.Auth.Status)
	authGroup.Post("/password/forgot", cfg.Auth.ForgotPassword)
	authGroup.Post("/password/reset", cfg.Auth.ResetPassword)
	authGroup.Post("/role", mw.RequireSignedInAPI(), cfg.Auth.SelectRole)
	authGroup.Get("/verify", mw.RequireSignedInAPI(), cfg.Auth.Verify)

	trainings := api.Group("/trainings")
	trainings.Get("/", anyRole, cfg.Trainings.List)
	trainings.Get("/:id", anyRole, cfg.Trainings.Get)
	trainings.Post("/", admin, cfg.Trainings.Create)
	trainings.Put("/:id", admin, cfg.Trainings.Update)
	trainings.Delete("/:id", admin, cfg.Trainings.Delete)

	attendance := api.Group("/attendance", anyRole)
	attendance.Get("/", cfg.Attendance.List)
	attendance.Post("/trainings/:id", cfg.Attendance.Record)
	attendance.Get("/:id", cfg.Attendance.Get)

	users := api.Group("/users", admin)
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	reports := api.Group("/reports", admin)
	reports.Get("/analytics", cfg.Reports.Analytics)
	reports.Get("/export", cfg.Reports.Export)

	dashboards := api.Group("/dashboards")
	dashboards.Get("/ds", anyRole, cfg.Dashboards.Specialist)
	dashboards.Post("/ds/tasks", anyRole, cfg.Dashboards.CreateTask)
	dashboards.Patch("/ds/tasks/:id/status", anyRole, cfg.Dashboards.UpdateTaskStatus)
	dashboards.Delete("/ds/tasks/:id", anyRole, cfg.Dashboards.DeleteTask)
	dashboards.Get("/manager", anyRole, cfg.Dashboards.Manager)
	dashboards.Post("/manager/members", anyRole, cfg.Dashboards.CreateMember)
	dashboards.Put("/manager/members/:id", anyRole, cfg.Dashboards.UpdateMember)
	dashboards.Delete("/manager/members/:id", anyRole, cfg.Dashboards.DeleteMember)
	dashboards.Get("/executive", anyRole, cfg.Dashboards.Executive)
	dashboards.Get("/admin", admin, cfg.Dashboards.Admin)
}

func registerPageRoutes(app *fiber.App, cfg RouteConfig) {
	mw := cfg.AuthMiddleware
	pages := cfg.Pages
	anyRole := mw.RequirePage()
	admin := mw.RequirePage(adminRoles...)

	app.Get("/login", pages.Render("login", "/api/v1/auth/login"))
	app.Get("/register", pages.Render("register", "/api/v1/auth/register"))
	app.Get("/forgot-password", pages.Render("forgot-password", "/api/v1/auth/password/forgot"))
	app.Get("/reset-password/:token", pages.Render("reset-password", "/api/v1/auth/password/reset"))
	app.Get("/role-selection", pages.RoleSelection)

	app.Get("/", pages.Root)

	app.Get("/dashboard/ds", anyRole, pages.Render("ds-dashboard", "/api/v1/dashboards/ds"))
	app.Get("/dashboard/manager", anyRole, pages.Render("manager-dashboard", "/api/v1/dashboards/manager"))
	app.Get("/dashboard/executive", anyRole, pages.Render("executive-dashboard", "/api/v1/dashboards/executive"))

	app.Get("/ds-dashboard", anyRole, handlers.Redirect("/dashboard/ds"))
	app.Get("/manager-dashboard", anyRole, handlers.Redirect("/dashboard/manager"))
	app.Get("/executive-dashboard", anyRole, handlers.Redirect("/dashboard/executive"))
	app.Get("/dashboard", anyRole, handlers.Redirect(auth.PathRoleSelection))

	app.Get("/trainings", anyRole, pages.Render("training-list", "/api/v1/trainings"))
	app.Get("/trainings/:id", anyRole, pages.Render("training-detail", "/api/v1/trainings/:id"))
	app.Get("/attendance", anyRole, pages.Render("my-attendance", "/api/v1/attendance"))
	app.Get("/attendance/:id", anyRole, pages.Render("attendance-form", "/api/v1/attendance/trainings/:id"))

	app.Get("/admin", admin, handlers.Redirect("/admin/dashboard"))
	app.Get("/admin/dashboard", admin, pages.Render("admin-dashboard", "/api/v1/dashboards/admin"))
	app.Get("/admin/trainings", admin, pages.Render("training-management", "/api/v1/trainings"))
	app.Get("/admin/users", admin, pages.Render("user-management", "/api/v1/users"))
	app.Get("/admin/reports", admin, pages.Render("reports", "/api/v1/reports/analytics"))
}
