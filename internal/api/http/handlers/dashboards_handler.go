package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/api/dto"
	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/service"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// DashboardsHandler serves the role dashboards.
type DashboardsHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardsHandler constructs handler.
func NewDashboardsHandler(dashboards *service.DashboardService) *DashboardsHandler {
	return &DashboardsHandler{dashboards: dashboards}
}

// Specialist handles GET /api/v1/dashboards/ds.
func (h *DashboardsHandler) Specialist(c *fiber.Ctx) error {
	var q dto.TaskListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	view, err := h.dashboards.Specialist(c.UserContext(), service.TaskFilter{
		Search:   q.Search,
		Status:   domain.TaskStatus(q.Status),
		Priority: domain.TaskPriority(q.Priority),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// CreateTask handles POST /api/v1/dashboards/ds/tasks.
func (h *DashboardsHandler) CreateTask(c *fiber.Ctx) error {
	var req service.TaskInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	task, err := h.dashboards.CreateTask(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": task})
}

// UpdateTaskStatus handles PATCH /api/v1/dashboards/ds/tasks/:id/status.
func (h *DashboardsHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	var req service.TaskStatusInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	task, err := h.dashboards.UpdateTaskStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": task})
}

// DeleteTask handles DELETE /api/v1/dashboards/ds/tasks/:id.
func (h *DashboardsHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.dashboards.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Manager handles GET /api/v1/dashboards/manager.
func (h *DashboardsHandler) Manager(c *fiber.Ctx) error {
	var q dto.MemberListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	view, err := h.dashboards.Manager(c.UserContext(), service.MemberFilter{
		Search:        q.Search,
		Role:          domain.Role(q.Role),
		LowPerformers: q.LowPerformers,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// CreateMember handles POST /api/v1/dashboards/manager/members.
func (h *DashboardsHandler) CreateMember(c *fiber.Ctx) error {
	var req service.TeamMemberInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	member, err := h.dashboards.CreateMember(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": member})
}

// UpdateMember handles PUT /api/v1/dashboards/manager/members/:id.
func (h *DashboardsHandler) UpdateMember(c *fiber.Ctx) error {
	var req service.TeamMemberInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	member, err := h.dashboards.UpdateMember(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": member})
}

// DeleteMember handles DELETE /api/v1/dashboards/manager/members/:id.
func (h *DashboardsHandler) DeleteMember(c *fiber.Ctx) error {
	if err := h.dashboards.DeleteMember(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Executive handles GET /api/v1/dashboards/executive.
func (h *DashboardsHandler) Executive(c *fiber.Ctx) error {
	kpis, err := h.dashboards.Executive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kpis})
}

// Admin handles GET /api/v1/dashboards/admin.
func (h *DashboardsHandler) Admin(c *fiber.Ctx) error {
	stats, err := h.dashboards.Admin(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
