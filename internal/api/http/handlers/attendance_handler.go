package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/api/dto"
	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/service"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// AttendanceHandler serves the signed-in user's attendance.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List handles GET /api/v1/attendance.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	var q dto.AttendanceListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	list, err := h.attendance.ListMine(c.UserContext(), principal(c).UserID(), service.AttendanceFilter{
		Status: domain.AttendanceStatus(q.Status),
		Tab:    q.Tab,
		Search: q.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": list.Records, "meta": fiber.Map{"summary": list.Summary}})
}

// Get handles GET /api/v1/attendance/:id.
func (h *AttendanceHandler) Get(c *fiber.Ctx) error {
	rec, err := h.attendance.Get(c.UserContext(), principal(c).UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rec})
}

// Record handles POST /api/v1/attendance/trainings/:id.
func (h *AttendanceHandler) Record(c *fiber.Ctx) error {
	var req service.AttendanceInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	rec, err := h.attendance.Record(c.UserContext(), principal(c).UserID(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": rec})
}
