package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/service"
)

// ReportsHandler serves analytics and exports.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Analytics handles GET /api/v1/reports/analytics.
func (h *ReportsHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.reports.Analytics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": analytics})
}

// Export handles GET /api/v1/reports/export?type=.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	export, err := h.reports.Export(c.UserContext(), domain.ReportType(c.Query("type")))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Send(export.Content)
}
