package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/api/dto"
	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/service"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// TrainingsHandler serves the training calendar.
type TrainingsHandler struct {
	trainings *service.TrainingService
}

// NewTrainingsHandler constructs handler.
func NewTrainingsHandler(trainings *service.TrainingService) *TrainingsHandler {
	return &TrainingsHandler{trainings: trainings}
}

// List handles GET /api/v1/trainings.
func (h *TrainingsHandler) List(c *fiber.Ctx) error {
	var q dto.TrainingListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	list, err := h.trainings.List(c.UserContext(), service.TrainingFilter{
		Search:   q.Search,
		Status:   domain.TrainingStatus(q.Status),
		Type:     q.Type,
		ShowPast: q.ShowPast,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": list, "meta": fiber.Map{"total": len(list)}})
}

// Get handles GET /api/v1/trainings/:id.
func (h *TrainingsHandler) Get(c *fiber.Ctx) error {
	t, err := h.trainings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": t})
}

// Create handles POST /api/v1/trainings.
func (h *TrainingsHandler) Create(c *fiber.Ctx) error {
	var req service.TrainingInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	t, err := h.trainings.Create(c.UserContext(), principal(c).UserID(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": t})
}

// Update handles PUT /api/v1/trainings/:id.
func (h *TrainingsHandler) Update(c *fiber.Ctx) error {
	var req service.TrainingInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	t, err := h.trainings.Update(c.UserContext(), principal(c).UserID(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": t})
}

// Delete handles DELETE /api/v1/trainings/:id.
func (h *TrainingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.trainings.Delete(c.UserContext(), principal(c).UserID(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
