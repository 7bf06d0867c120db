package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/events"
	"github.com/brightrock/efficiency-platform/internal/repository"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// Training type filters.
const (
	TrainingTypeMandatory = "mandatory"
	TrainingTypeOptional  = "optional"
	TrainingTypeVirtual   = "virtual"
	TrainingTypePhysical  = "physical"
)

// TrainingFilter narrows the training list.
type TrainingFilter struct {
	Search   string
	Status   domain.TrainingStatus
	Type     string
	ShowPast bool
}

// TrainingInput is the create/edit training form.
type TrainingInput struct {
	Title           string                `json:"title" validate:"required"`
	Description     string                `json:"description"`
	Date            time.Time             `json:"date" validate:"required"`
	EndDate         time.Time             `json:"endDate" validate:"required,gtefield=Date"`
	Status          domain.TrainingStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Attendees       int                   `json:"attendees" validate:"gte=0,ltefield=Capacity"`
	Capacity        int                   `json:"capacity" validate:"gte=0"`
	IsMandatory     bool                  `json:"isMandatory"`
	IsVirtual       bool                  `json:"isVirtual"`
	Location        string                `json:"location"`
	FacilitatorName string                `json:"facilitatorName"`
	Category        string                `json:"category"`
	Type            string                `json:"type"`
	Level           string                `json:"level"`
}

func (in TrainingInput) apply(t *domain.Training) {
	t.Title = strings.TrimSpace(in.Title)
	t.Description = in.Description
	t.Date = in.Date
	t.EndDate = in.EndDate
	t.Status = in.Status
	if t.Status == "" {
		t.Status = domain.TrainingStatusScheduled
	}
	t.Attendees = in.Attendees
	t.Capacity = in.Capacity
	t.IsMandatory = in.IsMandatory
	t.IsVirtual = in.IsVirtual
	t.Location = in.Location
	t.FacilitatorName = in.FacilitatorName
	t.Category = in.Category
	t.Type = in.Type
	t.Level = in.Level
}

// TrainingService manages the training calendar.
type TrainingService struct {
	repo       repository.TrainingRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewTrainingService constructs the service.
func NewTrainingService(repo repository.TrainingRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TrainingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingService{repo: repo, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// List returns the trainings matching filter. Past sessions are hidden unless
// ShowPast is set, except ones still marked scheduled.
func (s *TrainingService) List(ctx context.Context, filter TrainingFilter) ([]domain.Training, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	now := s.now()
	out := make([]domain.Training, 0, len(all))
	for _, t := range all {
		if !filter.ShowPast && t.IsPast(now) && t.Status != domain.TrainingStatusScheduled {
			continue
		}
		if filter.Search != "" && !matchesTraining(t, filter.Search) {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if !matchesTrainingType(t, filter.Type) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func matchesTraining(t domain.Training, search string) bool {
	return contains(t.Title, search) ||
		contains(t.Description, search) ||
		contains(t.FacilitatorName, search) ||
		contains(t.Location, search)
}

func matchesTrainingType(t domain.Training, kind string) bool {
	switch kind {
	case TrainingTypeMandatory:
		return t.IsMandatory
	case TrainingTypeOptional:
		return !t.IsMandatory
	case TrainingTypeVirtual:
		return t.IsVirtual
	case TrainingTypePhysical:
		return !t.IsVirtual
	default:
		return true
	}
}

// Get loads one training.
func (s *TrainingService) Get(ctx context.Context, id string) (*domain.Training, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("training", id, err)
	}
	return t, nil
}

// Create validates and stores a training.
func (s *TrainingService) Create(ctx context.Context, actorID string, input TrainingInput) (*domain.Training, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var t domain.Training
	input.apply(&t)
	if err := s.repo.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("create training: %w", err)
	}
	s.publish(ctx, events.EventTrainingCreated, actorID, t)
	return &t, nil
}

// Update replaces the editable fields of a training.
func (s *TrainingService) Update(ctx context.Context, actorID, id string, input TrainingInput) (*domain.Training, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("training", id, err)
	}
	input.apply(t)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, notFound("training", id, err)
	}
	s.publish(ctx, events.EventTrainingUpdated, actorID, *t)
	return t, nil
}

// Delete removes a training. Attendance records that point at it are kept.
func (s *TrainingService) Delete(ctx context.Context, actorID, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound("training", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("training", id, err)
	}
	s.publish(ctx, events.EventTrainingDeleted, actorID, *t)
	return nil
}

// CompleteEnded marks scheduled trainings whose end passed as completed and returns how many changed.
func (s *TrainingService) CompleteEnded(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list trainings: %w", err)
	}
	now := s.now()
	changed := 0
	for i := range all {
		t := all[i]
		if t.Status != domain.TrainingStatusScheduled || !t.IsPast(now) {
			continue
		}
		t.Status = domain.TrainingStatusCompleted
		if err := s.repo.Update(ctx, &t); err != nil {
			return changed, fmt.Errorf("complete training %s: %w", t.ID, err)
		}
		changed++
		s.publish(ctx, events.EventTrainingUpdated, "", t)
	}
	return changed, nil
}

func (s *TrainingService) publish(ctx context.Context, eventType events.EventType, actorID string, t domain.Training) {
	if s.dispatcher == nil {
		return
	}
	event := events.New(eventType, actorID, events.TrainingChangedPayload{
		TrainingID: t.ID,
		Title:      t.Title,
		Status:     t.Status,
		Mandatory:  t.IsMandatory,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

// notFound turns a repository miss into a NOT_FOUND error naming the resource.
func notFound(resource, id string, err error) error {
	if apperrors.ToDomainError(err).Code == "NOT_FOUND" {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}
