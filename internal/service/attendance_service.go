package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/events"
	"github.com/brightrock/efficiency-platform/internal/repository"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// AttendanceFilter narrows the "my attendance" list. Tab is one of all, completed,
// upcoming or missed and is applied on top of Status.
type AttendanceFilter struct {
	Status domain.AttendanceStatus
	Tab    string
	Search string
}

// AttendanceInput is the attendance form of a training.
type AttendanceInput struct {
	Status   domain.AttendanceStatus `json:"status" validate:"required,oneof=completed upcoming missed"`
	Score    *int                    `json:"score" validate:"omitempty,gte=0,lte=100"`
	Feedback string                  `json:"feedback"`
	Rating   int                     `json:"rating" validate:"gte=0,lte=5"`
	Duration string                  `json:"duration"`
}

// AttendanceList is the list plus its summary counters.
type AttendanceList struct {
	Records []domain.AttendanceRecord `json:"records"`
	Summary domain.AttendanceSummary  `json:"summary"`
}

// AttendanceService backs the attendance pages.
type AttendanceService struct {
	repo       repository.AttendanceRepository
	trainings  repository.TrainingRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo repository.AttendanceRepository, trainings repository.TrainingRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, trainings: trainings, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// ListMine returns the user's records, newest first. The summary covers every
// record of the user regardless of filter.
func (s *AttendanceService) ListMine(ctx context.Context, userID string, filter AttendanceFilter) (*AttendanceList, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })

	out := make([]domain.AttendanceRecord, 0, len(all))
	for _, rec := range all {
		if filter.Status != "" && filter.Status != "all" && rec.Status != filter.Status {
			continue
		}
		if filter.Tab != "" && filter.Tab != "all" && string(rec.Status) != filter.Tab {
			continue
		}
		if filter.Search != "" && !contains(rec.TrainingTitle, filter.Search) && !contains(rec.Training.Category, filter.Search) {
			continue
		}
		out = append(out, rec)
	}
	return &AttendanceList{Records: out, Summary: Summarize(all)}, nil
}

// Summarize counts records per status and averages the non-null scores, rounded; zero when none.
func Summarize(records []domain.AttendanceRecord) domain.AttendanceSummary {
	summary := domain.AttendanceSummary{Total: len(records)}
	scoreSum, scored := 0, 0
	for _, rec := range records {
		switch rec.Status {
		case domain.AttendanceStatusCompleted:
			summary.Completed++
		case domain.AttendanceStatusUpcoming:
			summary.Upcoming++
		case domain.AttendanceStatusMissed:
			summary.Missed++
		}
		if rec.Score != nil {
			scoreSum += *rec.Score
			scored++
		}
	}
	if scored > 0 {
		summary.AverageScore = int(math.Round(float64(scoreSum) / float64(scored)))
	}
	return summary
}

// Get loads one record; users only see their own.
func (s *AttendanceService) Get(ctx context.Context, userID, id string) (*domain.AttendanceRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("attendance record", id, err)
	}
	if rec.UserID != userID {
		return nil, apperrors.NewNotFound("attendance record", map[string]any{"id": id})
	}
	return rec, nil
}

// Record creates or updates the user's attendance for a training.
func (s *AttendanceService) Record(ctx context.Context, userID, trainingID string, input AttendanceInput) (*domain.AttendanceRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	training, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return nil, notFound("training", trainingID, err)
	}

	rec, err := s.repo.GetByUserAndTraining(ctx, userID, trainingID)
	if errors.Is(err, apperrors.ErrNotFound) {
		rec = &domain.AttendanceRecord{UserID: userID, TrainingID: trainingID}
	} else if err != nil {
		return nil, fmt.Errorf("lookup attendance: %w", err)
	}

	rec.TrainingTitle = training.Title
	rec.Date = training.Date
	rec.Location = training.Location
	rec.Training = domain.AttendanceTraining{
		Category:   training.Category,
		Title:      training.Title,
		Location:   training.Location,
		Instructor: training.FacilitatorName,
		IsRequired: training.IsMandatory,
	}
	rec.Status = input.Status
	rec.Score = input.Score
	rec.Feedback = input.Feedback
	rec.Rating = input.Rating
	if input.Duration != "" {
		rec.Duration = input.Duration
	} else if rec.Duration == "" {
		rec.Duration = formatDuration(training.EndDate.Sub(training.Date))
	}
	rec.Certified = input.Status == domain.AttendanceStatusCompleted && input.Score != nil
	rec.RecordedAt = s.now().UTC()

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save attendance: %w", err)
	}

	if s.dispatcher != nil {
		event := events.New(events.EventAttendanceRecorded, userID, events.AttendanceRecordedPayload{
			RecordID:   rec.ID,
			UserID:     userID,
			TrainingID: trainingID,
			Status:     rec.Status,
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return rec, nil
}

func formatDuration(d time.Duration) string {
	hours := int(math.Round(d.Hours()))
	switch {
	case hours <= 0:
		return ""
	case hours == 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%d hours", hours)
	}
}
