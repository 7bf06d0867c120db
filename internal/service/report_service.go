package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/mockdata"
	"github.com/brightrock/efficiency-platform/internal/repository"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// Export is a rendered CSV report.
type Export struct {
	Filename string
	Content  []byte
}

// ReportService builds the analytics page and its CSV downloads.
type ReportService struct {
	trainings  repository.TrainingRepository
	attendance repository.AttendanceRepository
	now        func() time.Time
}

// NewReportService constructs the service.
func NewReportService(trainings repository.TrainingRepository, attendance repository.AttendanceRepository) *ReportService {
	return &ReportService{trainings: trainings, attendance: attendance, now: time.Now}
}

// Analytics starts from the organisation baseline and overlays what the stored data says.
func (s *ReportService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	trainings, err := s.trainings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	now := s.now()
	analytics := mockdata.AnalyticsBaseline()

	upcoming := upcomingTrainings(trainings, now)
	analytics.UpcomingTrainings = digests(upcoming, 5)
	analytics.RecentTrainings = digests(recentTrainings(trainings, now), 5)

	mandatory := 0
	for _, t := range upcoming {
		if t.IsMandatory {
			mandatory++
		}
	}
	analytics.ComplianceStats.UpcomingMandatory = mandatory

	if len(records) > 0 {
		summary := Summarize(records)
		analytics.AttendanceStats.CompletionRate = round1(float64(summary.Completed) * 100 / float64(summary.Total))
		analytics.ComplianceStats.MandatoryCompletionRate = mandatoryCompletion(records)
	}
	return &analytics, nil
}

func recentTrainings(trainings []domain.Training, now time.Time) []domain.Training {
	out := make([]domain.Training, 0)
	for _, t := range trainings {
		if t.Status == domain.TrainingStatusCompleted || t.IsPast(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func mandatoryCompletion(records []domain.AttendanceRecord) float64 {
	required := make([]domain.AttendanceRecord, 0)
	for _, rec := range records {
		if rec.Training.IsRequired {
			required = append(required, rec)
		}
	}
	return complianceRate(required)
}

// Export renders one report type as CSV.
func (s *ReportService) Export(ctx context.Context, reportType domain.ReportType) (*Export, error) {
	var (
		rows [][]string
		err  error
	)
	switch reportType {
	case domain.ReportTypeAttendance:
		rows, err = s.attendanceRows(ctx)
	case domain.ReportTypeCompliance:
		rows, err = s.complianceRows(ctx)
	case domain.ReportTypeTrainings:
		rows, err = s.trainingRows(ctx)
	default:
		return nil, apperrors.NewFieldErrors(map[string]string{"type": "type must be one of: attendance compliance trainings"})
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return &Export{
		Filename: fmt.Sprintf("%s-report-%s.csv", reportType, s.now().UTC().Format("2006-01-02")),
		Content:  buf.Bytes(),
	}, nil
}

func (s *ReportService) attendanceRows(ctx context.Context) ([][]string, error) {
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	rows := [][]string{{"id", "userId", "trainingId", "trainingTitle", "date", "status", "score", "certified"}}
	for _, rec := range records {
		score := ""
		if rec.Score != nil {
			score = strconv.Itoa(*rec.Score)
		}
		rows = append(rows, []string{
			rec.ID, rec.UserID, rec.TrainingID, rec.TrainingTitle,
			rec.Date.Format("2006-01-02"), string(rec.Status), score, strconv.FormatBool(rec.Certified),
		})
	}
	return rows, nil
}

func (s *ReportService) complianceRows(ctx context.Context) ([][]string, error) {
	analytics, err := s.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	c := analytics.ComplianceStats
	rows := [][]string{
		{"metric", "value"},
		{"mandatoryCompletionRate", formatFloat(c.MandatoryCompletionRate)},
		{"overdueTrainings", strconv.Itoa(c.OverdueTrainings)},
		{"upcomingMandatory", strconv.Itoa(c.UpcomingMandatory)},
	}
	for _, d := range analytics.DepartmentBreakdown {
		rows = append(rows,
			[]string{"department." + d.Name + ".attendanceRate", formatFloat(d.AttendanceRate)},
			[]string{"department." + d.Name + ".completionRate", formatFloat(d.CompletionRate)},
		)
	}
	return rows, nil
}

func (s *ReportService) trainingRows(ctx context.Context) ([][]string, error) {
	trainings, err := s.trainings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	rows := [][]string{{"id", "title", "date", "endDate", "status", "attendees", "capacity", "mandatory", "virtual", "location"}}
	for _, t := range trainings {
		rows = append(rows, []string{
			t.ID, t.Title, t.Date.Format(time.RFC3339), t.EndDate.Format(time.RFC3339), string(t.Status),
			strconv.Itoa(t.Attendees), strconv.Itoa(t.Capacity),
			strconv.FormatBool(t.IsMandatory), strconv.FormatBool(t.IsVirtual), t.Location,
		})
	}
	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
