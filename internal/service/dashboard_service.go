package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/mockdata"
	"github.com/brightrock/efficiency-platform/internal/repository"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

const defaultTaskDueIn = 3 * 24 * time.Hour

// TaskFilter narrows the specialist's caseload. "all" or empty disables a field.
type TaskFilter struct {
	Search   string
	Status   domain.TaskStatus
	Priority domain.TaskPriority
}

// TaskInput is the new task form.
type TaskInput struct {
	QuoteID      string              `json:"quoteId" validate:"required"`
	PolicyNumber string              `json:"policyNumber"`
	ClientName   string              `json:"clientName" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	AssignedTo   string              `json:"assignedTo"`
	Priority     domain.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	DueDate      *time.Time          `json:"dueDate"`
}

// TaskStatusInput moves a task through its states.
type TaskStatusInput struct {
	Status domain.TaskStatus `json:"status" validate:"required,oneof=pending in_progress completed sla_warning sla_breach"`
}

// MemberFilter narrows the manager's team list.
type MemberFilter struct {
	Search        string
	Role          domain.Role
	LowPerformers bool
}

// TeamMemberInput is the add/edit team member form.
type TeamMemberInput struct {
	FirstName         string      `json:"firstName" validate:"required"`
	LastName          string      `json:"lastName" validate:"required"`
	Email             string      `json:"email" validate:"required,email"`
	Role              domain.Role `json:"role" validate:"required"`
	AvatarURL         string      `json:"avatarUrl"`
	TasksCompleted    int         `json:"tasksCompleted" validate:"gte=0"`
	TasksInProgress   int         `json:"tasksInProgress" validate:"gte=0"`
	TasksPending      int         `json:"tasksPending" validate:"gte=0"`
	ConversionRate    float64     `json:"conversionRate" validate:"gte=0,lte=100"`
	AverageDailyCases float64     `json:"averageDailyCases" validate:"gte=0"`
	SLABreaches       int         `json:"slaBreaches" validate:"gte=0"`
	Performance       int         `json:"performance" validate:"gte=0,lte=100"`
}

// SpecialistDashboard is the distribution specialist view.
type SpecialistDashboard struct {
	Tasks []domain.Task    `json:"tasks"`
	Stats domain.TaskStats `json:"stats"`
}

// ManagerDashboard is the manager view.
type ManagerDashboard struct {
	Members                 []domain.TeamMember `json:"members"`
	TasksRequiringAttention []domain.Task       `json:"tasksRequiringAttention"`
	Stats                   domain.TeamStats    `json:"stats"`
}

// DashboardDependencies lists the datasets the dashboards read.
type DashboardDependencies struct {
	SpecialistTasks repository.TaskRepository
	TeamTasks       repository.TaskRepository
	Members         repository.TeamMemberRepository
	Users           repository.UserRepository
	Trainings       repository.TrainingRepository
	Attendance      repository.AttendanceRepository
}

// DashboardService computes the role dashboards.
type DashboardService struct {
	deps DashboardDependencies
	now  func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{deps: deps, now: time.Now}
}

// Specialist returns the filtered caseload and stats over the whole caseload.
func (s *DashboardService) Specialist(ctx context.Context, filter TaskFilter) (*SpecialistDashboard, error) {
	tasks, err := s.deps.SpecialistTasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Search != "" && !contains(t.QuoteID, filter.Search) &&
			!contains(t.ClientName, filter.Search) && !contains(t.Description, filter.Search) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && filter.Priority != "all" && t.Priority != filter.Priority {
			continue
		}
		out = append(out, t)
	}
	return &SpecialistDashboard{Tasks: out, Stats: taskStats(tasks)}, nil
}

// taskStats counts task states; quote volume figures come from the historical baseline.
func taskStats(tasks []domain.Task) domain.TaskStats {
	stats := mockdata.SpecialistBaseline
	stats.TasksCompleted, stats.TasksInProgress, stats.TasksPending, stats.SLABreaches = 0, 0, 0, 0
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusCompleted:
			stats.TasksCompleted++
		case domain.TaskStatusInProgress:
			stats.TasksInProgress++
		case domain.TaskStatusPending:
			stats.TasksPending++
		case domain.TaskStatusSLABreach:
			stats.SLABreaches++
		}
	}
	return stats
}

// CreateTask adds a pending task, due in three days unless a due date is given.
func (s *DashboardService) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	task := &domain.Task{
		QuoteID:      strings.TrimSpace(input.QuoteID),
		PolicyNumber: input.PolicyNumber,
		ClientName:   strings.TrimSpace(input.ClientName),
		Description:  input.Description,
		AssignedTo:   input.AssignedTo,
		Status:       domain.TaskStatusPending,
		Priority:     input.Priority,
		DueDate:      now.Add(defaultTaskDueIn),
		CreatedAt:    now,
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if input.DueDate != nil && !input.DueDate.IsZero() {
		task.DueDate = input.DueDate.UTC()
	}
	if err := s.deps.SpecialistTasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateTaskStatus changes the status of a specialist task.
func (s *DashboardService) UpdateTaskStatus(ctx context.Context, id string, input TaskStatusInput) (*domain.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	task, err := s.deps.SpecialistTasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("task", id, err)
	}
	task.Status = input.Status
	if err := s.deps.SpecialistTasks.Update(ctx, task); err != nil {
		return nil, notFound("task", id, err)
	}
	return task, nil
}

// DeleteTask removes a specialist task.
func (s *DashboardService) DeleteTask(ctx context.Context, id string) error {
	if err := s.deps.SpecialistTasks.Delete(ctx, id); err != nil {
		return notFound("task", id, err)
	}
	return nil
}

// Manager returns the filtered team, escalated team tasks and team totals.
func (s *DashboardService) Manager(ctx context.Context, filter MemberFilter) (*ManagerDashboard, error) {
	members, err := s.deps.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}
	tasks, err := s.deps.TeamTasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team tasks: %w", err)
	}

	out := make([]domain.TeamMember, 0, len(members))
	for _, m := range members {
		if filter.Search != "" && !contains(m.FullName(), filter.Search) && !contains(m.Email, filter.Search) {
			continue
		}
		if filter.Role != "" && filter.Role != "all" && m.Role != filter.Role {
			continue
		}
		if filter.LowPerformers && m.Performance >= domain.LowPerformanceThreshold {
			continue
		}
		out = append(out, m)
	}

	return &ManagerDashboard{
		Members:                 out,
		TasksRequiringAttention: needingAttention(tasks),
		Stats:                   teamStats(members),
	}, nil
}

func needingAttention(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Status.NeedsAttention() {
			out = append(out, t)
		}
	}
	return out
}

func teamStats(members []domain.TeamMember) domain.TeamStats {
	stats := domain.TeamStats{TotalMembers: len(members)}
	if len(members) == 0 {
		return stats
	}
	var conversion, performance float64
	for _, m := range members {
		stats.TasksCompleted += m.TasksCompleted
		stats.TasksInProgress += m.TasksInProgress
		stats.TasksPending += m.TasksPending
		stats.SLABreaches += m.SLABreaches
		conversion += m.ConversionRate
		performance += float64(m.Performance)
		if m.Performance < domain.LowPerformanceThreshold {
			stats.LowPerformers++
		}
	}
	stats.AverageConversionRate = round1(conversion / float64(len(members)))
	stats.AveragePerformance = round1(performance / float64(len(members)))
	return stats
}

// CreateMember adds a team member.
func (s *DashboardService) CreateMember(ctx context.Context, input TeamMemberInput) (*domain.TeamMember, error) {
	if err := s.validateMember(input); err != nil {
		return nil, err
	}
	var m domain.TeamMember
	input.apply(&m)
	if err := s.deps.Members.Create(ctx, &m); err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return &m, nil
}

// UpdateMember replaces a team member's fields.
func (s *DashboardService) UpdateMember(ctx context.Context, id string, input TeamMemberInput) (*domain.TeamMember, error) {
	if err := s.validateMember(input); err != nil {
		return nil, err
	}
	m, err := s.deps.Members.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("team member", id, err)
	}
	input.apply(m)
	if err := s.deps.Members.Update(ctx, m); err != nil {
		return nil, notFound("team member", id, err)
	}
	return m, nil
}

// DeleteMember removes a team member. Tasks assigned to them are kept.
func (s *DashboardService) DeleteMember(ctx context.Context, id string) error {
	if err := s.deps.Members.Delete(ctx, id); err != nil {
		return notFound("team member", id, err)
	}
	return nil
}

func (s *DashboardService) validateMember(input TeamMemberInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	if !input.Role.IsValid() {
		return apperrors.NewFieldErrors(map[string]string{"role": "role is invalid"})
	}
	return nil
}

func (in TeamMemberInput) apply(m *domain.TeamMember) {
	m.FirstName = strings.TrimSpace(in.FirstName)
	m.LastName = strings.TrimSpace(in.LastName)
	m.Email = strings.TrimSpace(in.Email)
	m.Role = in.Role
	m.AvatarURL = in.AvatarURL
	m.TasksCompleted = in.TasksCompleted
	m.TasksInProgress = in.TasksInProgress
	m.TasksPending = in.TasksPending
	m.ConversionRate = in.ConversionRate
	m.AverageDailyCases = in.AverageDailyCases
	m.SLABreaches = in.SLABreaches
	m.Performance = in.Performance
}

// Executive computes organisation KPIs from the team and its tasks.
func (s *DashboardService) Executive(ctx context.Context) (*domain.ExecutiveKPIs, error) {
	members, err := s.deps.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}
	tasks, err := s.deps.TeamTasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team tasks: %w", err)
	}

	team := teamStats(members)
	kpis := &domain.ExecutiveKPIs{
		TeamSize:              team.TotalMembers,
		TasksCompleted:        team.TasksCompleted,
		OpenTasks:             team.TasksInProgress + team.TasksPending,
		AverageConversionRate: team.AverageConversionRate,
		TargetConversionRate:  mockdata.ExecutiveTargets.ConversionRate,
		TargetDailyCases:      mockdata.ExecutiveTargets.DailyCases,
		TotalSLABreaches:      team.SLABreaches,
		Escalations:           len(needingAttention(tasks)),
		Trend:                 mockdata.ExecutiveTrend(),
	}
	kpis.ConversionDelta = round1(kpis.AverageConversionRate - kpis.TargetConversionRate)

	best := -1
	var dailyCases float64
	for _, m := range members {
		dailyCases += m.AverageDailyCases
		if m.Performance > best {
			best = m.Performance
			kpis.TopPerformer = m.FullName()
		}
	}
	if len(members) > 0 {
		kpis.AverageDailyCases = round1(dailyCases / float64(len(members)))
	}
	return kpis, nil
}

// Admin counts users, trainings and attendance and lists the next trainings.
func (s *DashboardService) Admin(ctx context.Context) (*domain.AdminStats, error) {
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	trainings, err := s.deps.Trainings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	records, err := s.deps.Attendance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	stats := &domain.AdminStats{
		TotalTrainings:    len(trainings),
		TotalUsers:        len(users),
		AttendanceRecords: len(records),
		ComplianceRate:    complianceRate(records),
	}
	for _, u := range users {
		if u.Status == domain.UserStatusActive {
			stats.ActiveUsers++
		}
	}
	upcoming := upcomingTrainings(trainings, s.now())
	stats.UpcomingTrainings = len(upcoming)
	stats.NextTrainings = digests(upcoming, 5)
	return stats, nil
}

// complianceRate is completed over completed plus missed, in percent.
func complianceRate(records []domain.AttendanceRecord) float64 {
	summary := Summarize(records)
	decided := summary.Completed + summary.Missed
	if decided == 0 {
		return 0
	}
	return round1(float64(summary.Completed) * 100 / float64(decided))
}

func upcomingTrainings(trainings []domain.Training, now time.Time) []domain.Training {
	out := make([]domain.Training, 0)
	for _, t := range trainings {
		if t.Date.After(now) && t.Status != domain.TrainingStatusCancelled {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func digests(trainings []domain.Training, limit int) []domain.TrainingDigest {
	if len(trainings) > limit {
		trainings = trainings[:limit]
	}
	out := make([]domain.TrainingDigest, 0, len(trainings))
	for _, t := range trainings {
		d := domain.TrainingDigest{
			ID:        t.ID,
			Title:     t.Title,
			Date:      t.Date.Format("2006-01-02"),
			Attendees: t.Attendees,
			Status:    t.Status,
		}
		if t.Capacity > 0 {
			d.CompletionRate = round1(float64(t.Attendees) * 100 / float64(t.Capacity))
		}
		out = append(out, d)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
