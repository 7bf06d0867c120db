package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brightrock/efficiency-platform/internal/config"
	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/events"
	"github.com/brightrock/efficiency-platform/internal/repository"
	"github.com/brightrock/efficiency-platform/internal/session"
	"github.com/brightrock/efficiency-platform/internal/storage"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

func seededRepos(t *testing.T) (repository.Repositories, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	repos := repository.NewStorageRepositories(store, 0)
	require.NoError(t, NewSeeder(repos, nil).Seed(context.Background()))
	return repos, store
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected a domain error, got %v", err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	fields, ok := de.Details["fields"].(map[string]string)
	require.True(t, ok)
	return fields
}

func fixedClock(value string) func() time.Time {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return at }
}

func TestSeedIsIdempotent(t *testing.T) {
	repos, _ := seededRepos(t)
	before, err := repos.Users.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, NewSeeder(repos, nil).Seed(context.Background()))

	after, err := repos.Users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, after, len(before))
	require.Equal(t, "user1", after[0].ID)
}

func TestTrainingListHidesFinishedPastSessions(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewTrainingService(repos.Trainings, nil, nil)
	svc.now = fixedClock("2025-03-04T00:00:00Z")

	list, err := svc.List(context.Background(), TrainingFilter{})
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, tr := range list {
		ids = append(ids, tr.ID)
	}
	// "1" ended but is still scheduled, "4" is completed and past
	require.ElementsMatch(t, []string{"1", "2", "3"}, ids)

	list, err = svc.List(context.Background(), TrainingFilter{ShowPast: true, Type: TrainingTypeMandatory, Search: "COMPLIANCE"})
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestTrainingCompleteEnded(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewTrainingService(repos.Trainings, nil, nil)
	svc.now = fixedClock("2025-03-06T00:00:00Z")

	changed, err := svc.CompleteEnded(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, changed)

	tr, err := svc.Get(context.Background(), "3")
	require.NoError(t, err)
	require.Equal(t, domain.TrainingStatusScheduled, tr.Status)

	changed, err = svc.CompleteEnded(context.Background())
	require.NoError(t, err)
	require.Zero(t, changed)
}

func TestTrainingValidation(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewTrainingService(repos.Trainings, nil, nil)
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), "user4", TrainingInput{
		Title:     "Induction",
		Date:      start,
		EndDate:   start.Add(-time.Hour),
		Capacity:  10,
		Attendees: 2,
		Status:    "postponed",
	})
	fields := fieldsOf(t, err)
	require.Equal(t, "endDate must not be before date", fields["endDate"])
	require.Contains(t, fields, "status")
}

func TestTrainingEventsArePublished(t *testing.T) {
	repos, _ := seededRepos(t)
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.EventType
	for _, et := range []events.EventType{events.EventTrainingCreated, events.EventTrainingDeleted} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			got = append(got, e.Type)
			return nil
		})
	}
	svc := NewTrainingService(repos.Trainings, dispatcher, nil)
	start := time.Now().Add(time.Hour)

	tr, err := svc.Create(context.Background(), "user4", TrainingInput{Title: "Induction", Date: start, EndDate: start.Add(time.Hour), Capacity: 5})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "user4", tr.ID))
	require.Equal(t, []events.EventType{events.EventTrainingCreated, events.EventTrainingDeleted}, got)

	err = svc.Delete(context.Background(), "user4", tr.ID)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestSummarize(t *testing.T) {
	score := func(v int) *int { return &v }
	summary := Summarize([]domain.AttendanceRecord{
		{Status: domain.AttendanceStatusCompleted, Score: score(90)},
		{Status: domain.AttendanceStatusCompleted, Score: score(85)},
		{Status: domain.AttendanceStatusMissed},
		{Status: domain.AttendanceStatusUpcoming},
	})
	require.Equal(t, domain.AttendanceSummary{Total: 4, Completed: 2, Upcoming: 1, Missed: 1, AverageScore: 88}, summary)

	require.Zero(t, Summarize(nil).AverageScore)
}

func TestAttendanceRecordUpserts(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewAttendanceService(repos.Attendance, repos.Trainings, nil, nil)
	ctx := context.Background()

	first, err := svc.Record(ctx, "user2", "2", AttendanceInput{Status: domain.AttendanceStatusUpcoming})
	require.NoError(t, err)
	require.Equal(t, "5 hours", first.Duration)
	require.False(t, first.Certified)

	second, err := svc.Record(ctx, "user2", "2", AttendanceInput{Status: domain.AttendanceStatusMissed})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	_, err = svc.Record(ctx, "user2", "missing", AttendanceInput{Status: domain.AttendanceStatusMissed})
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	list, err := svc.ListMine(ctx, "user2", AttendanceFilter{Tab: "missed", Search: "safety"})
	require.NoError(t, err)
	for _, rec := range list.Records {
		require.Equal(t, domain.AttendanceStatusMissed, rec.Status)
	}
}

func TestManagerDashboard(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewDashboardService(DashboardDependencies{
		SpecialistTasks: repos.SpecialistTasks,
		TeamTasks:       repos.TeamTasks,
		Members:         repos.TeamMembers,
		Users:           repos.Users,
		Trainings:       repos.Trainings,
		Attendance:      repos.Attendance,
	})

	view, err := svc.Manager(context.Background(), MemberFilter{LowPerformers: true})
	require.NoError(t, err)
	require.Len(t, view.Members, 1)
	require.Equal(t, "David", view.Members[0].FirstName)
	require.Equal(t, 4, view.Stats.TotalMembers)
	require.Equal(t, 1, view.Stats.LowPerformers)
	require.Equal(t, 75.0, view.Stats.AverageConversionRate)
	require.Len(t, view.TasksRequiringAttention, 2)

	kpis, err := svc.Executive(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Sarah Williams", kpis.TopPerformer)
	require.Equal(t, -3.0, kpis.ConversionDelta)
	require.Equal(t, 2, kpis.Escalations)
}

func TestDashboardTaskAndMemberCRUD(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewDashboardService(DashboardDependencies{
		SpecialistTasks: repos.SpecialistTasks,
		TeamTasks:       repos.TeamTasks,
		Members:         repos.TeamMembers,
	})
	svc.now = fixedClock("2025-06-01T08:00:00Z")
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, TaskInput{QuoteID: "Q1", ClientName: "Zanele", Description: "Call back"})
	require.NoError(t, err)
	require.Equal(t, "2025-06-04T08:00:00Z", task.DueDate.Format(time.RFC3339))

	_, err = svc.UpdateTaskStatus(ctx, task.ID, TaskStatusInput{Status: "stalled"})
	require.Contains(t, fieldsOf(t, err), "status")

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	err = svc.DeleteTask(ctx, task.ID)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateMember(ctx, TeamMemberInput{FirstName: "A", LastName: "B", Email: "a@b.com", Role: "Pilot"})
	require.Equal(t, "role is invalid", fieldsOf(t, err)["role"])

	member, err := svc.UpdateMember(ctx, "1", TeamMemberInput{FirstName: "John", LastName: "Doe", Email: "john.doe@brightrock.com", Role: domain.RoleDS, Performance: 50})
	require.NoError(t, err)
	require.Equal(t, 50, member.Performance)
}

func TestAdminDashboardCounts(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewDashboardService(DashboardDependencies{
		Users:      repos.Users,
		Trainings:  repos.Trainings,
		Attendance: repos.Attendance,
	})
	svc.now = fixedClock("2025-03-03T00:00:00Z")

	stats, err := svc.Admin(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalTrainings)
	require.Equal(t, 2, stats.UpcomingTrainings)
	require.Equal(t, "2", stats.NextTrainings[0].ID)
	require.Equal(t, 9, stats.TotalUsers)
	require.Equal(t, 8, stats.ActiveUsers)
	// three completed and one missed per demo user
	require.Equal(t, 75.0, stats.ComplianceRate)
}

func TestReportExport(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewReportService(repos.Trainings, repos.Attendance)
	svc.now = fixedClock("2025-03-03T00:00:00Z")

	export, err := svc.Export(context.Background(), domain.ReportTypeTrainings)
	require.NoError(t, err)
	require.Equal(t, "trainings-report-2025-03-03.csv", export.Filename)

	rows, err := csv.NewReader(bytes.NewReader(export.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	require.Equal(t, "title", rows[0][1])

	_, err = svc.Export(context.Background(), "payroll")
	require.Contains(t, fieldsOf(t, err), "type")
}

func newAuthService(t *testing.T) (*AuthService, repository.Repositories, events.Dispatcher) {
	t.Helper()
	repos, store := seededRepos(t)
	dispatcher := events.NewInMemoryDispatcher()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:          repos.Users,
		PasswordResetRepo: repos.PasswordResets,
		Sessions:          session.NewManager(store, nil),
		Dispatcher:        dispatcher,
	})
	return svc, repos, dispatcher
}

func TestLoginClearsPreviousRole(t *testing.T) {
	svc, repos, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.DirectAccess(ctx, "c1", domain.RoleExecutive)
	require.NoError(t, err)

	result, err := svc.Login(ctx, "c1", LoginInput{Email: "manager@brightrock.com", Password: "x"})
	require.NoError(t, err)
	require.True(t, result.Status.IsAuthenticated)
	require.False(t, result.Status.HasRole)
	require.Equal(t, "user2", result.Status.User.ID)

	stored, err := repos.Users.GetByID(ctx, "user2")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repos, dispatcher := newAuthService(t)
	ctx := context.Background()

	var token string
	dispatcher.Subscribe(events.EventPasswordResetRequested, func(_ context.Context, e events.Event) error {
		token = e.Payload.(events.PasswordResetRequestedPayload).Token
		return nil
	})

	require.NoError(t, svc.RequestPasswordReset(ctx, ForgotPasswordInput{Email: "nobody@brightrock.com"}))
	require.Empty(t, token)

	require.NoError(t, svc.RequestPasswordReset(ctx, ForgotPasswordInput{Email: "ds@brightrock.com"}))
	require.NotEmpty(t, token)

	input := ResetPasswordInput{Token: token, Password: "n3wpassword", ConfirmPassword: "n3wpassword"}
	require.NoError(t, svc.ResetPassword(ctx, input))

	// the token is single use
	err := svc.ResetPassword(ctx, input)
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.Login(ctx, "c2", LoginInput{Email: "ds@brightrock.com", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
	_, err = svc.Login(ctx, "c2", LoginInput{Email: "ds@brightrock.com", Password: "n3wpassword"})
	require.NoError(t, err)

	user, err := repos.Users.GetByEmail(ctx, "ds@brightrock.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.PasswordHash)
}

func TestSelectRoleWithoutUserIsRejected(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.SelectRole(context.Background(), "fresh", domain.RoleDS)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, "UNAUTHORIZED", de.Code)
	require.Equal(t, "/login", de.Details["redirect"])
}

func TestUserServiceFilters(t *testing.T) {
	repos, _ := seededRepos(t)
	svc := NewUserService(repos.Users)

	admins, err := svc.List(context.Background(), UserFilter{Role: domain.DirectoryRoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 2)

	all, err := svc.List(context.Background(), UserFilter{Role: "all", Search: "SASOL.COM"})
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestRegisteredPasswordIsEnforced(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "c1", RegisterInput{
		Name:            "New Hire",
		Username:        "newhire",
		Email:           "new@brightrock.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "c2", LoginInput{Email: "new@brightrock.com", Password: "WRONG"})
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	result, err := svc.Login(ctx, "c2", LoginInput{Email: "new@brightrock.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotNil(t, result.Status.Token)
	claims, err := svc.TokenManager().ParseToken(*result.Status.Token)
	require.NoError(t, err)
	require.False(t, claims.Demo)
}
