package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/config"
	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/persistence"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// setupPostgres connects to POSTGRES_TEST_DSN, migrates and empties the tables.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	logger := zap.NewNop()

	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn, MaxConns: 4}, logger)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pg.Pool, "../../migrations", logger))
	_, err = pg.Pool.Exec(ctx, `TRUNCATE password_reset_tokens, attendance_records, trainings, users`)
	require.NoError(t, err)
	return pg.Pool
}

func TestPostgresUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupPostgres(t))

	first := &domain.User{Email: "Ayanda@BrightRock.com", Name: "Ayanda", Role: domain.RoleDS, Status: domain.UserStatusActive}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEmpty(t, first.ID)

	second := &domain.User{Email: "bongi@brightrock.com", Name: "Bongi", Role: domain.DirectoryRoleUser, Status: domain.UserStatusActive}
	require.NoError(t, repo.Create(ctx, second))

	found, err := repo.GetByEmail(ctx, "ayanda@brightrock.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, found.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)

	now := time.Now().UTC().Truncate(time.Second)
	found.LastLogin = &now
	found.Status = domain.UserStatusInactive
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.GetByID(ctx, found.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserStatusInactive, reloaded.Status)
	require.NotNil(t, reloaded.LastLogin)

	require.NoError(t, repo.Delete(ctx, found.ID))
	require.ErrorIs(t, repo.Delete(ctx, found.ID), apperrors.ErrNotFound)
}

func TestPostgresTrainingAndAttendanceRepositories(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t)
	trainings := NewTrainingRepository(pool)
	attendance := NewAttendanceRepository(pool)

	start := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	tr := &domain.Training{Title: "ESD Compliance Workshop", Date: start, EndDate: start.Add(3 * time.Hour), Status: domain.TrainingStatusScheduled, Capacity: 30, IsMandatory: true}
	require.NoError(t, trainings.Create(ctx, tr))

	tr.Status = domain.TrainingStatusCompleted
	require.NoError(t, trainings.Update(ctx, tr))
	loaded, err := trainings.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TrainingStatusCompleted, loaded.Status)

	score := 88
	rec := &domain.AttendanceRecord{UserID: "user1", TrainingID: tr.ID, TrainingTitle: tr.Title, Date: start, Status: domain.AttendanceStatusCompleted, Score: &score,
		Training: domain.AttendanceTraining{Title: tr.Title, IsRequired: true}}
	require.NoError(t, attendance.Save(ctx, rec))

	rec.Status = domain.AttendanceStatusMissed
	rec.Score = nil
	require.NoError(t, attendance.Save(ctx, rec))

	mine, err := attendance.ListByUser(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, domain.AttendanceStatusMissed, mine[0].Status)
	require.Nil(t, mine[0].Score)
	require.True(t, mine[0].Training.IsRequired)

	_, err = trainings.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgresPasswordResetRepository(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t)
	users := NewUserRepository(pool)
	resets := NewPasswordResetRepository(pool)

	user := &domain.User{Email: "reset@brightrock.com", Name: "Reset", Status: domain.UserStatusActive}
	require.NoError(t, users.Create(ctx, user))

	token := &domain.PasswordResetToken{UserID: user.ID, Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, resets.Create(ctx, token))

	loaded, err := resets.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, loaded.Usable(time.Now()))

	require.NoError(t, resets.MarkUsed(ctx, loaded.ID))
	require.ErrorIs(t, resets.MarkUsed(ctx, loaded.ID), apperrors.ErrNotFound)
}
