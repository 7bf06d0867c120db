package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/storage"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

func TestTrainingRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewKVTrainingRepository(store, 0)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	training := &domain.Training{Title: "Safety", Status: domain.TrainingStatusScheduled, Capacity: 10}
	require.NoError(t, repo.Create(ctx, training))
	require.NotEmpty(t, training.ID)

	training.Title = "Safety 2"
	require.NoError(t, repo.Update(ctx, training))

	got, err := repo.GetByID(ctx, training.ID)
	require.NoError(t, err)
	require.Equal(t, "Safety 2", got.Title)

	// trainings live under the shared "trainings" key as a JSON array
	raw, ok, err := store.Get(ctx, storage.SharedNamespace, domain.StorageKeyTrainings)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, raw, `"title":"Safety 2"`)

	require.NoError(t, repo.Delete(ctx, training.ID))
	_, err = repo.GetByID(ctx, training.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, training.ID), apperrors.ErrNotFound)
}

func TestUserRepositoryEmailLookupIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := NewKVUserRepository(storage.NewMemoryStore(), 0)
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "user1", Email: "ds@brightrock.com", Role: domain.RoleDS}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "user2", Email: "manager@brightrock.com", Role: domain.RoleManager}))

	u, err := repo.GetByEmail(ctx, "DS@BrightRock.com")
	require.NoError(t, err)
	require.Equal(t, "user1", u.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "user2", list[0].ID, "newest first")
}

func TestAttendanceSaveUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewKVAttendanceRepository(storage.NewMemoryStore(), 0)

	rec := &domain.AttendanceRecord{UserID: "user1", TrainingID: "1", Status: domain.AttendanceStatusUpcoming}
	require.NoError(t, repo.Save(ctx, rec))
	rec.Status = domain.AttendanceStatusCompleted
	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.Save(ctx, &domain.AttendanceRecord{UserID: "user2", TrainingID: "1"}))

	mine, err := repo.ListByUser(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, domain.AttendanceStatusCompleted, mine[0].Status)

	found, err := repo.GetByUserAndTraining(ctx, "user2", "1")
	require.NoError(t, err)
	require.Equal(t, "user2", found.UserID)
}

func TestPasswordResetMarkUsed(t *testing.T) {
	ctx := context.Background()
	repo := NewKVPasswordResetRepository(storage.NewMemoryStore())
	token := &domain.PasswordResetToken{UserID: "user1", Token: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, token))
	require.NoError(t, repo.MarkUsed(ctx, token.ID))

	got, err := repo.GetByToken(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got.UsedAt)
	require.False(t, got.Usable(time.Now()))
}

func TestTaskRepositoriesAreSeparate(t *testing.T) {
	ctx := context.Background()
	repos := NewStorageRepositories(storage.NewMemoryStore(), 0)
	require.NoError(t, repos.SpecialistTasks.Create(ctx, &domain.Task{QuoteID: "Q1"}))

	team, err := repos.TeamTasks.List(ctx)
	require.NoError(t, err)
	require.Empty(t, team)
}

func TestLatencyHonoursCancellation(t *testing.T) {
	repo := NewKVTrainingRepository(storage.NewMemoryStore(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLatencyDelaysReads(t *testing.T) {
	repo := NewKVTeamMemberRepository(storage.NewMemoryStore(), 20*time.Millisecond)
	start := time.Now()
	_, err := repo.List(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestUserRepositoryKeepsPasswordHash(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewKVUserRepository(store, 0)

	user := &domain.User{Email: "new@brightrock.com", Role: domain.RoleDS, PasswordHash: "$2a$04$hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	got, err := repo.GetByEmail(ctx, "new@brightrock.com")
	require.NoError(t, err)
	require.Equal(t, "$2a$04$hash", got.PasswordHash)

	got.PasswordHash = "$2a$04$other"
	require.NoError(t, repo.Update(ctx, got))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "$2a$04$other", list[0].PasswordHash)

	raw, ok, err := store.Get(ctx, storage.SharedNamespace, KeyUsers)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, raw, `"passwordHash":"$2a$04$other"`)
}
