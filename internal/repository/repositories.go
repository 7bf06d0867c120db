package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightrock/efficiency-platform/internal/storage"
)

// Repositories bundles every dataset the services read.
type Repositories struct {
	Users           UserRepository
	Trainings       TrainingRepository
	Attendance      AttendanceRepository
	PasswordResets  PasswordResetRepository
	SpecialistTasks TaskRepository
	TeamTasks       TaskRepository
	TeamMembers     TeamMemberRepository
}

// NewStorageRepositories keeps every dataset in the shared namespace of client storage.
func NewStorageRepositories(store storage.Store, latency time.Duration) Repositories {
	return Repositories{
		Users:           NewKVUserRepository(store, latency),
		Trainings:       NewKVTrainingRepository(store, latency),
		Attendance:      NewKVAttendanceRepository(store, latency),
		PasswordResets:  NewKVPasswordResetRepository(store),
		SpecialistTasks: NewKVTaskRepository(store, KeySpecialistTask, latency),
		TeamTasks:       NewKVTaskRepository(store, KeyTeamTasks, latency),
		TeamMembers:     NewKVTeamMemberRepository(store, latency),
	}
}

// NewPostgresRepositories moves accounts, trainings, attendance and reset
// tokens to Postgres. The dashboard boards stay in client storage.
func NewPostgresRepositories(pool *pgxpool.Pool, store storage.Store, latency time.Duration) Repositories {
	repos := NewStorageRepositories(store, latency)
	repos.Users = NewUserRepository(pool)
	repos.Trainings = NewTrainingRepository(pool)
	repos.Attendance = NewAttendanceRepository(pool)
	repos.PasswordResets = NewPasswordResetRepository(pool)
	return repos
}
