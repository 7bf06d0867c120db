package repository

import (
	"context"

	"github.com/brightrock/efficiency-platform/internal/domain"
)

// UserRepository defines persistence access for accounts and directory users.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// TrainingRepository encapsulates training persistence.
type TrainingRepository interface {
	List(ctx context.Context) ([]domain.Training, error)
	GetByID(ctx context.Context, id string) (*domain.Training, error)
	Create(ctx context.Context, training *domain.Training) error
	Update(ctx context.Context, training *domain.Training) error
	Delete(ctx context.Context, id string) error
}

// AttendanceRepository stores attendance records.
type AttendanceRepository interface {
	List(ctx context.Context) ([]domain.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AttendanceRecord, error)
	GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error)
	GetByUserAndTraining(ctx context.Context, userID, trainingID string) (*domain.AttendanceRecord, error)
	Save(ctx context.Context, record *domain.AttendanceRecord) error
}

// PasswordResetRepository manages password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *domain.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
}

// TaskRepository stores dashboard cases.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// TeamMemberRepository stores the manager's team.
type TeamMemberRepository interface {
	List(ctx context.Context) ([]domain.TeamMember, error)
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	Create(ctx context.Context, member *domain.TeamMember) error
	Update(ctx context.Context, member *domain.TeamMember) error
	Delete(ctx context.Context, id string) error
}
