package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/mockdata"
	"github.com/brightrock/efficiency-platform/internal/repository"
)

// Seeder loads the mock datasets into empty repositories.
type Seeder struct {
	repos  repository.Repositories
	logger *zap.Logger
}

// NewSeeder constructs a seeder.
func NewSeeder(repos repository.Repositories, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{repos: repos, logger: logger}
}

// Seed fills each dataset that is currently empty. Non-empty datasets are left untouched.
func (s *Seeder) Seed(ctx context.Context) error {
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if len(users) == 0 {
		seed := append(mockdata.DemoUsers(), mockdata.DirectoryUsers()...)
		// the user list is newest first, so insert backwards to keep the seed order
		for i := len(seed) - 1; i >= 0; i-- {
			u := seed[i]
			if err := s.repos.Users.Create(ctx, &u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.ID, err)
			}
		}
		s.logger.Info("seeded dataset", zap.String("dataset", "users"))
	}

	trainings, err := s.repos.Trainings.List(ctx)
	if err != nil {
		return fmt.Errorf("seed trainings: %w", err)
	}
	if len(trainings) == 0 {
		for _, t := range mockdata.Trainings() {
			t := t
			if err := s.repos.Trainings.Create(ctx, &t); err != nil {
				return fmt.Errorf("seed training %s: %w", t.ID, err)
			}
		}
		s.logger.Info("seeded dataset", zap.String("dataset", "trainings"))
	}

	records, err := s.repos.Attendance.List(ctx)
	if err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}
	if len(records) == 0 {
		for _, u := range mockdata.DemoUsers() {
			for _, rec := range mockdata.Attendance(u.ID) {
				rec := rec
				if err := s.repos.Attendance.Save(ctx, &rec); err != nil {
					return fmt.Errorf("seed attendance %s: %w", rec.ID, err)
				}
			}
		}
		s.logger.Info("seeded dataset", zap.String("dataset", "attendance"))
	}

	if err := seedTasks(ctx, s.repos.SpecialistTasks, mockdata.SpecialistTasks); err != nil {
		return fmt.Errorf("seed specialist tasks: %w", err)
	}
	if err := seedTasks(ctx, s.repos.TeamTasks, mockdata.TeamTasks); err != nil {
		return fmt.Errorf("seed team tasks: %w", err)
	}

	members, err := s.repos.TeamMembers.List(ctx)
	if err != nil {
		return fmt.Errorf("seed team members: %w", err)
	}
	if len(members) == 0 {
		for _, m := range mockdata.TeamMembers() {
			m := m
			if err := s.repos.TeamMembers.Create(ctx, &m); err != nil {
				return fmt.Errorf("seed team member %s: %w", m.ID, err)
			}
		}
		s.logger.Info("seeded dataset", zap.String("dataset", "team_members"))
	}
	return nil
}

func seedTasks(ctx context.Context, repo repository.TaskRepository, dataset func() []domain.Task) error {
	existing, err := repo.List(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	seed := dataset()
	for i := len(seed) - 1; i >= 0; i-- {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	return nil
}
