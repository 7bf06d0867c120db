package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/repository"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// UserFilter narrows the user directory. An empty Role or "all" keeps every role.
type UserFilter struct {
	Search string
	Role   domain.Role
}

// UserInput is the admin add/edit user form.
type UserInput struct {
	FirstName   string            `json:"firstName" validate:"required"`
	LastName    string            `json:"lastName" validate:"required"`
	Email       string            `json:"email" validate:"required,email"`
	Phone       string            `json:"phone"`
	Role        domain.Role       `json:"role" validate:"required"`
	Department  string            `json:"department"`
	CompanyName string            `json:"companyName"`
	Status      domain.UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserService backs the admin user management screen.
type UserService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserService constructs the service.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// List filters users by name/email search and role.
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if filter.Search != "" && !contains(u.DisplayName(), filter.Search) &&
			!contains(u.FirstName+" "+u.LastName, filter.Search) && !contains(u.Email, filter.Search) {
			continue
		}
		if filter.Role != "" && !strings.EqualFold(string(filter.Role), "all") && u.Role != filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// Get loads a user.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("user", id, err)
	}
	return u, nil
}

// Create adds an active user stamped with a last login of now.
func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	u := &domain.User{LastLogin: &now}
	input.apply(u)
	u.Status = domain.UserStatusActive
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Update replaces the editable fields of a user.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("user", id, err)
	}
	if err := s.ensureEmailFree(ctx, input.Email, id); err != nil {
		return nil, err
	}
	status := u.Status
	input.apply(u)
	if input.Status == "" {
		u.Status = status
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, notFound("user", id, err)
	}
	return u, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("user", id, err)
	}
	return nil
}

func (s *UserService) validate(input UserInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	if !input.Role.IsValid() {
		return apperrors.NewFieldErrors(map[string]string{"role": "role is invalid"})
	}
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return apperrors.NewConflict("email already in use", map[string]any{
		"fields": map[string]string{"email": "Email is already in use"},
	})
}

func (in UserInput) apply(u *domain.User) {
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Email = strings.TrimSpace(in.Email)
	u.Phone = in.Phone
	u.Role = in.Role
	u.Department = in.Department
	u.CompanyName = in.CompanyName
	u.Status = in.Status
}
