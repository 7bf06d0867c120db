package repository

import (
	"context"
	"strings"
	"time"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/storage"
)

// Storage keys of the shared collections.
const (
	KeyUsers          = "users"
	KeyTrainings      = domain.StorageKeyTrainings
	KeyAttendance     = "attendance"
	KeyPasswordResets = "passwordResets"
	KeySpecialistTask = "dsTasks"
	KeyTeamTasks      = "teamTasks"
	KeyTeamMembers    = "teamMembers"
)

// --- users ---

// kvUser is the stored row. Unlike the API shape it keeps the password hash.
type kvUser struct {
	domain.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

func toKVUser(u *domain.User) *kvUser {
	return &kvUser{User: *u, PasswordHash: u.PasswordHash}
}

func (r kvUser) user() *domain.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return &u
}

type kvUserRepository struct {
	list *kvList[kvUser]
}

// NewKVUserRepository returns a client-storage backed implementation.
func NewKVUserRepository(store storage.Store, latency time.Duration) UserRepository {
	return &kvUserRepository{list: newKVList(store, KeyUsers, latency, func(u *kvUser) *string { return &u.ID })}
}

func (r *kvUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.list.all(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *row.user())
	}
	return users, nil
}

func (r *kvUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.list.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.user(), nil
}

func (r *kvUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.list.find(ctx, func(u *kvUser) bool { return strings.EqualFold(u.Email, email) })
	if err != nil {
		return nil, err
	}
	return row.user(), nil
}

func (r *kvUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	row := toKVUser(user)
	if err := r.list.insert(ctx, row, true); err != nil {
		return err
	}
	user.ID = row.ID
	return nil
}

func (r *kvUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	return r.list.replace(ctx, toKVUser(user))
}

func (r *kvUserRepository) Delete(ctx context.Context, id string) error {
	return r.list.remove(ctx, id)
}

// --- trainings ---

type kvTrainingRepository struct {
	list *kvList[domain.Training]
}

// NewKVTrainingRepository keeps trainings under the "trainings" key.
func NewKVTrainingRepository(store storage.Store, latency time.Duration) TrainingRepository {
	return &kvTrainingRepository{list: newKVList(store, KeyTrainings, latency, func(t *domain.Training) *string { return &t.ID })}
}

func (r *kvTrainingRepository) List(ctx context.Context) ([]domain.Training, error) {
	return r.list.all(ctx)
}

func (r *kvTrainingRepository) GetByID(ctx context.Context, id string) (*domain.Training, error) {
	return r.list.get(ctx, id)
}

func (r *kvTrainingRepository) Create(ctx context.Context, training *domain.Training) error {
	return r.list.insert(ctx, training, false)
}

func (r *kvTrainingRepository) Update(ctx context.Context, training *domain.Training) error {
	return r.list.replace(ctx, training)
}

func (r *kvTrainingRepository) Delete(ctx context.Context, id string) error {
	return r.list.remove(ctx, id)
}

// --- attendance ---

type kvAttendanceRepository struct {
	list *kvList[domain.AttendanceRecord]
}

// NewKVAttendanceRepository returns a client-storage backed implementation.
func NewKVAttendanceRepository(store storage.Store, latency time.Duration) AttendanceRepository {
	return &kvAttendanceRepository{list: newKVList(store, KeyAttendance, latency, func(a *domain.AttendanceRecord) *string { return &a.ID })}
}

func (r *kvAttendanceRepository) List(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return r.list.all(ctx)
}

func (r *kvAttendanceRepository) ListByUser(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	all, err := r.list.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AttendanceRecord, 0, len(all))
	for _, rec := range all {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *kvAttendanceRepository) GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error) {
	return r.list.get(ctx, id)
}

func (r *kvAttendanceRepository) GetByUserAndTraining(ctx context.Context, userID, trainingID string) (*domain.AttendanceRecord, error) {
	return r.list.find(ctx, func(a *domain.AttendanceRecord) bool {
		return a.UserID == userID && a.TrainingID == trainingID
	})
}

// Save inserts new records and replaces existing ones.
func (r *kvAttendanceRepository) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	if record.ID != "" {
		if _, err := r.list.get(ctx, record.ID); err == nil {
			return r.list.replace(ctx, record)
		}
	}
	return r.list.insert(ctx, record, true)
}

// --- password resets ---

type kvPasswordResetRepository struct {
	list *kvList[domain.PasswordResetToken]
}

// NewKVPasswordResetRepository returns a client-storage backed implementation.
func NewKVPasswordResetRepository(store storage.Store) PasswordResetRepository {
	return &kvPasswordResetRepository{list: newKVList(store, KeyPasswordResets, 0, func(t *domain.PasswordResetToken) *string { return &t.ID })}
}

func (r *kvPasswordResetRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	token.CreatedAt = time.Now().UTC()
	return r.list.insert(ctx, token, false)
}

func (r *kvPasswordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	return r.list.find(ctx, func(t *domain.PasswordResetToken) bool { return t.Token == token })
}

func (r *kvPasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	token, err := r.list.get(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	token.UsedAt = &now
	return r.list.replace(ctx, token)
}

// --- tasks ---

type kvTaskRepository struct {
	list *kvList[domain.Task]
}

// NewKVTaskRepository stores tasks under key; the specialist and team boards use separate keys.
func NewKVTaskRepository(store storage.Store, key string, latency time.Duration) TaskRepository {
	return &kvTaskRepository{list: newKVList(store, key, latency, func(t *domain.Task) *string { return &t.ID })}
}

func (r *kvTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.list.all(ctx)
}

func (r *kvTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.list.get(ctx, id)
}

func (r *kvTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.list.insert(ctx, task, true)
}

func (r *kvTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.list.replace(ctx, task)
}

func (r *kvTaskRepository) Delete(ctx context.Context, id string) error {
	return r.list.remove(ctx, id)
}

// --- team members ---

type kvTeamMemberRepository struct {
	list *kvList[domain.TeamMember]
}

// NewKVTeamMemberRepository returns a client-storage backed implementation.
func NewKVTeamMemberRepository(store storage.Store, latency time.Duration) TeamMemberRepository {
	return &kvTeamMemberRepository{list: newKVList(store, KeyTeamMembers, latency, func(m *domain.TeamMember) *string { return &m.ID })}
}

func (r *kvTeamMemberRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	return r.list.all(ctx)
}

func (r *kvTeamMemberRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	return r.list.get(ctx, id)
}

func (r *kvTeamMemberRepository) Create(ctx context.Context, member *domain.TeamMember) error {
	return r.list.insert(ctx, member, false)
}

func (r *kvTeamMemberRepository) Update(ctx context.Context, member *domain.TeamMember) error {
	return r.list.replace(ctx, member)
}

func (r *kvTeamMemberRepository) Delete(ctx context.Context, id string) error {
	return r.list.remove(ctx, id)
}
