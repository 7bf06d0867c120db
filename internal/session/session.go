// Package session keeps the token, user and role of each client in client
// storage. Every write persists the whole record at once, and status checks
// always read storage rather than the in-process cache.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/storage"
)

var (
	// ErrCorruptSession means currentUser in storage is not valid JSON.
	ErrCorruptSession = errors.New("session: stored user is malformed")
	// ErrBrokenChain means a write would leave a role without a user or a user without a token.
	ErrBrokenChain = errors.New("session: role requires user and user requires token")
)

// Manager is the session store.
type Manager struct {
	store  storage.Store
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]domain.Session
}

// NewManager builds a session store on top of client storage.
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:  store,
		logger: logger,
		cache:  make(map[string]domain.Session),
	}
}

// Save replaces the whole session of client.
func (m *Manager) Save(ctx context.Context, client string, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(ctx, client, s)
}

// SetToken sets or, when token is nil, removes the token.
func (m *Manager) SetToken(ctx context.Context, client string, token *string) error {
	return m.update(ctx, client, func(s *domain.Session) { s.Token = token })
}

// SetUser sets or removes the current user.
func (m *Manager) SetUser(ctx context.Context, client string, user *domain.User) error {
	return m.update(ctx, client, func(s *domain.Session) {
		if user == nil {
			s.User = nil
			return
		}
		view := user.SessionView()
		s.User = &view
	})
}

// SetRole sets or removes the selected role.
func (m *Manager) SetRole(ctx context.Context, client string, role *domain.Role) error {
	return m.update(ctx, client, func(s *domain.Session) { s.Role = role })
}

// Clear removes token, user and role and drops the cached copy.
func (m *Manager) Clear(ctx context.Context, client string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Delete(ctx, client, domain.SessionKeys...); err != nil {
		m.logger.Warn("session clear failed", zap.String("client", client), zap.Error(err))
		return fmt.Errorf("clear session: %w", err)
	}
	delete(m.cache, client)
	return nil
}

// Evict drops the cached copy without touching storage.
func (m *Manager) Evict(client string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, client)
}

// Current returns the cached session, loading it from storage on a miss.
func (m *Manager) Current(ctx context.Context, client string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.cache[client]; ok {
		return s, nil
	}
	s, err := m.load(ctx, client)
	if err != nil {
		return domain.Session{}, err
	}
	m.cache[client] = s
	return s, nil
}

// CheckStatus derives the auth status from storage. It never consults the cache.
func (m *Manager) CheckStatus(ctx context.Context, client string) (domain.AuthStatus, error) {
	s, err := m.load(ctx, client)
	if err != nil {
		return domain.AuthStatus{}, err
	}
	status := domain.AuthStatus{
		IsAuthenticated: s.Token != nil,
		HasRole:         s.Role != nil,
		HasUser:         s.User != nil,
		User:            s.User,
		Token:           s.Token,
	}
	if s.Role != nil {
		status.Role = *s.Role
	}
	return status, nil
}

func (m *Manager) update(ctx context.Context, client string, mutate func(*domain.Session)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.load(ctx, client)
	if err != nil {
		return err
	}
	mutate(&s)
	return m.write(ctx, client, s)
}

// write must be called with mu held.
func (m *Manager) write(ctx context.Context, client string, s domain.Session) error {
	if !s.Valid() {
		return ErrBrokenChain
	}
	set := make(map[string]string, len(domain.SessionKeys))
	var del []string

	if s.Token != nil && *s.Token != "" {
		set[domain.StorageKeyToken] = *s.Token
	} else {
		s.Token = nil
		del = append(del, domain.StorageKeyToken)
	}
	if s.User != nil {
		raw, err := json.Marshal(s.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		set[domain.StorageKeyCurrentUser] = string(raw)
	} else {
		del = append(del, domain.StorageKeyCurrentUser)
	}
	if s.Role != nil && *s.Role != "" {
		set[domain.StorageKeySelectedRole] = string(*s.Role)
	} else {
		s.Role = nil
		del = append(del, domain.StorageKeySelectedRole)
	}

	if err := m.store.Apply(ctx, client, set, del); err != nil {
		m.logger.Warn("session write failed", zap.String("client", client), zap.Error(err))
		return fmt.Errorf("write session: %w", err)
	}
	m.cache[client] = s
	return nil
}

func (m *Manager) load(ctx context.Context, client string) (domain.Session, error) {
	values, err := m.store.GetMany(ctx, client, domain.SessionKeys...)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	var s domain.Session
	if token := values[domain.StorageKeyToken]; token != "" {
		s.Token = &token
	}
	if raw := values[domain.StorageKeyCurrentUser]; raw != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return domain.Session{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
		}
		s.User = &user
	}
	if role := values[domain.StorageKeySelectedRole]; role != "" {
		r := domain.Role(role)
		s.Role = &r
	}
	return s, nil
}
