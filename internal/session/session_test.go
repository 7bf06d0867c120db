package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/storage"
)

const client = "client-1"

func strPtr(s string) *string { return &s }

func rolePtr(r domain.Role) *domain.Role { return &r }

func TestCheckStatusFreshStorage(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), nil)

	status, err := m.CheckStatus(context.Background(), client)
	require.NoError(t, err)
	require.False(t, status.IsAuthenticated)
	require.False(t, status.HasRole)
	require.Equal(t, domain.Role(""), status.Role)
	require.Nil(t, status.User)
	require.Nil(t, status.Token)
}

func TestCheckStatusReadsRawStorage(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetMany(ctx, client, map[string]string{
		"token":        "t1",
		"selectedRole": "DS",
		"currentUser":  `{"id":"user1","username":"datascientist","email":"ds@brightrock.com","name":"Data Scientist User","role":"DS"}`,
	}))
	m := NewManager(store, nil)

	status, err := m.CheckStatus(ctx, client)
	require.NoError(t, err)
	require.True(t, status.IsAuthenticated)
	require.True(t, status.HasRole)
	require.Equal(t, domain.RoleDS, status.Role)
	require.Equal(t, "user1", status.User.ID)
	require.Equal(t, "t1", *status.Token)
}

func TestCheckStatusIgnoresCache(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewManager(store, nil)

	user := domain.User{ID: "u1", Email: "a@b.c", Role: domain.RoleDS}
	require.NoError(t, m.Save(ctx, client, domain.Session{Token: strPtr("t1"), User: &user, Role: rolePtr(domain.RoleDS)}))

	// another process wipes storage behind our back
	require.NoError(t, store.Delete(ctx, client, domain.SessionKeys...))

	cached, err := m.Current(ctx, client)
	require.NoError(t, err)
	require.NotNil(t, cached.Token)

	status, err := m.CheckStatus(ctx, client)
	require.NoError(t, err)
	require.False(t, status.IsAuthenticated)
}

func TestClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewManager(store, nil)

	user := domain.User{ID: "u1", Email: "a@b.c", Role: domain.RoleManager}
	require.NoError(t, m.Save(ctx, client, domain.Session{Token: strPtr("t1"), User: &user, Role: rolePtr(domain.RoleManager)}))
	require.NoError(t, m.Clear(ctx, client))

	values, err := store.GetMany(ctx, client, "token", "currentUser", "selectedRole")
	require.NoError(t, err)
	require.Empty(t, values)

	status, err := m.CheckStatus(ctx, client)
	require.NoError(t, err)
	require.False(t, status.IsAuthenticated)
}

func TestFieldSettersKeepChain(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemoryStore(), nil)

	require.ErrorIs(t, m.SetRole(ctx, client, rolePtr(domain.RoleDS)), ErrBrokenChain)

	require.NoError(t, m.SetToken(ctx, client, strPtr("t1")))
	user := &domain.User{ID: "u1", Email: "a@b.c", FirstName: "Ann", LastName: "Lee", Department: "HR", Role: domain.RoleDS}
	require.NoError(t, m.SetUser(ctx, client, user))
	require.NoError(t, m.SetRole(ctx, client, rolePtr(domain.RoleDS)))

	status, err := m.CheckStatus(ctx, client)
	require.NoError(t, err)
	require.True(t, status.HasRole)
	require.Equal(t, "Ann Lee", status.User.Name)
	require.Empty(t, status.User.Department)

	require.ErrorIs(t, m.SetToken(ctx, client, nil), ErrBrokenChain)

	require.NoError(t, m.SetRole(ctx, client, nil))
	status, err = m.CheckStatus(ctx, client)
	require.NoError(t, err)
	require.True(t, status.IsAuthenticated)
	require.False(t, status.HasRole)
}

func TestCorruptUserIsReported(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetMany(ctx, client, map[string]string{"token": "t1", "currentUser": "{oops"}))
	m := NewManager(store, nil)

	_, err := m.CheckStatus(ctx, client)
	require.ErrorIs(t, err, ErrCorruptSession)
}

func TestEvictForcesReload(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewManager(store, nil)

	require.NoError(t, m.SetToken(ctx, client, strPtr("t1")))
	require.NoError(t, store.SetMany(ctx, client, map[string]string{"token": "t2"}))

	s, err := m.Current(ctx, client)
	require.NoError(t, err)
	require.Equal(t, "t1", *s.Token)

	m.Evict(client)
	s, err = m.Current(ctx, client)
	require.NoError(t, err)
	require.Equal(t, "t2", *s.Token)
}
