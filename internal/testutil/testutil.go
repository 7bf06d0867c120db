// Package testutil builds a fully wired application on the memory store for
// HTTP level tests.
package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/brightrock/efficiency-platform/internal/app"
	"github.com/brightrock/efficiency-platform/internal/auth"
	"github.com/brightrock/efficiency-platform/internal/config"
	"github.com/brightrock/efficiency-platform/internal/repository"
	"github.com/brightrock/efficiency-platform/internal/service"
	"github.com/brightrock/efficiency-platform/internal/storage"
)

// Config returns a configuration suitable for tests: memory storage, no latency, cheap bcrypt.
func Config() config.Config {
	return config.Config{
		App: config.AppConfig{
			Name:                  "efficiency-platform-test",
			Version:               "test",
			RequestTimeoutSeconds: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory, SeedMockData: true},
	}
}

// Env is a seeded application plus the store behind it.
type Env struct {
	App   *app.App
	Store storage.Store
	Repos repository.Repositories
}

// NewEnv builds and seeds an application. mutate may adjust the config first.
func NewEnv(t *testing.T, mutate ...func(*config.Config)) *Env {
	t.Helper()
	cfg := Config()
	for _, fn := range mutate {
		fn(&cfg)
	}

	store := storage.NewMemoryStore()
	repos := repository.NewStorageRepositories(store, 0)
	require.NoError(t, service.NewSeeder(repos, nil).Seed(context.Background()))

	return &Env{
		App:   app.New(cfg, nil, app.Infra{Store: store, Repositories: repos}),
		Store: store,
		Repos: repos,
	}
}

// Client issues requests under one client namespace.
type Client struct {
	t   *testing.T
	env *Env
	ID  string
}

// Client returns a request helper bound to a fresh client id. Requests made
// through it share one session.
func (e *Env) Client(t *testing.T) *Client {
	return &Client{t: t, env: e, ID: uuid.NewString()}
}

// Do sends a request with an optional JSON body.
func (c *Client) Do(method, path string, body any) *http.Response {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(auth.ClientHeader, c.ID)
	resp, err := c.env.App.Server.Test(req, -1)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// DirectAccess signs the client in as the demo account of role.
func (c *Client) DirectAccess(role string) {
	c.t.Helper()
	resp := c.Do(http.MethodPost, "/api/v1/auth/direct-access", map[string]string{"role": role})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
}

// Decode reads the JSON body of resp into dst.
func Decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// ErrorBody is the error envelope.
type ErrorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}
