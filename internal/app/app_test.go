package app_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brightrock/efficiency-platform/internal/api/dto"
	"github.com/brightrock/efficiency-platform/internal/testutil"
)

type authEnvelope struct {
	Data dto.AuthResponse `json:"data"`
}

type pageEnvelope = dto.PageResponse

func TestLoginLandsOnRoleSelectionThenRoleHome(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)

	resp := client.Do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "DS@brightrock.com",
		"password": "anything",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login authEnvelope
	testutil.Decode(t, resp, &login)
	require.True(t, login.Data.Session.IsAuthenticated)
	require.False(t, login.Data.Session.HasRole)
	require.Equal(t, "/role-selection", login.Data.RedirectURL)
	require.NotNil(t, login.Data.Session.Token)

	resp = client.Do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/role-selection", resp.Header.Get("Location"))

	resp = client.Do(http.MethodPost, "/api/v1/auth/role", map[string]string{"role": "Manager"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var selected authEnvelope
	testutil.Decode(t, resp, &selected)
	require.Equal(t, "/dashboard/manager", selected.Data.RedirectURL)
	require.True(t, selected.Data.Session.HasRole)

	resp = client.Do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard/manager", resp.Header.Get("Location"))

	resp = client.Do(http.MethodGet, "/dashboard/manager", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page pageEnvelope
	testutil.Decode(t, resp, &page)
	require.Equal(t, "manager-dashboard", page.View)
	require.Equal(t, "/api/v1/dashboards/manager", page.DataEndpoint)
	require.Nil(t, page.Session.Token)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@brightrock.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Equal(t, "Invalid email or password", body.Error.Message)
}

func TestLoginValidatesEmailField(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "not-an-email",
		"password": "secret",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	require.Contains(t, body.Error.Details["fields"], "email")
}

func TestAnonymousPageRedirectsToLogin(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodGet, "/trainings", nil)

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
	require.Equal(t, `"cache"`, resp.Header.Get("Clear-Site-Data"))
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestRootSendsAnonymousClientToLogin(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAdminPagesRequireAdminRole(t *testing.T) {
	env := testutil.NewEnv(t)

	manager := env.Client(t)
	manager.DirectAccess("Manager")
	resp := manager.Do(http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/role-selection", resp.Header.Get("Location"))

	admin := env.Client(t)
	admin.DirectAccess("Admin")
	resp = admin.Do(http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page pageEnvelope
	testutil.Decode(t, resp, &page)
	require.Equal(t, "user-management", page.View)
}

func TestAdminShortcutRedirectsToAdminDashboard(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.Client(t)
	admin.DirectAccess("Admin")

	resp := admin.Do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
}

func TestDirectAccessLandsOnRoleHome(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/direct-access", map[string]string{"role": "Executive"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body authEnvelope
	testutil.Decode(t, resp, &body)
	require.Equal(t, "/dashboard/executive", body.Data.RedirectURL)
	require.Equal(t, "Executive", string(body.Data.Session.Role))
	require.NotNil(t, body.Data.Session.User)
	require.Equal(t, "exec@brightrock.com", body.Data.Session.User.Email)
}

func TestDirectAccessUnknownRole(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/direct-access", map[string]string{"role": "Janitor"})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Equal(t, "No user found with role Janitor", body.Error.Message)
}

func TestSelectRoleRequiresSignIn(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/role", map[string]string{"role": "DS"})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Equal(t, "/login", body.Error.Details["redirect"])
}

func TestSelectRoleRejectsUnknownRole(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)
	resp := client.Do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "manager@brightrock.com", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = client.Do(http.MethodPost, "/api/v1/auth/role", map[string]string{"role": "Janitor"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Contains(t, body.Error.Details["fields"], "role")
}

func TestLogoutClearsSession(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)
	client.DirectAccess("DS")

	resp := client.Do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = client.Do(http.MethodGet, "/api/v1/auth/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status authEnvelope
	testutil.Decode(t, resp, &status)
	require.False(t, status.Data.Session.IsAuthenticated)
	require.False(t, status.Data.Session.HasRole)
	require.Equal(t, "/login", status.Data.RedirectURL)

	resp = client.Do(http.MethodGet, "/dashboard/ds", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestClientsAreIsolated(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Client(t).DirectAccess("Admin")

	resp := env.Client(t).Do(http.MethodGet, "/api/v1/auth/status", nil)
	var status authEnvelope
	testutil.Decode(t, resp, &status)
	require.False(t, status.Data.Session.IsAuthenticated)
}

func TestRegisterSignsInAndRejectsDuplicates(t *testing.T) {
	env := testutil.NewEnv(t)
	form := map[string]string{
		"name":            "Thandi Nkosi",
		"username":        "thandi",
		"email":           "thandi@brightrock.com",
		"password":        "s3cretpass",
		"confirmPassword": "s3cretpass",
	}

	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/register", form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body authEnvelope
	testutil.Decode(t, resp, &body)
	require.True(t, body.Data.Session.IsAuthenticated)
	require.Equal(t, "/role-selection", body.Data.RedirectURL)

	resp = env.Client(t).Do(http.MethodPost, "/api/v1/auth/register", form)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.Client(t).Do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "thandi@brightrock.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.Client(t).Do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "thandi@brightrock.com",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterRequiresMatchingPasswords(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":            "Thandi Nkosi",
		"username":        "thandi",
		"email":           "thandi@brightrock.com",
		"password":        "s3cretpass",
		"confirmPassword": "different",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Contains(t, body.Error.Details["fields"], "confirmPassword")
}

func TestVerifyReturnsDemoClaims(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)
	client.DirectAccess("DS")

	resp := client.Do(http.MethodGet, "/api/v1/auth/verify", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data dto.TokenClaimsResponse `json:"data"`
	}
	testutil.Decode(t, resp, &body)
	require.True(t, body.Data.Valid)
	require.True(t, body.Data.Demo)
	require.Equal(t, "user1", body.Data.UserID)
	require.True(t, body.Data.ExpiresAt.After(time.Now()))
}

func TestRoleSelectionPageIsPublic(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodGet, "/role-selection", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page pageEnvelope
	testutil.Decode(t, resp, &page)
	require.Len(t, page.Options, 4)
	require.Equal(t, "/admin/dashboard", page.Options[3].Home)
}

func TestLegacyDashboardPathsRedirect(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)
	client.DirectAccess("DS")

	resp := client.Do(http.MethodGet, "/ds-dashboard", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard/ds", resp.Header.Get("Location"))

	resp = client.Do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/role-selection", resp.Header.Get("Location"))
}

func TestPageParamsAreSubstituted(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)
	client.DirectAccess("DS")

	resp := client.Do(http.MethodGet, "/trainings/3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page pageEnvelope
	testutil.Decode(t, resp, &page)
	require.Equal(t, "training-detail", page.View)
	require.Equal(t, "/api/v1/trainings/3", page.DataEndpoint)
	require.Equal(t, "3", page.Params["id"])
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodGet, "/nope", nil)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body testutil.ErrorBody
	testutil.Decode(t, resp, &body)
	require.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestGuardDenialsAreCounted(t *testing.T) {
	env := testutil.NewEnv(t)
	client := env.Client(t)
	client.Do(http.MethodGet, "/attendance", nil)
	client.Do(http.MethodGet, "/api/v1/trainings", nil)

	resp := client.Do(http.MethodGet, "/health/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap struct {
		GuardDenials map[string]int64 `json:"guard_denials"`
	}
	testutil.Decode(t, resp, &snap)
	require.Equal(t, int64(2), snap.GuardDenials["/login"])
}

func TestHealthLive(t *testing.T) {
	env := testutil.NewEnv(t)
	resp := env.Client(t).Do(http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.Client(t).Do(http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
