package auth

import (
	"strings"

	"github.com/brightrock/efficiency-platform/internal/domain"
)

// Page paths the guard redirects to.
const (
	PathLogin         = "/login"
	PathRoleSelection = "/role-selection"
	dashboardSegment  = "/dashboard/"
)

var roleHomes = map[domain.Role]string{
	domain.RoleDS:        "/dashboard/ds",
	domain.RoleManager:   "/dashboard/manager",
	domain.RoleExecutive: "/dashboard/executive",
	domain.RoleAdmin:     "/admin/dashboard",
}

// RoleHomePath returns the landing page for role, or the role selection page
// for anything outside the platform role set.
func RoleHomePath(role domain.Role) string {
	if path, ok := roleHomes[role]; ok {
		return path
	}
	return PathRoleSelection
}

// ResolveDefaultRedirect computes where "/" sends the client.
func ResolveDefaultRedirect(status domain.AuthStatus) string {
	if !status.IsAuthenticated {
		return PathLogin
	}
	if !status.HasRole {
		return PathRoleSelection
	}
	return RoleHomePath(status.Role)
}

// Outcome classifies a guard decision.
type Outcome int

const (
	Allow Outcome = iota
	DenyUnauthenticated
	DenyNoRole
	DenyRole
)

// Decision is the result of evaluating one navigation.
type Decision struct {
	Outcome  Outcome
	Redirect string
}

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Guard decides whether a client may open a protected route.
type Guard struct {
	dashboardBypass bool
}

// NewGuard builds a guard. dashboardBypass lets every path containing
// /dashboard/ skip the role check; it comes from GUARD_DASHBOARD_BYPASS and is
// off unless set. Authentication and role presence are still required.
func NewGuard(dashboardBypass bool) *Guard {
	return &Guard{dashboardBypass: dashboardBypass}
}

// Evaluate applies the guard rules in order: authentication, role presence,
// then role membership.
func (g *Guard) Evaluate(status domain.AuthStatus, path string, required []domain.Role) Decision {
	if !status.IsAuthenticated {
		return Decision{Outcome: DenyUnauthenticated, Redirect: PathLogin}
	}
	if !status.HasRole {
		return Decision{Outcome: DenyNoRole, Redirect: PathRoleSelection}
	}
	if len(required) == 0 {
		return Decision{Outcome: Allow}
	}
	if g.dashboardBypass && strings.Contains(path, dashboardSegment) {
		return Decision{Outcome: Allow}
	}
	for _, role := range required {
		if status.Role.Matches(role) {
			return Decision{Outcome: Allow}
		}
	}
	return Decision{Outcome: DenyRole, Redirect: PathRoleSelection}
}
