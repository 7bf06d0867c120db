package domain

import "strings"

// Role is a platform role selected after login; it decides the dashboard landing page.
type Role string

const (
	RoleDS        Role = "DS"
	RoleManager   Role = "Manager"
	RoleExecutive Role = "Executive"
	RoleAdmin     Role = "Admin"
)

// Directory roles used by the admin user management screen.
const (
	DirectoryRoleAdmin      Role = "admin"
	DirectoryRoleUser       Role = "user"
	DirectoryRoleInstructor Role = "instructor"
	DirectoryRoleESDAdmin   Role = "esd_admin"
)

// PlatformRoles lists the closed set of selectable roles in display order.
var PlatformRoles = []Role{RoleDS, RoleManager, RoleExecutive, RoleAdmin}

// IsPlatform reports whether r is one of the selectable platform roles.
func (r Role) IsPlatform() bool {
	for _, candidate := range PlatformRoles {
		if r == candidate {
			return true
		}
	}
	return false
}

// IsValid accepts platform roles and directory roles.
func (r Role) IsValid() bool {
	if r.IsPlatform() {
		return true
	}
	switch r {
	case DirectoryRoleAdmin, DirectoryRoleUser, DirectoryRoleInstructor, DirectoryRoleESDAdmin:
		return true
	}
	return false
}

// Matches compares roles case-insensitively; the platform Admin role also satisfies esd_admin.
func (r Role) Matches(required Role) bool {
	if strings.EqualFold(string(r), string(required)) {
		return true
	}
	return strings.EqualFold(string(r), string(RoleAdmin)) && required == DirectoryRoleESDAdmin
}

// Label is the human readable role name shown on the role selection page.
func (r Role) Label() string {
	switch r {
	case RoleDS:
		return "Distribution Specialist"
	case RoleManager:
		return "Manager"
	case RoleExecutive:
		return "Executive"
	case RoleAdmin:
		return "Administrator"
	default:
		return string(r)
	}
}
