package domain

import "time"

// UserStatus represents lifecycle states for a directory user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is both the signed-in account persisted as currentUser and a row in the admin user directory.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username,omitempty"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	Role         Role       `json:"role"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Department   string     `json:"department,omitempty"`
	CompanyName  string     `json:"companyName,omitempty"`
	Status       UserStatus `json:"status,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt,omitempty"`
}

// DisplayName prefers the full name, then first/last name, then username.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.FirstName != "" || u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// SessionView strips directory-only fields; it is what gets stored as currentUser.
func (u User) SessionView() User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.DisplayName(),
		Role:     u.Role,
	}
}
