package dto

import (
	"time"

	"github.com/brightrock/efficiency-platform/internal/domain"
)

// RoleRequest selects a role or asks for direct access as one.
type RoleRequest struct {
	Role domain.Role `json:"role"`
}

// SessionResponse is the client-visible auth status.
type SessionResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	HasRole         bool         `json:"hasRole"`
	HasUser         bool         `json:"hasUser"`
	Role            domain.Role  `json:"role"`
	User            *domain.User `json:"user"`
	Token           *string      `json:"token,omitempty"`
}

// NewSessionResponse copies status; the token is only included when withToken is set.
func NewSessionResponse(status domain.AuthStatus, withToken bool) SessionResponse {
	resp := SessionResponse{
		IsAuthenticated: status.IsAuthenticated,
		HasRole:         status.HasRole,
		HasUser:         status.HasUser,
		Role:            status.Role,
		User:            status.User,
	}
	if withToken {
		resp.Token = status.Token
	}
	return resp
}

// AuthResponse is returned by every auth flow.
type AuthResponse struct {
	Session     SessionResponse `json:"session"`
	RedirectURL string          `json:"redirectUrl"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
}

// TokenClaimsResponse describes a verified token.
type TokenClaimsResponse struct {
	Valid     bool        `json:"valid"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role,omitempty"`
	Demo      bool        `json:"demo"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// MessageResponse carries a banner message.
type MessageResponse struct {
	Message string `json:"message"`
}
