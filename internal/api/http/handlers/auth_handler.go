package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/api/dto"
	"github.com/brightrock/efficiency-platform/internal/auth"
	"github.com/brightrock/efficiency-platform/internal/service"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// AuthHandler exposes the auth flows.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Login(c.UserContext(), auth.ClientID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Register(c.UserContext(), auth.ClientID(c), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(result)})
}

// DirectAccess handles POST /api/v1/auth/direct-access.
func (h *AuthHandler) DirectAccess(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.DirectAccess(c.UserContext(), auth.ClientID(c), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// SelectRole handles POST /api/v1/auth/role.
func (h *AuthHandler) SelectRole(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.SelectRole(c.UserContext(), auth.ClientID(c), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	result, err := h.auth.Logout(c.UserContext(), auth.ClientID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Status handles GET /api/v1/auth/status.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	result, err := h.auth.Status(c.UserContext(), auth.ClientID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Verify handles GET /api/v1/auth/verify.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	claims, err := h.auth.VerifyToken(c.UserContext(), auth.ClientID(c))
	if err != nil {
		return err
	}
	resp := dto.TokenClaimsResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Demo:   claims.Demo,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ForgotPassword handles POST /api/v1/auth/password/forgot.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req service.ForgotPasswordInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.RequestPasswordReset(c.UserContext(), req); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": dto.MessageResponse{
		Message: "If an account exists for that email, a reset link has been sent",
	}})
}

// ResetPassword handles POST /api/v1/auth/password/reset.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req service.ResetPasswordInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ResetPassword(c.UserContext(), req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MessageResponse{Message: "Password has been reset"}})
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	resp := dto.AuthResponse{
		Session:     dto.NewSessionResponse(result.Status, true),
		RedirectURL: result.Redirect,
	}
	if !result.ExpiresAt.IsZero() {
		exp := result.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func principal(c *fiber.Ctx) *auth.Principal {
	p, _ := auth.PrincipalFromContext(c)
	return p
}
