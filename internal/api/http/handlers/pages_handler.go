package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brightrock/efficiency-platform/internal/api/dto"
	"github.com/brightrock/efficiency-platform/internal/auth"
	"github.com/brightrock/efficiency-platform/internal/domain"
)

// PagesHandler renders page routes. Guarding happens in the router.
type PagesHandler struct {
	mw *auth.Middleware
}

// NewPagesHandler constructs handler.
func NewPagesHandler(mw *auth.Middleware) *PagesHandler {
	return &PagesHandler{mw: mw}
}

// Render returns a handler for view. Route params named in dataEndpoint (":id") are substituted.
func (h *PagesHandler) Render(view, dataEndpoint string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := h.page(c, view, dataEndpoint)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

// RoleSelection lists the selectable roles with their landing pages.
func (h *PagesHandler) RoleSelection(c *fiber.Ctx) error {
	page, err := h.page(c, "role-selection", "/api/v1/auth/role")
	if err != nil {
		return err
	}
	for _, role := range domain.PlatformRoles {
		page.Options = append(page.Options, dto.RoleOption{
			Role:  string(role),
			Label: role.Label(),
			Home:  auth.RoleHomePath(role),
		})
	}
	return c.JSON(page)
}

// Root sends the client to the page its auth status calls for.
func (h *PagesHandler) Root(c *fiber.Ctx) error {
	status, err := h.mw.Status(c)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Redirect(auth.ResolveDefaultRedirect(status), http.StatusFound)
}

// Redirect answers with a fixed redirect; used for legacy paths.
func Redirect(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect(target, http.StatusFound)
	}
}

func (h *PagesHandler) page(c *fiber.Ctx, view, dataEndpoint string) (*dto.PageResponse, error) {
	var status domain.AuthStatus
	if p := principal(c); p != nil {
		status = p.Status
	} else {
		s, err := h.mw.Status(c)
		if err != nil {
			return nil, err
		}
		status = s
	}

	page := &dto.PageResponse{
		View:         view,
		Session:      dto.NewSessionResponse(status, false),
		DataEndpoint: dataEndpoint,
	}
	for _, name := range c.Route().Params {
		value := c.Params(name)
		if page.Params == nil {
			page.Params = make(map[string]string)
		}
		page.Params[name] = value
		page.DataEndpoint = strings.ReplaceAll(page.DataEndpoint, ":"+name, value)
	}
	return page, nil
}
