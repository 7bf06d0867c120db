package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/domain"
	"github.com/brightrock/efficiency-platform/internal/session"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

const (
	principalKey = "auth_principal"
	clientKey    = "auth_client"

	// ClientCookie identifies a browser's storage namespace.
	ClientCookie = "brp_client"
	// ClientHeader lets API callers pick their namespace explicitly.
	ClientHeader = "X-Client-ID"
)

// Principal represents the caller after the guard let it through.
type Principal struct {
	ClientID string
	Status   domain.AuthStatus
}

// UserID returns the signed-in user's id or an empty string.
func (p *Principal) UserID() string {
	if p == nil || p.Status.User == nil {
		return ""
	}
	return p.Status.User.ID
}

// Middleware wires the session store and guard into fiber.
type Middleware struct {
	sessions     *session.Manager
	guard        *Guard
	logger       *zap.Logger
	cookieSecure bool
	onDenial     func(target string)
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions *session.Manager, guard *Guard, logger *zap.Logger, cookieSecure bool) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{sessions: sessions, guard: guard, logger: logger, cookieSecure: cookieSecure}
}

// OnDenial registers a callback invoked with the redirect target of every denied request.
func (m *Middleware) OnDenial(fn func(target string)) {
	m.onDenial = fn
}

func (m *Middleware) denied(target string) {
	if m.onDenial != nil {
		m.onDenial(target)
	}
}

// ClientIdentity resolves the client id from the header or cookie, issuing a new cookie when absent.
func (m *Middleware) ClientIdentity(c *fiber.Ctx) error {
	id := c.Get(ClientHeader)
	if id == "" {
		id = c.Cookies(ClientCookie)
	}
	// header and cookie values alias the request buffer; the id outlives it as a storage key
	id = utils.CopyString(id)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     ClientCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			HTTPOnly: true,
			Secure:   m.cookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(clientKey, id)
	return c.Next()
}

// ClientID returns the id set by ClientIdentity.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(clientKey).(string)
	return id
}

// Status reads the caller's auth status. A corrupt session is cleared and reported as signed out.
func (m *Middleware) Status(c *fiber.Ctx) (domain.AuthStatus, error) {
	client := ClientID(c)
	status, err := m.sessions.CheckStatus(c.UserContext(), client)
	if err == nil {
		return status, nil
	}
	if errors.Is(err, session.ErrCorruptSession) {
		m.logger.Warn("corrupt session cleared", zap.String("client", client), zap.Error(err))
		if clearErr := m.sessions.Clear(c.UserContext(), client); clearErr != nil {
			return domain.AuthStatus{}, clearErr
		}
		return domain.AuthStatus{}, nil
	}
	return domain.AuthStatus{}, err
}

// RequirePage guards a page route. Denials reset cached state and issue a full redirect.
func (m *Middleware) RequirePage(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := m.Status(c)
		if err != nil {
			return apperrors.MapError(err)
		}
		decision := m.guard.Evaluate(status, c.Path(), roles)
		if !decision.Allowed() {
			return m.redirect(c, decision.Redirect)
		}
		c.Locals(principalKey, &Principal{ClientID: ClientID(c), Status: status})
		return c.Next()
	}
}

// RequireAPI guards a JSON route. Denials become errors that name the page to load.
func (m *Middleware) RequireAPI(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := m.Status(c)
		if err != nil {
			return apperrors.MapError(err)
		}
		decision := m.guard.Evaluate(status, c.Path(), roles)
		if !decision.Allowed() {
			m.denied(decision.Redirect)
		}
		switch decision.Outcome {
		case Allow:
		case DenyUnauthenticated:
			m.sessions.Evict(ClientID(c))
			return apperrors.NewRedirectRequired("UNAUTHORIZED", "authentication required", http.StatusUnauthorized, decision.Redirect)
		case DenyNoRole:
			return apperrors.NewRedirectRequired("ROLE_REQUIRED", "select a role first", http.StatusForbidden, decision.Redirect)
		default:
			return apperrors.NewRedirectRequired("FORBIDDEN", "insufficient role", http.StatusForbidden, decision.Redirect)
		}
		c.Locals(principalKey, &Principal{ClientID: ClientID(c), Status: status})
		return c.Next()
	}
}

// RequireSignedInAPI only needs a token.
func (m *Middleware) RequireSignedInAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := m.Status(c)
		if err != nil {
			return apperrors.MapError(err)
		}
		if !status.IsAuthenticated {
			m.denied(PathLogin)
			return apperrors.NewRedirectRequired("UNAUTHORIZED", "authentication required", http.StatusUnauthorized, PathLogin)
		}
		c.Locals(principalKey, &Principal{ClientID: ClientID(c), Status: status})
		return c.Next()
	}
}

func (m *Middleware) redirect(c *fiber.Ctx, target string) error {
	m.denied(target)
	m.sessions.Evict(ClientID(c))
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("Clear-Site-Data", `"cache"`)
	return c.Redirect(target, http.StatusFound)
}

// PrincipalFromContext retrieves the principal stored by the guard.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
