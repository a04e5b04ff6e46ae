package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"biblioteca-backend/internal/session"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/internal/shared/response"
)

const principalKey = "principal"

// Auth resolves the session cookie to a principal and enforces role
// membership. Page routes get the redirect matrix of the original
// app; API routes get 401/403 JSON.
type Auth struct {
	sessions   *session.Manager
	cookieName string
}

func NewAuth(sessions *session.Manager, cookieName string) *Auth {
	return &Auth{sessions: sessions, cookieName: cookieName}
}

// Identify loads the principal into the request context when a valid
// session cookie is present. It never rejects: public routes use it
// to branch on optional identity.
func (a *Auth) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(a.cookieName)
		if err != nil {
			c.Next()
			return
		}

		p, err := a.sessions.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Msg("Session lookup failed")
			}
			c.Next()
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// RequirePage gates an HTML page route. Anonymous requests go back
// to the public entry point; authenticated requests with the wrong
// role go to their own home route. An empty role list admits any
// authenticated principal.
func (a *Auth) RequirePage(roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		if !roleAllowed(p.Tipo, roles) {
			log.Info().
				Str("tipo", string(p.Tipo)).
				Str("path", c.Request.URL.Path).
				Msg("Page access denied, redirecting to role home")
			c.Redirect(http.StatusFound, p.Tipo.HomeRoute())
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAPI gates a JSON route: 401 without a session, 403 on role
// mismatch. An empty role list admits any authenticated principal.
func (a *Auth) RequireAPI(roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c, "Não autenticado")
			c.Abort()
			return
		}

		if !roleAllowed(p.Tipo, roles) {
			log.Info().
				Str("tipo", string(p.Tipo)).
				Str("path", c.Request.URL.Path).
				Msg("API access denied")
			response.Forbidden(c, "Acesso não autorizado")
			c.Abort()
			return
		}

		c.Next()
	}
}

func roleAllowed(have shared.Role, allowed []shared.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if have == r {
			return true
		}
	}
	return false
}

// CurrentPrincipal returns the principal placed by Identify.
func CurrentPrincipal(c *gin.Context) (*session.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*session.Principal)
	return p, ok
}
