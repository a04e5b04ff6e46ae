package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/infrastructure/cache"
	"biblioteca-backend/internal/session"
	"biblioteca-backend/internal/shared"
)

const testCookie = "sessao_id"

func newTestAuth(t *testing.T) (*Auth, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(cache.NewMemoryCache(), time.Hour)
	return NewAuth(sessions, testCookie), sessions
}

func loginAs(t *testing.T, sessions *session.Manager, tipo shared.Role) string {
	t.Helper()
	token, err := sessions.Create(context.Background(), session.Principal{
		ID:    uuid.New(),
		Nome:  "Teste",
		Email: "teste@example.com",
		Tipo:  tipo,
	})
	require.NoError(t, err)
	return token
}

func newRouter(auth *Auth, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.Identify())
	register(r)
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAPIAnonymous(t *testing.T) {
	auth, _ := newTestAuth(t)
	r := newRouter(auth, func(r *gin.Engine) {
		r.GET("/api/protegido", auth.RequireAPI(shared.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})

	w := doGet(r, "/api/protegido", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Não autenticado"}`, w.Body.String())
}

func TestRequireAPIRoleMatrix(t *testing.T) {
	cases := []struct {
		name     string
		tipo     shared.Role
		allowed  []shared.Role
		wantCode int
	}{
		{"admin on admin route", shared.RoleAdmin, []shared.Role{shared.RoleAdmin}, http.StatusOK},
		{"professor on admin route", shared.RoleProfessor, []shared.Role{shared.RoleAdmin}, http.StatusForbidden},
		{"professor on shared route", shared.RoleProfessor, []shared.Role{shared.RoleProfessor, shared.RoleAdmin}, http.StatusOK},
		{"student on professor route", shared.RoleStudent, []shared.Role{shared.RoleProfessor}, http.StatusForbidden},
		{"visitor on open authed route", shared.RoleVisitor, nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth, sessions := newTestAuth(t)
			r := newRouter(auth, func(r *gin.Engine) {
				r.GET("/api/rota", auth.RequireAPI(tc.allowed...), func(c *gin.Context) {
					c.Status(http.StatusOK)
				})
			})

			token := loginAs(t, sessions, tc.tipo)
			w := doGet(r, "/api/rota", token)
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode == http.StatusForbidden {
				assert.JSONEq(t, `{"error": "Acesso não autorizado"}`, w.Body.String())
			}
		})
	}
}

func TestRequirePageAnonymousRedirectsToRoot(t *testing.T) {
	auth, _ := newTestAuth(t)
	r := newRouter(auth, func(r *gin.Engine) {
		r.GET("/admin", auth.RequirePage(shared.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})

	w := doGet(r, "/admin", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequirePageWrongRoleRedirectsHome(t *testing.T) {
	cases := []struct {
		tipo     shared.Role
		wantHome string
	}{
		{shared.RoleProfessor, "/professor"},
		{shared.RoleStudent, "/user"},
		{shared.RoleVisitor, "/user"},
	}

	for _, tc := range cases {
		t.Run(string(tc.tipo), func(t *testing.T) {
			auth, sessions := newTestAuth(t)
			r := newRouter(auth, func(r *gin.Engine) {
				r.GET("/admin", auth.RequirePage(shared.RoleAdmin), func(c *gin.Context) {
					c.Status(http.StatusOK)
				})
			})

			token := loginAs(t, sessions, tc.tipo)
			w := doGet(r, "/admin", token)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tc.wantHome, w.Header().Get("Location"))
		})
	}
}

func TestIdentifyIgnoresBogusToken(t *testing.T) {
	auth, _ := newTestAuth(t)
	r := newRouter(auth, func(r *gin.Engine) {
		r.GET("/api/quem-sou", func(c *gin.Context) {
			if _, ok := CurrentPrincipal(c); ok {
				c.Status(http.StatusOK)
				return
			}
			c.Status(http.StatusUnauthorized)
		})
	})

	w := doGet(r, "/api/quem-sou", "token-inventado")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDestroyedSessionStopsResolving(t *testing.T) {
	auth, sessions := newTestAuth(t)
	r := newRouter(auth, func(r *gin.Engine) {
		r.GET("/api/rota", auth.RequireAPI(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})

	token := loginAs(t, sessions, shared.RoleStudent)
	require.Equal(t, http.StatusOK, doGet(r, "/api/rota", token).Code)

	require.NoError(t, sessions.Destroy(context.Background(), token))
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/api/rota", token).Code)
}
