package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biblioteca-backend/internal/config"
	"biblioteca-backend/internal/domains/user"
	"biblioteca-backend/internal/session"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/internal/shared/middleware"
	"biblioteca-backend/internal/shared/response"
	"biblioteca-backend/pkg/logger"
)

// RecoveryNotifier queues the password-recovery email for delivery.
type RecoveryNotifier interface {
	EnqueueRecoveryEmail(ctx context.Context, payload shared.SendRecoveryEmailPayload) error
}

type UserHandler struct {
	service  user.Service
	sessions *session.Manager
	mail     RecoveryNotifier
	cfg      *config.Config
}

func NewUserHandler(service user.Service, sessions *session.Manager, mail RecoveryNotifier, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, sessions: sessions, mail: mail, cfg: cfg}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	status := user.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.Internal(c, err)
		return
	}
	response.Error(c, status, err.Error())
}

// Register - POST /auth/cadastro
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos os campos obrigatórios devem ser preenchidos")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Cadastro realizado com sucesso",
		"usuario": dto,
	})
}

// Login - POST /auth/login
// On success a session is established and the client is told where
// to go based on role.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email e senha são obrigatórios")
		return
	}

	u, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), session.Principal{
		ID:    u.ID,
		Nome:  u.Nome,
		Email: u.Email,
		Tipo:  u.Tipo,
	})
	if err != nil {
		response.Internal(c, err)
		return
	}

	c.SetCookie(
		h.cfg.Session.CookieName,
		token,
		int(h.cfg.Session.TTL.Seconds()),
		"/",
		"",
		h.cfg.Session.Secure,
		true,
	)

	response.Success(c, http.StatusOK, gin.H{
		"redirect": u.Tipo.HomeRoute(),
	})
}

// Logout - POST /logout
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil {
		_ = h.sessions.Destroy(c.Request.Context(), token)
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)

	response.Success(c, http.StatusOK, gin.H{})
}

// CurrentUser - GET /api/usuario/atual (alias /api/user-info)
func (h *UserHandler) CurrentUser(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// ---------------------------------------------------------------
// Admin: usuarios
// ---------------------------------------------------------------

// ListUsers - GET /admin/api/usuarios
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// GetUser - GET /admin/api/usuarios/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, u.ToDTO())
}

// UpdateUser - PUT /admin/api/usuarios/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos")
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Usuário atualizado com sucesso",
	})
}

// DeleteUser - DELETE /admin/api/usuarios/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Usuário removido com sucesso",
	})
}

// ResetUserPassword - POST /admin/api/usuarios/:id/redefinir-senha
// Issues a random temporary password, returned once in the response.
func (h *UserHandler) ResetUserPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	senha, err := h.service.ResetPassword(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Senha redefinida com sucesso",
		"novaSenha": senha,
	})
}

// ---------------------------------------------------------------
// Admin: professores
// ---------------------------------------------------------------

// ListProfessors - GET /admin/api/professores
func (h *UserHandler) ListProfessors(c *gin.Context) {
	role := shared.RoleProfessor
	professors, err := h.service.List(c.Request.Context(), &role)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, professors)
}

// GetProfessor - GET /admin/api/professores/:id
func (h *UserHandler) GetProfessor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil || u.Tipo != shared.RoleProfessor {
		response.NotFound(c, "Professor não encontrado")
		return
	}
	response.JSON(c, http.StatusOK, u.ToDTO())
}

// CreateProfessor - POST /admin/api/professores
func (h *UserHandler) CreateProfessor(c *gin.Context) {
	var req user.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Nome, email e número de agente são obrigatórios")
		return
	}

	dto, tempPassword, err := h.service.CreateProfessor(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{
		"message":   "Professor cadastrado com sucesso",
		"professor": dto,
	}
	if tempPassword != "" {
		body["senhaTemporaria"] = tempPassword
	}
	response.Success(c, http.StatusCreated, body)
}

// UpdateProfessor - PUT /admin/api/professores/:id
func (h *UserHandler) UpdateProfessor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var req user.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos")
		return
	}

	if err := h.service.UpdateProfessor(c.Request.Context(), id, req); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Professor atualizado com sucesso",
	})
}

// DeleteProfessor - DELETE /admin/api/professores/:id
func (h *UserHandler) DeleteProfessor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	if err := h.service.DeleteProfessor(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Professor removido com sucesso",
	})
}

// ---------------------------------------------------------------
// Password recovery
// ---------------------------------------------------------------

// RequestRecovery - POST /recuperar-senha/solicitar
// The response is the same whether or not the email exists.
func (h *UserHandler) RequestRecovery(c *gin.Context) {
	var req user.RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email é obrigatório")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Email é obrigatório")
		return
	}

	token, err := h.service.RequestRecovery(c.Request.Context(), req.Email)
	if err != nil {
		response.Internal(c, err)
		return
	}

	if token != "" && h.mail != nil {
		err := h.mail.EnqueueRecoveryEmail(c.Request.Context(), shared.SendRecoveryEmailPayload{
			Email:        req.Email,
			Link:         fmt.Sprintf("%s/recuperar-senha/redefinir?token=%s", h.cfg.Mail.BaseURL, token),
			ValidMinutes: int(h.cfg.Recovery.TokenTTL.Minutes()),
		})
		if err != nil {
			// The answer stays generic; a delivery problem must not
			// reveal whether the email exists.
			logger.Warn("recovery email enqueue failed", err)
		}
	}

	body := gin.H{
		"message": "Instruções de recuperação enviadas para seu email",
	}
	// Development builds hand the link back directly for manual
	// testing.
	if token != "" && h.cfg.App.Environment != "production" {
		body["link"] = fmt.Sprintf("/recuperar-senha/redefinir?token=%s", token)
	}
	response.Success(c, http.StatusOK, body)
}

// VerifyRecoveryToken - GET /recuperar-senha/verificar-token?token=...
func (h *UserHandler) VerifyRecoveryToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.BadRequest(c, "Token é obrigatório")
		return
	}

	if err := h.service.VerifyRecoveryToken(c.Request.Context(), token); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ResetWithToken - POST /recuperar-senha/redefinir
func (h *UserHandler) ResetWithToken(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Token e nova senha são obrigatórios")
		return
	}

	if err := h.service.ResetWithToken(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Senha redefinida com sucesso",
	})
}
