package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biblioteca-backend/internal/domains/stats"
	"biblioteca-backend/internal/shared/middleware"
	"biblioteca-backend/internal/shared/response"
)

type StatsHandler struct {
	service stats.Service
}

func NewStatsHandler(service stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// General - GET /api/estatisticas-gerais (public)
func (h *StatsHandler) General(c *gin.Context) {
	s, err := h.service.General(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, s)
}

// Admin - GET /admin/api/estatisticas (admin)
func (h *StatsHandler) Admin(c *gin.Context) {
	s, err := h.service.Admin(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, s)
}

// AdminActivity - GET /admin/api/atividade-recente (admin)
func (h *StatsHandler) AdminActivity(c *gin.Context) {
	feed, err := h.service.AdminActivity(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed)
}

// Professor - GET /api/professor/estatisticas (professor)
func (h *StatsHandler) Professor(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}

	s, err := h.service.Professor(c.Request.Context(), p.ID)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, s)
}

// ProfessorActivity - GET /api/professor/atividade-recente (professor)
func (h *StatsHandler) ProfessorActivity(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}

	feed, err := h.service.ProfessorActivity(c.Request.Context(), p.ID)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed)
}
