package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biblioteca-backend/internal/domains/author"
	"biblioteca-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(service author.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

func (h *AuthorHandler) fail(c *gin.Context, err error) {
	status := author.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.Internal(c, err)
		return
	}
	response.Error(c, status, err.Error())
}

// List - GET /api/autores (public)
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, authors)
}

// Get - GET /api/autores/:id (public)
func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// Create - POST /api/autores (professor, admin)
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.SaveAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Nome do autor é obrigatório")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Autor criado com sucesso",
		"autor":   a,
	})
}

// Update - PUT /api/autores/:id (professor, admin)
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var req author.SaveAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Nome do autor é obrigatório")
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Autor atualizado com sucesso",
		"autor":   a,
	})
}

// Delete - DELETE /api/autores/:id (admin)
func (h *AuthorHandler) Delete(c *gin.Context) {
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
		"message": "Autor removido com sucesso",
	})
}
