package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biblioteca-backend/internal/domains/category"
	"biblioteca-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) fail(c *gin.Context, err error) {
	status := category.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.Internal(c, err)
		return
	}
	response.Error(c, status, err.Error())
}

// List - GET /api/categorias (public)
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories)
}

// Get - GET /api/categorias/:id (public)
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cat)
}

// Create - POST /api/categorias (professor, admin)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Nome da categoria é obrigatório")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "Categoria criada com sucesso",
		"categoria": cat,
	})
}

// Update - PUT /api/categorias/:id (professor, admin)
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var req category.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Nome da categoria é obrigatório")
		return
	}

	cat, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Categoria atualizada com sucesso",
		"categoria": cat,
	})
}

// Delete - DELETE /api/categorias/:id (admin)
func (h *CategoryHandler) Delete(c *gin.Context) {
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
		"message": "Categoria removida com sucesso",
	})
}
