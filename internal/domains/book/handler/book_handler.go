package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biblioteca-backend/internal/config"
	"biblioteca-backend/internal/domains/book"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/internal/shared/middleware"
	"biblioteca-backend/internal/shared/response"
)

type BookHandler struct {
	service book.Service
	cfg     *config.Config
}

func NewBookHandler(service book.Service, cfg *config.Config) *BookHandler {
	return &BookHandler{service: service, cfg: cfg}
}

func (h *BookHandler) fail(c *gin.Context, err error) {
	status := book.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.Internal(c, err)
		return
	}
	response.Error(c, status, err.Error())
}

func (h *BookHandler) actor(c *gin.Context) (book.Actor, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return book.Actor{}, false
	}
	return book.Actor{ID: p.ID, Tipo: p.Tipo}, true
}

// parseUploads reads the multipart files of the request. A request
// without any file section is fine, updates allow it.
func (h *BookHandler) parseUploads(c *gin.Context) (*book.Uploads, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return &book.Uploads{}, nil
		}
		return nil, err
	}
	return book.ParseUploads(form, h.cfg.Upload.MaxFileSize)
}

// List - GET /api/livros (public)
// Professors get only their own books when ?meusLivros=true.
func (h *BookHandler) List(c *gin.Context) {
	if c.Query("meusLivros") == "true" {
		if actor, ok := h.actor(c); ok && actor.Tipo == shared.RoleProfessor {
			h.listMine(c, actor)
			return
		}
	}

	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// ListMine - GET /api/livros/meus-livros (professor)
func (h *BookHandler) ListMine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}
	h.listMine(c, actor)
}

func (h *BookHandler) listMine(c *gin.Context, actor book.Actor) {
	books, err := h.service.ListMine(c.Request.Context(), actor.ID)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// Featured - GET /api/livros-destaque (public)
func (h *BookHandler) Featured(c *gin.Context) {
	books, err := h.service.ListFeatured(c.Request.Context(), 6)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// Get - GET /api/livros/:id (public)
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}

// Create - POST /api/livros (professor, admin), multipart form
func (h *BookHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}

	var req book.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Título, autor e categoria são obrigatórios")
		return
	}

	uploads, err := h.parseUploads(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), actor, req, uploads)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Livro cadastrado com sucesso",
		"livro":   b,
	})
}

// Update - PUT /api/livros/:id (professor owns it, or admin)
func (h *BookHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Dados inválidos")
		return
	}

	uploads, err := h.parseUploads(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), actor, id, req, uploads)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Livro atualizado com sucesso",
		"livro":   b,
	})
}

// Delete - DELETE /api/livros/:id (professor owns it, or admin)
func (h *BookHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		response.Unauthorized(c, "Não autenticado")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Livro removido com sucesso",
	})
}

// Download - GET /api/livros/:id/download (any authenticated user)
func (h *BookHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	dl, err := h.service.DownloadPDF(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer dl.Reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	c.Header("Content-Type", dl.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, dl.Reader)
}
