package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Failure wire shape: {"error": <message>}.
// Confirmation wire shape: {"success": true, ...}.

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Internal logs the underlying error server-side and returns a
// generic message: internal detail never reaches the client.
func Internal(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("Internal server error")

	Error(c, http.StatusInternalServerError, "Erro interno do servidor")
}

// Success renders {"success": true} merged with extra fields.
func Success(c *gin.Context, statusCode int, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// JSON renders a bare payload (listings, detail objects).
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}
