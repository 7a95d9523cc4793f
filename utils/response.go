package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError writes the uniform failure envelope.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

// RespondWithErrorDetail additionally carries a diagnostic detail string.
// Callers must only pass driver/internal error text here in dev mode.
func RespondWithErrorDetail(c *gin.Context, code int, message, detail string) {
	if detail == "" {
		RespondWithError(c, code, message)
		return
	}
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
		"error":   detail,
	})
}
