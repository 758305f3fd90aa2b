package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "cred-vault.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error onto its HTTP rendering
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.FromDomain(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// BadRequest sends a 400 with the binding failure detail
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "invalid_argument",
		"message": err.Error(),
	})
}
