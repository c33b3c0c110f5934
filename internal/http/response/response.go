package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/platform/apierr"
)

// ErrorEnvelope is the failure body for every endpoint: a human message
// plus the machine code from the error taxonomy.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func Error(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status, ErrorEnvelope{Message: ae.Error(), Error: ae.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{Message: "internal server error", Error: apierr.CodeInternal})
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
