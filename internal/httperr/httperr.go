package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericInternal = "Internal server error"

type HTTPError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func Write(c *gin.Context, status int, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Error:   message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func InternalJSON(c *gin.Context) {
	Write(c, http.StatusInternalServerError, genericInternal)
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict, KindUpload:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindStaleState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond translates a use case error into the JSON error envelope. Internal
// errors are logged with their cause and answered with a generic message.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be *Error
	if !errors.As(err, &be) || be.Kind == KindInternal {
		if log != nil {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		InternalJSON(c)
		return
	}

	Write(c, StatusOf(be.Kind), be.Message)
}
