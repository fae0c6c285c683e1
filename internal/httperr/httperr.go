package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code      string   `json:"error_code"`
	Message   string   `json:"message"`
	Kind      Kind     `json:"kind,omitempty"`
	EntityIDs []string `json:"entity_ids,omitempty"`
	Details   any      `json:"details,omitempty"`
	Retryable bool     `json:"retryable,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition, KindValidation:
		return http.StatusBadRequest
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err with the status of its kind. Untyped errors are logged
// and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	e, ok := As(err)
	if !ok {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err,
		)
		Internal(c, "internal_error", "Internal error.")
		return
	}

	c.JSON(StatusFor(e.Kind), HTTPError{
		Code:      e.Code,
		Message:   e.Message,
		Kind:      e.Kind,
		EntityIDs: e.EntityIDs,
		Details:   e.Details,
		Retryable: e.Retryable,
	})
}
