package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/lessonpress/content"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// badRequest marks errors caused by the request body rather than by rendering.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// respondFailure maps an error to the envelope: unsupported format and bad content are 400, the
// rest are render failures.
func respondFailure(c *gin.Context, err error) {
	var br badRequest
	switch {
	case errors.Is(err, content.ErrUnsupportedFormat):
		RespondError(c, http.StatusBadRequest, "unsupported_format", err)
	case errors.As(err, &br):
		RespondError(c, http.StatusBadRequest, "invalid_content", err)
	default:
		RespondError(c, http.StatusInternalServerError, "render_failed", err)
	}
}
