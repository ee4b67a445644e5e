package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondDomainError translates an aggregate error code into an HTTP status.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	RespondError(c, statusFor(code), string(code), err)
}

func statusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation, domainagg.CodeInvariantViolation, domainagg.CodePreconditionFailed:
		return http.StatusUnprocessableEntity
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
