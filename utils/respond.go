package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/auth"
)

// HTTPError is an expected failure with a client-safe message.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func BadRequest(msg string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg}
}

// NotFound builds "<resource> not found".
func NotFound(resource string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: resource + " not found"}
}

// StatusFor maps an error onto its HTTP status and client message. Unknown
// errors become a generic 500.
func StatusFor(err error) (int, string) {
	var he *HTTPError
	switch {
	case errors.As(err, &he):
		return he.Status, he.Message
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect email or password"
	case errors.Is(err, auth.ErrAccountDeactivated):
		return http.StatusUnauthorized, "Account is deactivated"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "Not enough permissions"
	case errors.Is(err, auth.ErrBootstrapAlreadyDone):
		return http.StatusBadRequest, "Admin user already exists"
	case errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, auth.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError aborts the request with the mapped status. Server faults are
// logged with their cause, which never reaches the client.
func RespondError(c *gin.Context, logger *slog.Logger, err error) {
	status, msg := StatusFor(err)
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	if status >= http.StatusInternalServerError {
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
