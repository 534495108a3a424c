package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// knownErrors maps domain errors to their HTTP status and public message.
// Order matters: resource-specific not-found errors precede ErrNotFound.
var knownErrors = []struct {
	err  error
	code int
	msg  string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrClientNotFound, http.StatusNotFound, "client not found"},
	{domain.ErrCreditRequestNotFound, http.StatusNotFound, "credit request not found"},
	{domain.ErrNotFound, http.StatusNotFound, "not found"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrDuplicateIdentity, http.StatusConflict, "username or email already exists"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrAccountDeactivated, http.StatusForbidden, "user account is deactivated"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation messages describe the caller's own input.
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusUnprocessableEntity, err.Error()
	}

	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k.code, k.msg
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
