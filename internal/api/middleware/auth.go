package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/api/handler"
	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

// Auth verifies the bearer token and injects the resulting domain.Actor into
// the context. Role and actor id come from the token only.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(handler.ActorKey, actor)
			return next(c)
		}
	}
}
