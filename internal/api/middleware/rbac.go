package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/api/handler"
	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/policy"
)

// RBAC rejects callers whose role may not perform action. Ownership is
// checked later, once the resource is loaded.
func RBAC(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(handler.ActorKey).(domain.Actor)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !policy.Permits(actor.Role, action) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
