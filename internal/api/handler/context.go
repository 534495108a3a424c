package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// ActorKey is the echo context key under which the Auth middleware stores the
// verified domain.Actor.
const ActorKey = "actor"

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call: a missing or half-filled actor
// means the route was mounted without authentication.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get(ActorKey).(domain.Actor)
	if !ok || actor.ID == "" || !actor.Role.Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
