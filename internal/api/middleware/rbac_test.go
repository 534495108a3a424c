package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/api/handler"
	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/policy"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(handler.ActorKey, domain.Actor{ID: "a1", Role: domain.RoleAnalyst})

	called := false
	h := RBAC(policy.ActionCreditSetStatus)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	cases := []struct {
		role   domain.Role
		action policy.Action
	}{
		{domain.RoleRM, policy.ActionCreditSetStatus},
		{domain.RoleAdmin, policy.ActionClientCreate},
		{domain.RoleAnalyst, policy.ActionUserList},
	}

	for _, tc := range cases {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(handler.ActorKey, domain.Actor{ID: "x", Role: tc.role})

		h := RBAC(tc.action)(func(c echo.Context) error {
			t.Fatalf("should not reach next handler")
			return nil
		})

		if err := h(c); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s/%s: expected ErrForbidden, got %v", tc.role, tc.action, err)
		}
	}
}

func TestRBAC_RequiresActor(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RBAC(policy.ActionProfileRead)(func(c echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
