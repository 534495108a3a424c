package policy

import (
	"errors"
	"testing"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		role    domain.Role
		actor   string
		action  Action
		owner   string
		wantErr error
	}{
		{"admin lists users", domain.RoleAdmin, "a1", ActionUserList, "", nil},
		{"admin sets user status", domain.RoleAdmin, "a1", ActionUserSetStatus, "u9", nil},
		{"admin cannot read clients", domain.RoleAdmin, "a1", ActionClientRead, "a1", domain.ErrForbidden},
		{"admin cannot decide credit", domain.RoleAdmin, "a1", ActionCreditSetStatus, "", domain.ErrForbidden},
		{"rm creates client", domain.RoleRM, "r1", ActionClientCreate, "", nil},
		{"rm reads own client", domain.RoleRM, "r1", ActionClientRead, "r1", nil},
		{"rm reading foreign client is masked", domain.RoleRM, "r1", ActionClientRead, "r2", domain.ErrNotFound},
		{"rm updating foreign client is masked", domain.RoleRM, "r1", ActionClientUpdate, "r2", domain.ErrNotFound},
		{"rm reads own credit request", domain.RoleRM, "r1", ActionCreditRead, "r1", nil},
		{"rm reading foreign credit request is masked", domain.RoleRM, "r1", ActionCreditRead, "r2", domain.ErrNotFound},
		{"rm cannot decide credit", domain.RoleRM, "r1", ActionCreditSetStatus, "r1", domain.ErrForbidden},
		{"rm cannot list users", domain.RoleRM, "r1", ActionUserList, "", domain.ErrForbidden},
		{"analyst reads any credit request", domain.RoleAnalyst, "an1", ActionCreditRead, "r2", nil},
		{"analyst decides credit", domain.RoleAnalyst, "an1", ActionCreditSetStatus, "r2", nil},
		{"analyst has no client access", domain.RoleAnalyst, "an1", ActionClientRead, "an1", domain.ErrForbidden},
		{"analyst cannot create credit", domain.RoleAnalyst, "an1", ActionCreditCreate, "", domain.ErrForbidden},
		{"profile of self", domain.RoleAnalyst, "an1", ActionProfileRead, "an1", nil},
		{"empty actor never owns", domain.RoleRM, "", ActionClientRead, "", domain.ErrNotFound},
		{"unknown role", domain.Role("GUEST"), "g1", ActionProfileRead, "g1", domain.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.role, tc.actor, tc.action, tc.owner)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Authorize() = %v, want %v", err, tc.wantErr)
			}
			if got := Allow(tc.role, tc.actor, tc.action, tc.owner); got != (tc.wantErr == nil) {
				t.Fatalf("Allow() = %v, want %v", got, tc.wantErr == nil)
			}
		})
	}
}

func TestAuthorize_OwnershipMissIsNeverForbidden(t *testing.T) {
	for _, action := range []Action{ActionClientRead, ActionClientUpdate, ActionCreditRead} {
		err := Authorize(domain.RoleRM, "r1", action, "r2")
		if errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: ownership miss surfaced as forbidden", action)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", action, err)
		}
	}
}

func TestPermits(t *testing.T) {
	if !Permits(domain.RoleRM, ActionClientUpdate) {
		t.Fatalf("rm should be permitted client.update")
	}
	if Permits(domain.RoleAnalyst, ActionClientSearch) {
		t.Fatalf("analyst should not be permitted client.search")
	}
	if Permits(domain.RoleAdmin, ActionCreditListAll) {
		t.Fatalf("admin should not be permitted credit.list_all")
	}
}
