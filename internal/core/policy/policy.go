// Package policy decides which role may perform which action, and on whose
// resources. It has no dependencies beyond the domain types and no side effects.
package policy

import "github.com/dhanu2426/corporate-banking-system/internal/core/domain"

// Action names an operation guarded by the policy.
type Action string

const (
	ActionProfileRead Action = "profile.read"

	ActionUserList      Action = "user.list"
	ActionUserSetStatus Action = "user.set_status"

	ActionClientCreate Action = "client.create"
	ActionClientRead   Action = "client.read"
	ActionClientUpdate Action = "client.update"
	ActionClientSearch Action = "client.search"

	ActionCreditCreate    Action = "credit.create"
	ActionCreditListOwn   Action = "credit.list_own"
	ActionCreditRead      Action = "credit.read"
	ActionCreditListAll   Action = "credit.list_all"
	ActionCreditSetStatus Action = "credit.set_status"
	ActionCreditHistory   Action = "credit.history"
)

type scope int

const (
	// scopeAny allows the action on any resource (or on a resource the actor
	// is about to own).
	scopeAny scope = iota + 1
	// scopeOwn allows the action only when the actor owns the resource.
	scopeOwn
)

var table = map[domain.Role]map[Action]scope{
	domain.RoleAdmin: {
		ActionProfileRead:   scopeOwn,
		ActionUserList:      scopeAny,
		ActionUserSetStatus: scopeAny,
	},
	domain.RoleRM: {
		ActionProfileRead:   scopeOwn,
		ActionClientCreate:  scopeAny,
		ActionClientSearch:  scopeAny,
		ActionClientRead:    scopeOwn,
		ActionClientUpdate:  scopeOwn,
		ActionCreditCreate:  scopeAny,
		ActionCreditListOwn: scopeAny,
		ActionCreditRead:    scopeOwn,
	},
	domain.RoleAnalyst: {
		ActionProfileRead:     scopeOwn,
		ActionCreditRead:      scopeAny,
		ActionCreditListAll:   scopeAny,
		ActionCreditSetStatus: scopeAny,
		ActionCreditHistory:   scopeAny,
	},
}

// Permits reports whether role may perform action on at least some resource.
// Route guards use it before the owner of the target is known.
func Permits(role domain.Role, action Action) bool {
	_, ok := table[role][action]
	return ok
}

// Authorize returns nil when role may perform action on a resource owned by
// ownerID. A role outside the action's allowed set gets ErrForbidden. An
// ownership miss on an own-scoped action gets ErrNotFound so the caller cannot
// tell a foreign resource from a missing one.
func Authorize(role domain.Role, actorID string, action Action, ownerID string) error {
	sc, ok := table[role][action]
	if !ok {
		return domain.ErrForbidden
	}
	if sc == scopeOwn && (actorID == "" || ownerID != actorID) {
		return domain.ErrNotFound
	}
	return nil
}

// Allow is the boolean form of Authorize.
func Allow(role domain.Role, actorID string, action Action, ownerID string) bool {
	return Authorize(role, actorID, action, ownerID) == nil
}
