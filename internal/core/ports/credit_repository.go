package ports

import (
	"context"
	"time"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// CreditFilter narrows a credit request listing. Empty fields are ignored.
type CreditFilter struct {
	SubmittedBy string
	ClientID    string
	Status      domain.CreditStatus
}

// CreditRepository defines persistence operations for credit requests.
type CreditRepository interface {
	Create(ctx context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error)
	FindByID(ctx context.Context, id string) (*domain.CreditRequest, error)
	List(ctx context.Context, filter CreditFilter) ([]*domain.CreditRequest, error)
	Save(ctx context.Context, cr *domain.CreditRequest) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists the decision trail of credit requests.
type AuditRepository interface {
	Record(ctx context.Context, change domain.StatusChange) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.StatusChange, error)
}

// AuditSink accepts status changes for asynchronous recording.
type AuditSink interface {
	Enqueue(change domain.StatusChange)
}

// IdempotencyStore remembers which credit request an RM created under a given
// client-supplied key. Remember keeps the first binding and returns the id
// the key ends up bound to.
type IdempotencyStore interface {
	Lookup(ctx context.Context, rmID, key string) (requestID string, found bool, err error)
	Remember(ctx context.Context, rmID, key, requestID string, ttl time.Duration) (boundID string, err error)
}
