package ports

import (
	"context"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// CreateCreditInput carries the fields of a new credit request.
type CreateCreditInput struct {
	ClientID      string
	RequestAmount float64
	TenureMonths  int
	Purpose       string
	// IdempotencyKey is optional. A repeated key from the same RM returns the
	// request created the first time.
	IdempotencyKey string
}

// SetStatusInput carries a reviewer decision. A nil Remarks leaves the stored
// remarks untouched.
type SetStatusInput struct {
	Status     domain.CreditStatus
	Remarks    *string
	ReviewerID string
}

// CreditService defines use-case operations for the credit workflow.
type CreditService interface {
	Create(ctx context.Context, in CreateCreditInput, rmID string) (*domain.CreditRequest, error)
	SetStatus(ctx context.Context, requestID string, in SetStatusInput) (*domain.CreditRequest, error)
	ListByRM(ctx context.Context, rmID string) ([]*domain.CreditRequest, error)
	ListAll(ctx context.Context, filter CreditFilter) ([]*domain.CreditRequest, error)
	GetByID(ctx context.Context, requestID string) (*domain.CreditRequest, error)
	// GetForActor applies the access policy: analysts read any request, an RM
	// only its own.
	GetForActor(ctx context.Context, requestID string, actor domain.Actor) (*domain.CreditRequest, error)
	History(ctx context.Context, requestID string) ([]domain.StatusChange, error)
}
