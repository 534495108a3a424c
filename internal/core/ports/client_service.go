package ports

import (
	"context"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// ContactInput holds the primary contact of a client.
type ContactInput struct {
	Name  string
	Email string
	Phone string
}

// ClientInput carries the mutable fields of a client.
type ClientInput struct {
	CompanyName        string
	Industry           string
	Address            string
	PrimaryContact     ContactInput
	AnnualTurnover     float64
	DocumentsSubmitted bool
}

// ClientService defines use-case operations for the client registry.
type ClientService interface {
	Create(ctx context.Context, in ClientInput, rmID string) (*domain.Client, error)
	GetOwned(ctx context.Context, clientID, rmID string) (*domain.Client, error)
	Update(ctx context.Context, clientID string, in ClientInput, rmID string) (*domain.Client, error)
	// Search honours at most one filter; companyName wins over industry.
	Search(ctx context.Context, companyName, industry string) ([]*domain.Client, error)
	ListByRM(ctx context.Context, rmID string) ([]*domain.Client, error)
}
