package ports

import (
	"context"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// ClientRepository defines persistence operations for corporate clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByRM(ctx context.Context, rmID string) ([]*domain.Client, error)
	// FindByCompanyName matches a case-insensitive substring of the company name.
	FindByCompanyName(ctx context.Context, fragment string) ([]*domain.Client, error)
	// FindByIndustry matches the industry case-insensitively and exactly.
	FindByIndustry(ctx context.Context, industry string) ([]*domain.Client, error)
	FindAll(ctx context.Context) ([]*domain.Client, error)
	Save(ctx context.Context, c *domain.Client) error
}
