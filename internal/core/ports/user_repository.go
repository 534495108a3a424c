package ports

import (
	"context"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations must
// enforce uniqueness of username and email and report a conflict as
// domain.ErrDuplicateIdentity.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Save replaces the stored record with user in full.
	Save(ctx context.Context, user *domain.User) error
}
