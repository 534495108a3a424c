package ports

import (
	"context"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Issue(subjectID, username string, role domain.Role) (string, error)
	Verify(token string) (domain.Actor, error)
}

// PasswordHasher is the one-way password digest capability.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// UserService covers account administration and self-lookup.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	SetActive(ctx context.Context, userID string, active bool) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
