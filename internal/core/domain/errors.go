package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrDuplicateIdentity  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("user account is deactivated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation failed")
)

// Resource-specific not-found errors. Each one matches ErrNotFound with errors.Is.
var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrClientNotFound        = fmt.Errorf("client %w", ErrNotFound)
	ErrCreditRequestNotFound = fmt.Errorf("credit request %w", ErrNotFound)
)
