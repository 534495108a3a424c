package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
	"github.com/dhanu2426/corporate-banking-system/internal/pkg/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates an active account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	in.Username = normalizeUsername(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("register: %w: username, email and password are required", domain.ErrValidation)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("register: %w: unknown role %q", domain.ErrValidation, in.Role)
	}

	if err := s.ensureUnique(ctx, in.Username, in.Email); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", resultLabel(err)).Inc()
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", resultLabel(err)).Inc()
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID, created.Username, created.Role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login checks, in order, that the user exists, is active and supplied the
// right password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !user.Active {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "deactivated").Inc()
		s.log.Warn().Str("user_id", user.ID).Msg("login attempt on deactivated account")
		return nil, domain.ErrAccountDeactivated
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) ensureUnique(ctx context.Context, username, email string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("register: %w", err)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// normalizeUsername is applied on every path that stores or looks up a
// username.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDeactivated):
		return "deactivated"
	}
	return "error"
}
