package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
	"github.com/dhanu2426/corporate-banking-system/internal/pkg/metrics"
)

// UserService implements account administration.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetActive activates or deactivates an account. Tokens already issued to a
// deactivated user stay valid until they expire; login is refused from now on.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Active = active
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("set user status: %w", err)
	}

	metrics.UserStatusChangesTotal.WithLabelValues(strconv.FormatBool(active)).Inc()
	s.log.Info().Str("user_id", userID).Bool("active", active).Msg("user status updated")
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}
