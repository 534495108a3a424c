package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/policy"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
	"github.com/dhanu2426/corporate-banking-system/internal/pkg/metrics"
)

const defaultIdempotencyTTL = 24 * time.Hour

// ClientOwnership is the slice of the client registry the workflow needs.
type ClientOwnership interface {
	GetOwned(ctx context.Context, clientID, rmID string) (*domain.Client, error)
}

// CreditService implements the credit request workflow.
type CreditService struct {
	repo    ports.CreditRepository
	clients ClientOwnership
	audit   ports.AuditSink
	history ports.AuditRepository
	idem    ports.IdempotencyStore
	idemTTL time.Duration
	clock   *monotonicClock
	logger  zerolog.Logger
}

// CreditOption customises a CreditService.
type CreditOption func(*CreditService)

// WithIdempotency enables Idempotency-Key replay on Create.
func WithIdempotency(store ports.IdempotencyStore, ttl time.Duration) CreditOption {
	return func(s *CreditService) {
		s.idem = store
		if ttl > 0 {
			s.idemTTL = ttl
		}
	}
}

// WithAudit records every status change through sink and serves History
// from repo.
func WithAudit(sink ports.AuditSink, repo ports.AuditRepository) CreditOption {
	return func(s *CreditService) {
		s.audit = sink
		s.history = repo
	}
}

// WithClock replaces the wall clock used for creation timestamps.
func WithClock(now func() time.Time) CreditOption {
	return func(s *CreditService) { s.clock = newMonotonicClock(now) }
}

func NewCreditService(repo ports.CreditRepository, clients ClientOwnership, logger zerolog.Logger, opts ...CreditOption) *CreditService {
	s := &CreditService{
		repo:    repo,
		clients: clients,
		idemTTL: defaultIdempotencyTTL,
		clock:   newMonotonicClock(nil),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create submits a new request in Pending state for a client owned by rmID.
func (s *CreditService) Create(ctx context.Context, in ports.CreateCreditInput, rmID string) (*domain.CreditRequest, error) {
	if in.RequestAmount <= 0 || in.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: request amount and tenure must be positive", domain.ErrValidation)
	}

	if existing := s.replay(ctx, rmID, in.IdempotencyKey); existing != nil {
		metrics.CreditRequestsCreatedTotal.WithLabelValues("true").Inc()
		return existing, nil
	}

	if _, err := s.clients.GetOwned(ctx, in.ClientID, rmID); err != nil {
		return nil, err
	}

	cr := &domain.CreditRequest{
		ClientID:      in.ClientID,
		SubmittedBy:   rmID,
		RequestAmount: in.RequestAmount,
		TenureMonths:  in.TenureMonths,
		Purpose:       in.Purpose,
		Status:        domain.CreditPending,
		Remarks:       "",
		CreatedAt:     s.clock.Now(),
	}

	created, err := s.repo.Create(ctx, cr)
	if err != nil {
		s.logger.Error().Err(err).Str("rm_id", rmID).Msg("failed to create credit request")
		return nil, fmt.Errorf("create credit request: %w", err)
	}

	if winner := s.remember(ctx, rmID, in.IdempotencyKey, created); winner != nil {
		metrics.CreditRequestsCreatedTotal.WithLabelValues("true").Inc()
		return winner, nil
	}

	metrics.CreditRequestsCreatedTotal.WithLabelValues("false").Inc()
	s.logger.Info().
		Str("request_id", created.ID).
		Str("client_id", created.ClientID).
		Str("rm_id", rmID).
		Msg("credit request created")
	return created, nil
}

// remember binds key to created. When a concurrent submission with the same
// key got there first, created is discarded and the earlier request is
// returned instead.
func (s *CreditService) remember(ctx context.Context, rmID, key string, created *domain.CreditRequest) *domain.CreditRequest {
	if key == "" || s.idem == nil {
		return nil
	}
	boundID, err := s.idem.Remember(ctx, rmID, key, created.ID, s.idemTTL)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
		return nil
	}
	if boundID == "" || boundID == created.ID {
		return nil
	}

	winner, err := s.repo.FindByID(ctx, boundID)
	if err != nil || winner.SubmittedBy != rmID {
		s.logger.Warn().Err(err).Str("request_id", boundID).Msg("idempotency key points to unknown request")
		return nil
	}
	if err := s.repo.Delete(ctx, created.ID); err != nil {
		s.logger.Error().Err(err).Str("request_id", created.ID).Msg("failed to discard duplicate credit request")
	}
	s.logger.Info().Str("idempotency_key", key).Str("request_id", winner.ID).Msg("idempotent replay after concurrent submit")
	return winner
}

// replay returns the request previously created under key, or nil. Store
// failures are logged and treated as a miss.
func (s *CreditService) replay(ctx context.Context, rmID, key string) *domain.CreditRequest {
	if key == "" || s.idem == nil {
		return nil
	}
	id, found, err := s.idem.Lookup(ctx, rmID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing.SubmittedBy != rmID {
		s.logger.Warn().Err(err).Str("request_id", id).Msg("idempotency key points to unknown request")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("request_id", id).Msg("idempotent replay")
	return existing
}

// SetStatus applies a reviewer decision. Any known status may follow any other.
func (s *CreditService) SetStatus(ctx context.Context, requestID string, in ports.SetStatusInput) (*domain.CreditRequest, error) {
	cr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !cr.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}

	from := cr.Status
	cr.Status = in.Status
	if in.Remarks != nil {
		cr.Remarks = *in.Remarks
	}

	if err := s.repo.Save(ctx, cr); err != nil {
		return nil, fmt.Errorf("set credit status: %w", err)
	}

	if s.audit != nil {
		s.audit.Enqueue(domain.StatusChange{
			RequestID:  cr.ID,
			From:       from,
			To:         cr.Status,
			Remarks:    cr.Remarks,
			ReviewerID: in.ReviewerID,
			ChangedAt:  time.Now().UTC(),
		})
	}

	metrics.CreditDecisionsTotal.WithLabelValues(string(cr.Status)).Inc()
	s.logger.Info().
		Str("request_id", cr.ID).
		Str("from", string(from)).
		Str("to", string(cr.Status)).
		Str("reviewer_id", in.ReviewerID).
		Bool("remarks_updated", in.Remarks != nil).
		Msg("credit request status set")
	return cr, nil
}

func (s *CreditService) ListByRM(ctx context.Context, rmID string) ([]*domain.CreditRequest, error) {
	return s.list(ctx, ports.CreditFilter{SubmittedBy: rmID})
}

func (s *CreditService) ListAll(ctx context.Context, filter ports.CreditFilter) ([]*domain.CreditRequest, error) {
	if filter.Status != "" {
		if _, ok := domain.ParseCreditStatus(string(filter.Status)); !ok {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
		}
	}
	return s.list(ctx, filter)
}

func (s *CreditService) list(ctx context.Context, filter ports.CreditFilter) ([]*domain.CreditRequest, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list credit requests: %w", err)
	}
	return items, nil
}

func (s *CreditService) GetByID(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	return s.repo.FindByID(ctx, requestID)
}

func (s *CreditService) GetForActor(ctx context.Context, requestID string, actor domain.Actor) (*domain.CreditRequest, error) {
	cr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor.Role, actor.ID, policy.ActionCreditRead, cr.SubmittedBy); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCreditRequestNotFound
		}
		return nil, err
	}
	return cr, nil
}

// History returns the recorded decisions for a request, oldest first.
func (s *CreditService) History(ctx context.Context, requestID string) ([]domain.StatusChange, error) {
	if _, err := s.repo.FindByID(ctx, requestID); err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.StatusChange{}, nil
	}
	changes, err := s.history.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("credit history: %w", err)
	}
	return changes, nil
}
