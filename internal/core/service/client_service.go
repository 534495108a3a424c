package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
	"github.com/dhanu2426/corporate-banking-system/internal/pkg/metrics"
)

// ClientService implements the client registry. Every client is owned by the
// RM that created it and is invisible to any other RM.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, in ports.ClientInput, rmID string) (*domain.Client, error) {
	if err := validateClientInput(in); err != nil {
		return nil, err
	}

	client := &domain.Client{RMID: rmID}
	applyClientInput(client, in)

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Str("rm_id", rmID).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	metrics.ClientsCreatedTotal.Inc()
	s.logger.Info().Str("client_id", created.ID).Str("rm_id", rmID).Msg("client created")
	return created, nil
}

// GetOwned returns the client only when rmID owns it. A client owned by
// someone else is reported exactly like a missing one.
func (s *ClientService) GetOwned(ctx context.Context, clientID, rmID string) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.RMID != rmID {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

// Update replaces the mutable fields of an owned client. The owner never changes.
func (s *ClientService) Update(ctx context.Context, clientID string, in ports.ClientInput, rmID string) (*domain.Client, error) {
	if err := validateClientInput(in); err != nil {
		return nil, err
	}

	client, err := s.GetOwned(ctx, clientID, rmID)
	if err != nil {
		return nil, err
	}

	applyClientInput(client, in)
	if err := s.repo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	s.logger.Info().Str("client_id", clientID).Str("rm_id", rmID).Msg("client updated")
	return client, nil
}

func (s *ClientService) Search(ctx context.Context, companyName, industry string) ([]*domain.Client, error) {
	var (
		clients []*domain.Client
		err     error
	)
	switch {
	case strings.TrimSpace(companyName) != "":
		clients, err = s.repo.FindByCompanyName(ctx, strings.TrimSpace(companyName))
	case strings.TrimSpace(industry) != "":
		clients, err = s.repo.FindByIndustry(ctx, strings.TrimSpace(industry))
	default:
		clients, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) ListByRM(ctx context.Context, rmID string) ([]*domain.Client, error) {
	clients, err := s.repo.FindByRM(ctx, rmID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func validateClientInput(in ports.ClientInput) error {
	if in.AnnualTurnover <= 0 {
		return fmt.Errorf("%w: annual turnover must be positive", domain.ErrValidation)
	}
	return nil
}

func applyClientInput(c *domain.Client, in ports.ClientInput) {
	c.CompanyName = in.CompanyName
	c.Industry = in.Industry
	c.Address = in.Address
	c.PrimaryContact = domain.Contact{
		Name:  in.PrimaryContact.Name,
		Email: in.PrimaryContact.Email,
		Phone: in.PrimaryContact.Phone,
	}
	c.AnnualTurnover = in.AnnualTurnover
	c.DocumentsSubmitted = in.DocumentsSubmitted
}
