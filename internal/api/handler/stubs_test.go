package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

// newContext builds an echo context with the validator installed and, when
// actor is non-nil, an authenticated caller.
func newContext(method, target, body string, actor *domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(ActorKey, *actor)
	}
	return c, rec
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserService struct {
	users     map[string]*domain.User
	setActive func(id string, active bool) (*domain.User, error)
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserService) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	return s.setActive(id, active)
}

func (s *stubUserService) Profile(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type stubClientService struct {
	clients []*domain.Client
	created ports.ClientInput
}

func (s *stubClientService) Create(_ context.Context, in ports.ClientInput, rmID string) (*domain.Client, error) {
	s.created = in
	return &domain.Client{ID: "c-new", CompanyName: in.CompanyName, Industry: in.Industry, AnnualTurnover: in.AnnualTurnover, RMID: rmID}, nil
}

func (s *stubClientService) GetOwned(_ context.Context, id, rmID string) (*domain.Client, error) {
	for _, c := range s.clients {
		if c.ID == id && c.RMID == rmID {
			return c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (s *stubClientService) Update(ctx context.Context, id string, in ports.ClientInput, rmID string) (*domain.Client, error) {
	c, err := s.GetOwned(ctx, id, rmID)
	if err != nil {
		return nil, err
	}
	updated := *c
	updated.CompanyName = in.CompanyName
	return &updated, nil
}

func (s *stubClientService) Search(_ context.Context, companyName, _ string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range s.clients {
		if strings.Contains(strings.ToLower(c.CompanyName), strings.ToLower(companyName)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubClientService) ListByRM(_ context.Context, rmID string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range s.clients {
		if c.RMID == rmID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubCreditService struct {
	createIn   ports.CreateCreditInput
	createRM   string
	setStatus  ports.SetStatusInput
	lastFilter ports.CreditFilter
	items      []*domain.CreditRequest
}

func (s *stubCreditService) Create(_ context.Context, in ports.CreateCreditInput, rmID string) (*domain.CreditRequest, error) {
	s.createIn, s.createRM = in, rmID
	return &domain.CreditRequest{
		ID:            "cr-new",
		ClientID:      in.ClientID,
		SubmittedBy:   rmID,
		RequestAmount: in.RequestAmount,
		TenureMonths:  in.TenureMonths,
		Purpose:       in.Purpose,
		Status:        domain.CreditPending,
	}, nil
}

func (s *stubCreditService) find(id string) (*domain.CreditRequest, error) {
	for _, cr := range s.items {
		if cr.ID == id {
			return cr, nil
		}
	}
	return nil, domain.ErrCreditRequestNotFound
}

func (s *stubCreditService) SetStatus(_ context.Context, id string, in ports.SetStatusInput) (*domain.CreditRequest, error) {
	s.setStatus = in
	cr, err := s.find(id)
	if err != nil {
		return nil, err
	}
	updated := *cr
	updated.Status = in.Status
	if in.Remarks != nil {
		updated.Remarks = *in.Remarks
	}
	return &updated, nil
}

func (s *stubCreditService) ListByRM(_ context.Context, rmID string) ([]*domain.CreditRequest, error) {
	var out []*domain.CreditRequest
	for _, cr := range s.items {
		if cr.SubmittedBy == rmID {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (s *stubCreditService) ListAll(_ context.Context, f ports.CreditFilter) ([]*domain.CreditRequest, error) {
	s.lastFilter = f
	return s.items, nil
}

func (s *stubCreditService) GetByID(_ context.Context, id string) (*domain.CreditRequest, error) {
	return s.find(id)
}

func (s *stubCreditService) GetForActor(_ context.Context, id string, actor domain.Actor) (*domain.CreditRequest, error) {
	cr, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleRM && cr.SubmittedBy != actor.ID {
		return nil, domain.ErrCreditRequestNotFound
	}
	return cr, nil
}

func (s *stubCreditService) History(_ context.Context, id string) ([]domain.StatusChange, error) {
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	return []domain.StatusChange{{RequestID: id, From: domain.CreditPending, To: domain.CreditRejected, ReviewerID: "an1"}}, nil
}
