package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []*domain.User
	createErr error
	seq       int
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{} }

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrDuplicateIdentity
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u%d", r.seq)
	r.users = append(r.users, stored)
	return cloneUser(stored), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = cloneUser(user)
			return nil
		}
	}
	r.users = append(r.users, cloneUser(user))
	return nil
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	clients []*domain.Client
	seq     int
}

func newStubClientRepo() *stubClientRepo { return &stubClientRepo{} }

func cloneClient(c *domain.Client) *domain.Client {
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.seq++
	stored := cloneClient(c)
	stored.ID = fmt.Sprintf("c%d", r.seq)
	r.clients = append(r.clients, stored)
	return cloneClient(stored), nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) filter(match func(*domain.Client) bool) []*domain.Client {
	out := []*domain.Client{}
	for _, c := range r.clients {
		if match(c) {
			out = append(out, cloneClient(c))
		}
	}
	return out
}

func (r *stubClientRepo) FindByRM(_ context.Context, rmID string) ([]*domain.Client, error) {
	return r.filter(func(c *domain.Client) bool { return c.RMID == rmID }), nil
}

// FindByCompanyName mirrors the case-insensitive regex used by the Mongo repo.
func (r *stubClientRepo) FindByCompanyName(_ context.Context, fragment string) ([]*domain.Client, error) {
	return r.filter(func(c *domain.Client) bool {
		return strings.Contains(strings.ToLower(c.CompanyName), strings.ToLower(fragment))
	}), nil
}

func (r *stubClientRepo) FindByIndustry(_ context.Context, industry string) ([]*domain.Client, error) {
	return r.filter(func(c *domain.Client) bool { return strings.EqualFold(c.Industry, industry) }), nil
}

func (r *stubClientRepo) FindAll(_ context.Context) ([]*domain.Client, error) {
	return r.filter(func(*domain.Client) bool { return true }), nil
}

func (r *stubClientRepo) Save(_ context.Context, c *domain.Client) error {
	for i, existing := range r.clients {
		if existing.ID == c.ID {
			r.clients[i] = cloneClient(c)
			return nil
		}
	}
	r.clients = append(r.clients, cloneClient(c))
	return nil
}

// ---------------------------------------------------------------------------
// Credit requests
// ---------------------------------------------------------------------------

type stubCreditRepo struct {
	items   []*domain.CreditRequest
	seq     int
	saveErr error
	saves   int
}

func newStubCreditRepo() *stubCreditRepo { return &stubCreditRepo{} }

func cloneCredit(cr *domain.CreditRequest) *domain.CreditRequest {
	clone := *cr
	return &clone
}

func (r *stubCreditRepo) Create(_ context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error) {
	r.seq++
	stored := cloneCredit(cr)
	stored.ID = fmt.Sprintf("cr%d", r.seq)
	r.items = append(r.items, stored)
	return cloneCredit(stored), nil
}

func (r *stubCreditRepo) FindByID(_ context.Context, id string) (*domain.CreditRequest, error) {
	for _, cr := range r.items {
		if cr.ID == id {
			return cloneCredit(cr), nil
		}
	}
	return nil, domain.ErrCreditRequestNotFound
}

func (r *stubCreditRepo) List(_ context.Context, f ports.CreditFilter) ([]*domain.CreditRequest, error) {
	out := []*domain.CreditRequest{}
	for _, cr := range r.items {
		if f.SubmittedBy != "" && cr.SubmittedBy != f.SubmittedBy {
			continue
		}
		if f.ClientID != "" && cr.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && cr.Status != f.Status {
			continue
		}
		out = append(out, cloneCredit(cr))
	}
	return out, nil
}

func (r *stubCreditRepo) Delete(_ context.Context, id string) error {
	for i, cr := range r.items {
		if cr.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrCreditRequestNotFound
}

func (r *stubCreditRepo) Save(_ context.Context, cr *domain.CreditRequest) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	for i, existing := range r.items {
		if existing.ID == cr.ID {
			r.items[i] = cloneCredit(cr)
			return nil
		}
	}
	r.items = append(r.items, cloneCredit(cr))
	return nil
}

// ---------------------------------------------------------------------------
// Audit and idempotency
// ---------------------------------------------------------------------------

// stubAudit records synchronously and serves as both sink and repository.
type stubAudit struct {
	mu      sync.Mutex
	changes []domain.StatusChange
}

func (a *stubAudit) Enqueue(change domain.StatusChange) {
	_ = a.Record(context.Background(), change)
}

func (a *stubAudit) Record(_ context.Context, change domain.StatusChange) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.changes = append(a.changes, change)
	return nil
}

func (a *stubAudit) ListByRequest(_ context.Context, requestID string) ([]domain.StatusChange, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []domain.StatusChange{}
	for _, c := range a.changes {
		if c.RequestID == requestID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
	// stale makes Lookup miss, as when a concurrent submission has not bound
	// its key yet.
	stale   bool
	lastTTL time.Duration
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, rmID, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	if s.stale {
		return "", false, nil
	}
	id, ok := s.keys[rmID+"/"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, rmID, key, requestID string, ttl time.Duration) (string, error) {
	s.lastTTL = ttl
	k := rmID + "/" + key
	if id, ok := s.keys[k]; ok {
		return id, nil
	}
	s.keys[k] = requestID
	return requestID, nil
}

var errStoreDown = errors.New("store down")
