package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

var analyst = &domain.Actor{ID: "an1", Username: "analyst", Role: domain.RoleAnalyst}

func seededCredits() *stubCreditService {
	return &stubCreditService{items: []*domain.CreditRequest{
		{ID: "cr1", ClientID: "c1", SubmittedBy: "r1", RequestAmount: 5_000_000, TenureMonths: 24, Purpose: "Working capital", Status: domain.CreditPending, Remarks: "initial"},
		{ID: "cr2", ClientID: "c2", SubmittedBy: "r2", RequestAmount: 1_000_000, TenureMonths: 12, Status: domain.CreditApproved},
	}}
}

func TestCreditHandler_Create(t *testing.T) {
	svc := seededCredits()
	c, rec := newContext(http.MethodPost, "/api/rm/credit-requests",
		`{"client_id":"c1","request_amount":5000000,"tenure_months":24,"purpose":"Working capital"}`, rm1)
	c.Request().Header.Set(HeaderIdempotencyKey, " key-1 ")

	if err := NewCreditHandler(svc).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.createRM != "r1" || svc.createIn.IdempotencyKey != "key-1" || svc.createIn.TenureMonths != 24 {
		t.Fatalf("unexpected service call: rm=%s in=%+v", svc.createRM, svc.createIn)
	}

	var resp creditRequestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "Pending" || resp.Remarks != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCreditHandler_Create_Validation(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/rm/credit-requests", `{"client_id":"c1","request_amount":-5,"tenure_months":0}`, rm1)
	if err := NewCreditHandler(seededCredits()).Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreditHandler_SetStatus_Remarks(t *testing.T) {
	svc := seededCredits()
	h := NewCreditHandler(svc)

	c, rec := newContext(http.MethodPut, "/api/analyst/credit-requests/cr1",
		`{"status":"Rejected","remarks":"Insufficient collateral."}`, analyst)
	c.SetParamNames("id")
	c.SetParamValues("cr1")
	if err := h.SetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.setStatus.ReviewerID != "an1" || svc.setStatus.Remarks == nil || *svc.setStatus.Remarks != "Insufficient collateral." {
		t.Fatalf("unexpected input: %+v", svc.setStatus)
	}
	var resp creditRequestResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "Rejected" || resp.Remarks != "Insufficient collateral." {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c, _ = newContext(http.MethodPut, "/api/analyst/credit-requests/cr1", `{"status":"Approved"}`, analyst)
	c.SetParamNames("id")
	c.SetParamValues("cr1")
	if err := h.SetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.setStatus.Remarks != nil {
		t.Fatalf("omitted remarks must reach the service as nil")
	}

	c, _ = newContext(http.MethodPut, "/api/analyst/credit-requests/cr1", `{"status":"Closed"}`, analyst)
	if err := h.SetStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreditHandler_Get(t *testing.T) {
	h := NewCreditHandler(seededCredits())

	cases := []struct {
		name    string
		actor   *domain.Actor
		id      string
		wantErr error
	}{
		{"owner", rm1, "cr1", nil},
		{"other rm", rm1, "cr2", domain.ErrCreditRequestNotFound},
		{"analyst", analyst, "cr2", nil},
		{"missing", analyst, "cr9", domain.ErrCreditRequestNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/", "", tc.actor)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			if err := h.Get(c); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreditHandler_ListAll_Filters(t *testing.T) {
	svc := seededCredits()
	h := NewCreditHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/analyst/credit-requests?status=Approved&client_id=c2", "", analyst)
	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastFilter.Status != domain.CreditApproved || svc.lastFilter.ClientID != "c2" || svc.lastFilter.SubmittedBy != "" {
		t.Fatalf("unexpected filter: %+v", svc.lastFilter)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/api/analyst/credit-requests?status=Closed", "", analyst)
	if err := h.ListAll(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreditHandler_ListOwnAndHistory(t *testing.T) {
	h := NewCreditHandler(seededCredits())

	c, rec := newContext(http.MethodGet, "/api/rm/credit-requests", "", rm1)
	if err := h.ListOwn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var own []creditRequestResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &own)
	if len(own) != 1 || own[0].ID != "cr1" {
		t.Fatalf("unexpected own list: %+v", own)
	}

	c, rec = newContext(http.MethodGet, "/api/analyst/credit-requests/cr1/history", "", analyst)
	c.SetParamNames("id")
	c.SetParamValues("cr1")
	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var history []statusChangeResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &history)
	if len(history) != 1 || history[0].To != "Rejected" {
		t.Fatalf("unexpected history: %+v", history)
	}
}
