package handler

import (
	"strings"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

// toUserResponse drops the password digest.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toClientInput(req clientRequest) ports.ClientInput {
	return ports.ClientInput{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Industry:    strings.TrimSpace(req.Industry),
		Address:     req.Address,
		PrimaryContact: ports.ContactInput{
			Name:  req.PrimaryContact.Name,
			Email: req.PrimaryContact.Email,
			Phone: req.PrimaryContact.Phone,
		},
		AnnualTurnover:     req.AnnualTurnover,
		DocumentsSubmitted: req.DocumentsSubmitted,
	}
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		Industry:    c.Industry,
		Address:     c.Address,
		PrimaryContact: contactResponse{
			Name:  c.PrimaryContact.Name,
			Email: c.PrimaryContact.Email,
			Phone: c.PrimaryContact.Phone,
		},
		AnnualTurnover:     c.AnnualTurnover,
		DocumentsSubmitted: c.DocumentsSubmitted,
		RMID:               c.RMID,
	}
}

func toClientResponses(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out
}

func toCreditRequestResponse(cr *domain.CreditRequest) creditRequestResponse {
	return creditRequestResponse{
		ID:            cr.ID,
		ClientID:      cr.ClientID,
		SubmittedBy:   cr.SubmittedBy,
		RequestAmount: cr.RequestAmount,
		TenureMonths:  cr.TenureMonths,
		Purpose:       cr.Purpose,
		Status:        string(cr.Status),
		Remarks:       cr.Remarks,
		CreatedAt:     cr.CreatedAt,
	}
}

func toCreditRequestResponses(items []*domain.CreditRequest) []creditRequestResponse {
	out := make([]creditRequestResponse, 0, len(items))
	for _, cr := range items {
		out = append(out, toCreditRequestResponse(cr))
	}
	return out
}

func toStatusChangeResponses(changes []domain.StatusChange) []statusChangeResponse {
	out := make([]statusChangeResponse, 0, len(changes))
	for _, ch := range changes {
		out = append(out, statusChangeResponse{
			From:       string(ch.From),
			To:         string(ch.To),
			Remarks:    ch.Remarks,
			ReviewerID: ch.ReviewerID,
			ChangedAt:  ch.ChangedAt,
		})
	}
	return out
}
