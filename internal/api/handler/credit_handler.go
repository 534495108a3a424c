package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

// HeaderIdempotencyKey lets an RM retry a credit submission safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// CreditHandler handles the RM and analyst credit request endpoints.
type CreditHandler struct {
	service ports.CreditService
}

func NewCreditHandler(service ports.CreditService) *CreditHandler {
	return &CreditHandler{service: service}
}

// Create submits a credit request for one of the caller's clients.
//
// @Summary      Submit a credit request
// @Tags         credit-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Replays the first submission when repeated"
// @Param        body             body      createCreditRequest  true   "Credit request"
// @Success      201              {object}  creditRequestResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/rm/credit-requests [post]
func (h *CreditHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createCreditRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cr, err := h.service.Create(c.Request().Context(), ports.CreateCreditInput{
		ClientID:       req.ClientID,
		RequestAmount:  req.RequestAmount,
		TenureMonths:   req.TenureMonths,
		Purpose:        req.Purpose,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	}, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCreditRequestResponse(cr))
}

// ListOwn returns the credit requests submitted by the caller.
//
// @Summary      List own credit requests
// @Tags         credit-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   creditRequestResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/rm/credit-requests [get]
func (h *CreditHandler) ListOwn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListByRM(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCreditRequestResponses(items))
}

// Get returns one credit request. RMs only see their own submissions.
//
// @Summary      Get a credit request
// @Tags         credit-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Credit request ID"
// @Success      200  {object}  creditRequestResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/rm/credit-requests/{id} [get]
// @Router       /api/analyst/credit-requests/{id} [get]
func (h *CreditHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	cr, err := h.service.GetForActor(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCreditRequestResponse(cr))
}

// ListAll returns every credit request, optionally filtered.
//
// @Summary      List credit requests
// @Tags         credit-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Pending, Approved or Rejected"
// @Param        client_id  query     string  false  "Client ID"
// @Success      200        {array}   creditRequestResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /api/analyst/credit-requests [get]
func (h *CreditHandler) ListAll(c echo.Context) error {
	filter := ports.CreditFilter{
		ClientID: strings.TrimSpace(c.QueryParam("client_id")),
	}
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status, ok := domain.ParseCreditStatus(raw)
		if !ok {
			return fmt.Errorf("%w: status must be one of: Pending Approved Rejected", domain.ErrValidation)
		}
		filter.Status = status
	}

	items, err := h.service.ListAll(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCreditRequestResponses(items))
}

// SetStatus records a reviewer decision.
//
// @Summary      Set credit request status
// @Tags         credit-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Credit request ID"
// @Param        body  body      setCreditStatusRequest  true  "Decision"
// @Success      200   {object}  creditRequestResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/analyst/credit-requests/{id} [put]
func (h *CreditHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setCreditStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cr, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), ports.SetStatusInput{
		Status:     domain.CreditStatus(req.Status),
		Remarks:    req.Remarks,
		ReviewerID: actor.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCreditRequestResponse(cr))
}

// History returns the decisions recorded for a credit request, oldest first.
//
// @Summary      Credit request decision history
// @Tags         credit-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Credit request ID"
// @Success      200  {array}   statusChangeResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/analyst/credit-requests/{id}/history [get]
func (h *CreditHandler) History(c echo.Context) error {
	changes, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatusChangeResponses(changes))
}
