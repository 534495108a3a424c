package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/policy"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

// ClientHandler handles the RM client registry endpoints.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create onboards a corporate client owned by the calling RM.
//
// @Summary      Onboard a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/rm/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), toClientInput(req), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// List returns the calling RM's clients.
//
// @Summary      List own clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clientResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/rm/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	clients, err := h.service.ListByRM(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// Search looks clients up by company name or industry. Only clients the
// caller may read are returned.
//
// @Summary      Search clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        company_name query     string  false  "Case-insensitive company name fragment"
// @Param        industry     query     string  false  "Industry, case-insensitive exact match"
// @Success      200          {array}   clientResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /api/rm/clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	found, err := h.service.Search(c.Request().Context(), c.QueryParam("company_name"), c.QueryParam("industry"))
	if err != nil {
		return err
	}

	visible := make([]*domain.Client, 0, len(found))
	for _, client := range found {
		if policy.Allow(actor.Role, actor.ID, policy.ActionClientRead, client.RMID) {
			visible = append(visible, client)
		}
	}
	return c.JSON(http.StatusOK, toClientResponses(visible))
}

// Get returns one of the caller's clients.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/rm/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	client, err := h.service.GetOwned(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update replaces the editable fields of one of the caller's clients.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/rm/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.service.Update(c.Request().Context(), c.Param("id"), toClientInput(req), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}
