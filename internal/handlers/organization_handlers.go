package handlers

import (
	"errors"
	"net/http"

	"edumart/internal/common"
	"edumart/internal/services"
	"edumart/internal/validation"

	"github.com/labstack/echo/v4"
)

type OrganizationHandlers struct {
	orgService services.OrganizationService
	registry   *validation.Registry
}

func NewOrganizationHandlers(orgService services.OrganizationService, registry *validation.Registry) *OrganizationHandlers {
	return &OrganizationHandlers{orgService: orgService, registry: registry}
}

type createOrganizationPayload struct {
	Name         string  `json:"name"`
	Subdomain    string  `json:"subdomain"`
	CustomDomain *string `json:"custom_domain"`
	LogoURL      *string `json:"logo_url"`
	Plan         string  `json:"plan"`
	ExpiresAt    *string `json:"expires_at"`
}

// CreateOrganization provisions a new tenant. Super-admin only.
func (h *OrganizationHandlers) CreateOrganization(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityOrganization)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	var body createOrganizationPayload
	if err := validation.Decode(payload, &body); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	req := &services.CreateOrganizationRequest{
		Name:         body.Name,
		Subdomain:    body.Subdomain,
		CustomDomain: body.CustomDomain,
		LogoURL:      body.LogoURL,
		Plan:         body.Plan,
	}
	if body.ExpiresAt != nil {
		expiresAt, err := parseDate(*body.ExpiresAt)
		if err != nil {
			return common.SendBadRequest(c, "expires_at must be a date in YYYY-MM-DD form")
		}
		req.ExpiresAt = &expiresAt
	}

	org, err := h.orgService.Create(ctx, req)
	if err != nil {
		if errors.Is(err, services.ErrSubdomainTaken) {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "subdomain", Message: services.ErrSubdomainTaken.Error()},
			})
		}
		return common.SendPersistenceError(c, "organizations", err)
	}
	return c.JSON(http.StatusCreated, org)
}

// GetOrganization resolves the tenant for a public page by subdomain.
func (h *OrganizationHandlers) GetOrganization(c echo.Context) error {
	org, err := h.orgService.GetBySubdomain(c.Request().Context(), c.Param("domain"))
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}
	return c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) GetSingleOrganization(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid organization ID format")
	}
	org, err := h.orgService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}
	return c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) ListOrganizations(c echo.Context) error {
	limit, offset := parsePagination(c)
	orgs, err := h.orgService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list organizations")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"organizations": orgs,
		"limit":         limit,
		"offset":        offset,
	})
}

type updateOrganizationPayload struct {
	Name               *string `json:"name"`
	Subdomain          *string `json:"subdomain"`
	CustomDomain       *string `json:"custom_domain"`
	LogoURL            *string `json:"logo_url"`
	Plan               *string `json:"plan"`
	SubscriptionStatus *string `json:"subscription_status"`
	ExpiresAt          *string `json:"expires_at"`
}

func (h *OrganizationHandlers) UpdateOrganization(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid organization ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityOrganization)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	org, err := h.orgService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}

	var body updateOrganizationPayload
	if err := validation.Decode(payload, &body); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if body.Name != nil {
		org.Name = *body.Name
	}
	if body.Subdomain != nil {
		org.Subdomain = *body.Subdomain
	}
	if body.CustomDomain != nil {
		org.CustomDomain = body.CustomDomain
	}
	if body.LogoURL != nil {
		org.LogoURL = body.LogoURL
	}
	if body.Plan != nil {
		org.Plan = *body.Plan
	}
	if body.SubscriptionStatus != nil {
		org.SubscriptionStatus = *body.SubscriptionStatus
	}
	if body.ExpiresAt != nil {
		expiresAt, err := parseDate(*body.ExpiresAt)
		if err != nil {
			return common.SendBadRequest(c, "expires_at must be a date in YYYY-MM-DD form")
		}
		org.ExpiresAt = &expiresAt
	}

	if err := h.orgService.Update(ctx, org); err != nil {
		return common.SendPersistenceError(c, "organizations", err)
	}
	return c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) DeleteOrganization(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid organization ID format")
	}
	if _, err := h.orgService.GetByID(c.Request().Context(), id); err != nil {
		return common.SendNotFound(c, "Organization")
	}
	if err := h.orgService.Delete(c.Request().Context(), id); err != nil {
		return common.SendServerError(c, "Failed to delete organization")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Organization deleted successfully"})
}
