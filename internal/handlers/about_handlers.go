package handlers

import (
	"log"
	"net/http"

	"edumart/internal/caching"
	"edumart/internal/common"
	"edumart/internal/models"
	"edumart/internal/repositories"
	"edumart/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AboutHandlers struct {
	aboutRepo repositories.AboutRepository
	orgRepo   repositories.OrganizationRepository
	cache     caching.CacheService
	registry  *validation.Registry
}

func NewAboutHandlers(aboutRepo repositories.AboutRepository, orgRepo repositories.OrganizationRepository, cache caching.CacheService, registry *validation.Registry) *AboutHandlers {
	return &AboutHandlers{aboutRepo: aboutRepo, orgRepo: orgRepo, cache: cache, registry: registry}
}

func (h *AboutHandlers) CreateAbout(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityAbout)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	about := &models.About{
		ID:    uuid.New(),
		OrgID: orgID,
		Title: req.Title,
		Body:  req.Body,
	}
	if err := h.aboutRepo.Create(ctx, about); err != nil {
		return common.SendPersistenceError(c, "abouts", err)
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusCreated, about)
}

// GetAboutByDomain serves the public about section for an
// organization's subdomain, cached for a short TTL.
func (h *AboutHandlers) GetAboutByDomain(c echo.Context) error {
	ctx := c.Request().Context()
	domain := c.Param("domain")

	var cached models.About
	if err := h.cache.GetContent(ctx, domain, "about", &cached); err == nil {
		return c.JSON(http.StatusOK, cached)
	}

	org, err := h.orgRepo.GetBySubdomain(ctx, domain)
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}
	about, err := h.aboutRepo.GetByOrganization(ctx, org.ID)
	if err != nil {
		return common.SendNotFound(c, "About")
	}
	if err := h.cache.SetContent(ctx, domain, "about", about, publicContentTTL); err != nil {
		log.Printf("WARN: failed to cache about for %s: %v", domain, err)
	}
	return c.JSON(http.StatusOK, about)
}

func (h *AboutHandlers) GetSingleAbout(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid about ID format")
	}

	about, err := h.aboutRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "About")
	}
	return c.JSON(http.StatusOK, about)
}

func (h *AboutHandlers) UpdateAbout(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid about ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityAbout)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	about, err := h.aboutRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "About")
	}

	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Title != nil {
		about.Title = *req.Title
	}
	if req.Body != nil {
		about.Body = *req.Body
	}

	if err := h.aboutRepo.Update(ctx, about); err != nil {
		return common.SendPersistenceError(c, "abouts", err)
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusOK, about)
}

func (h *AboutHandlers) DeleteAbout(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid about ID format")
	}

	if err := h.aboutRepo.Delete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "About")
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusOK, map[string]string{"message": "About deleted successfully"})
}

func (h *AboutHandlers) invalidate(c echo.Context, orgID uuid.UUID) {
	ctx := c.Request().Context()
	org, err := h.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return
	}
	if err := h.cache.InvalidateContent(ctx, org.Subdomain); err != nil {
		log.Printf("WARN: failed to invalidate content cache for %s: %v", org.Subdomain, err)
	}
}
