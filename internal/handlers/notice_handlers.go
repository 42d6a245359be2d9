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

type NoticeHandlers struct {
	noticeRepo repositories.NoticeRepository
	orgRepo    repositories.OrganizationRepository
	cache      caching.CacheService
	registry   *validation.Registry
}

func NewNoticeHandlers(noticeRepo repositories.NoticeRepository, orgRepo repositories.OrganizationRepository, cache caching.CacheService, registry *validation.Registry) *NoticeHandlers {
	return &NoticeHandlers{noticeRepo: noticeRepo, orgRepo: orgRepo, cache: cache, registry: registry}
}

func (h *NoticeHandlers) CreateNotice(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityNotice)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	var req struct {
		Title       string  `json:"title"`
		Body        string  `json:"body"`
		PublishedAt *string `json:"published_at"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	notice := &models.Notice{
		ID:    uuid.New(),
		OrgID: orgID,
		Title: req.Title,
		Body:  req.Body,
	}
	if req.PublishedAt != nil {
		published, err := parseDate(*req.PublishedAt)
		if err != nil {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "published_at", Message: "must be a date in YYYY-MM-DD format"},
			})
		}
		notice.PublishedAt = &published
	}

	if err := h.noticeRepo.Create(ctx, notice); err != nil {
		return common.SendPersistenceError(c, "notices", err)
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusCreated, notice)
}

// GetNoticesByDomain serves the public notice list for an
// organization's subdomain, cached for a short TTL.
func (h *NoticeHandlers) GetNoticesByDomain(c echo.Context) error {
	ctx := c.Request().Context()
	domain := c.Param("domain")

	var cached []*models.Notice
	if err := h.cache.GetContent(ctx, domain, "notices", &cached); err == nil {
		return c.JSON(http.StatusOK, map[string]any{"notices": cached})
	}

	org, err := h.orgRepo.GetBySubdomain(ctx, domain)
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}
	notices, err := h.noticeRepo.List(ctx, org.ID, 100, 0)
	if err != nil {
		return common.SendServerError(c, "Failed to list notices")
	}
	if err := h.cache.SetContent(ctx, domain, "notices", notices, publicContentTTL); err != nil {
		log.Printf("WARN: failed to cache notices for %s: %v", domain, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"notices": notices})
}

func (h *NoticeHandlers) GetSingleNotice(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid notice ID format")
	}

	notice, err := h.noticeRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Notice")
	}
	return c.JSON(http.StatusOK, notice)
}

func (h *NoticeHandlers) UpdateNotice(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid notice ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityNotice)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	notice, err := h.noticeRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Notice")
	}

	var req struct {
		Title       *string `json:"title"`
		Body        *string `json:"body"`
		PublishedAt *string `json:"published_at"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Body != nil {
		notice.Body = *req.Body
	}
	if req.PublishedAt != nil {
		published, err := parseDate(*req.PublishedAt)
		if err != nil {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "published_at", Message: "must be a date in YYYY-MM-DD format"},
			})
		}
		notice.PublishedAt = &published
	}

	if err := h.noticeRepo.Update(ctx, notice); err != nil {
		return common.SendPersistenceError(c, "notices", err)
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusOK, notice)
}

func (h *NoticeHandlers) DeleteNotice(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid notice ID format")
	}

	if err := h.noticeRepo.Delete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Notice")
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Notice deleted successfully"})
}

func (h *NoticeHandlers) invalidate(c echo.Context, orgID uuid.UUID) {
	ctx := c.Request().Context()
	org, err := h.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return
	}
	if err := h.cache.InvalidateContent(ctx, org.Subdomain); err != nil {
		log.Printf("WARN: failed to invalidate content cache for %s: %v", org.Subdomain, err)
	}
}
