package handlers

import (
	"log"
	"net/http"
	"strings"

	"edumart/internal/caching"
	"edumart/internal/common"
	"edumart/internal/models"
	"edumart/internal/repositories"
	"edumart/internal/services"
	"edumart/internal/validation"

	"github.com/labstack/echo/v4"
)

type BannerHandlers struct {
	bannerService services.BannerService
	bannerRepo    repositories.BannerRepository
	orgRepo       repositories.OrganizationRepository
	cache         caching.CacheService
	registry      *validation.Registry
}

func NewBannerHandlers(bannerService services.BannerService, bannerRepo repositories.BannerRepository, orgRepo repositories.OrganizationRepository, cache caching.CacheService, registry *validation.Registry) *BannerHandlers {
	return &BannerHandlers{bannerService: bannerService, bannerRepo: bannerRepo, orgRepo: orgRepo, cache: cache, registry: registry}
}

// CreateBanner accepts either a multipart upload (image file stored in
// object storage) or a JSON body carrying an external image_url.
func (h *BannerHandlers) CreateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	org, err := h.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return common.SendUnauthorized(c)
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		title := c.FormValue("title")
		if title == "" {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "title", Message: "title is required"},
			})
		}
		file, err := c.FormFile("image")
		if err != nil {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "image", Message: "image file is required"},
			})
		}
		src, err := file.Open()
		if err != nil {
			return common.SendServerError(c, "Failed to read uploaded file")
		}
		defer src.Close()

		banner, err := h.bannerService.Create(ctx, orgID, org.Subdomain, title, src, file.Size, file.Header.Get("Content-Type"))
		if err != nil {
			return common.SendPersistenceError(c, "banners", err)
		}
		return c.JSON(http.StatusCreated, banner)
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityBanner)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	var req struct {
		Title    string `json:"title"`
		ImageURL string `json:"image_url"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	banner, err := h.bannerService.CreateFromURL(ctx, orgID, org.Subdomain, req.Title, req.ImageURL)
	if err != nil {
		return common.SendPersistenceError(c, "banners", err)
	}
	return c.JSON(http.StatusCreated, banner)
}

// GetBannersByDomain serves the public banner list for an
// organization's subdomain, cached for a short TTL.
func (h *BannerHandlers) GetBannersByDomain(c echo.Context) error {
	ctx := c.Request().Context()
	domain := c.Param("domain")

	var cached []*models.Banner
	if err := h.cache.GetContent(ctx, domain, "banners", &cached); err == nil {
		return c.JSON(http.StatusOK, map[string]any{"banners": cached})
	}

	org, err := h.orgRepo.GetBySubdomain(ctx, domain)
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}
	banners, err := h.bannerRepo.List(ctx, org.ID, 100, 0)
	if err != nil {
		return common.SendServerError(c, "Failed to list banners")
	}
	if err := h.cache.SetContent(ctx, domain, "banners", banners, publicContentTTL); err != nil {
		log.Printf("WARN: failed to cache banners for %s: %v", domain, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"banners": banners})
}

func (h *BannerHandlers) GetSingleBanner(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid banner ID format")
	}

	banner, err := h.bannerService.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Banner")
	}
	return c.JSON(http.StatusOK, banner)
}

func (h *BannerHandlers) UpdateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	org, err := h.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid banner ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityBanner)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	banner, err := h.bannerService.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Banner")
	}

	var req struct {
		Title    *string `json:"title"`
		ImageURL *string `json:"image_url"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}

	if err := h.bannerService.Update(ctx, org.Subdomain, banner); err != nil {
		return common.SendPersistenceError(c, "banners", err)
	}
	return c.JSON(http.StatusOK, banner)
}

func (h *BannerHandlers) DeleteBanner(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	org, err := h.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid banner ID format")
	}

	if err := h.bannerService.Delete(ctx, orgID, id, org.Subdomain); err != nil {
		return common.SendNotFound(c, "Banner")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Banner deleted successfully"})
}
