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

type DepartmentHandlers struct {
	departmentRepo repositories.DepartmentRepository
	orgRepo        repositories.OrganizationRepository
	cache          caching.CacheService
	registry       *validation.Registry
}

func NewDepartmentHandlers(departmentRepo repositories.DepartmentRepository, orgRepo repositories.OrganizationRepository, cache caching.CacheService, registry *validation.Registry) *DepartmentHandlers {
	return &DepartmentHandlers{departmentRepo: departmentRepo, orgRepo: orgRepo, cache: cache, registry: registry}
}

func (h *DepartmentHandlers) CreateDepartment(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityDepartment)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	var req struct {
		Name string  `json:"name"`
		Head *string `json:"head"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	department := &models.Department{
		ID:    uuid.New(),
		OrgID: orgID,
		Name:  req.Name,
		Head:  req.Head,
	}
	if err := h.departmentRepo.Create(ctx, department); err != nil {
		return common.SendPersistenceError(c, "departments", err)
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusCreated, department)
}

// GetDepartmentsByDomain serves the public department list for an
// organization's subdomain, cached for a short TTL.
func (h *DepartmentHandlers) GetDepartmentsByDomain(c echo.Context) error {
	ctx := c.Request().Context()
	domain := c.Param("domain")

	var cached []*models.Department
	if err := h.cache.GetContent(ctx, domain, "departments", &cached); err == nil {
		return c.JSON(http.StatusOK, map[string]any{"departments": cached})
	}

	org, err := h.orgRepo.GetBySubdomain(ctx, domain)
	if err != nil {
		return common.SendNotFound(c, "Organization")
	}
	departments, err := h.departmentRepo.List(ctx, org.ID, 100, 0)
	if err != nil {
		return common.SendServerError(c, "Failed to list departments")
	}
	if err := h.cache.SetContent(ctx, domain, "departments", departments, publicContentTTL); err != nil {
		log.Printf("WARN: failed to cache departments for %s: %v", domain, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"departments": departments})
}

func (h *DepartmentHandlers) GetSingleDepartment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid department ID format")
	}

	department, err := h.departmentRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Department")
	}
	return c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandlers) UpdateDepartment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid department ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityDepartment)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	department, err := h.departmentRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Department")
	}

	var req struct {
		Name *string `json:"name"`
		Head *string `json:"head"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Head != nil {
		department.Head = req.Head
	}

	if err := h.departmentRepo.Update(ctx, department); err != nil {
		return common.SendPersistenceError(c, "departments", err)
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandlers) DeleteDepartment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid department ID format")
	}

	if err := h.departmentRepo.Delete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Department")
	}
	h.invalidate(c, orgID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Department deleted successfully"})
}

func (h *DepartmentHandlers) invalidate(c echo.Context, orgID uuid.UUID) {
	ctx := c.Request().Context()
	org, err := h.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return
	}
	if err := h.cache.InvalidateContent(ctx, org.Subdomain); err != nil {
		log.Printf("WARN: failed to invalidate content cache for %s: %v", org.Subdomain, err)
	}
}
