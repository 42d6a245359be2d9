package handlers

import (
	"errors"
	"net/http"

	"edumart/internal/common"
	"edumart/internal/normalize"
	"edumart/internal/services"
	"edumart/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ResultHandlers struct {
	resultService services.ResultService
	resolver      *normalize.Resolver
	registry      *validation.Registry
}

func NewResultHandlers(resultService services.ResultService, resolver *normalize.Resolver, registry *validation.Registry) *ResultHandlers {
	return &ResultHandlers{resultService: resultService, resolver: resolver, registry: registry}
}

func (h *ResultHandlers) CreateResult(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityResult)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	if err := h.resolver.ResolveRefs(ctx, d, payload, orgID); err != nil {
		if errors.Is(err, normalize.ErrRefNotFound) {
			return common.SendNotFound(c, "Referenced record")
		}
		return common.SendServerError(c, "Failed to verify references")
	}

	var req services.CreateResultRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	result, err := h.resultService.Create(ctx, orgID, &req)
	if err != nil {
		return common.SendPersistenceError(c, "results", err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *ResultHandlers) ListResults(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	limit, offset := parsePagination(c)

	if raw := c.QueryParam("student"); raw != "" {
		studentID, err := uuid.Parse(raw)
		if err != nil {
			return common.SendBadRequest(c, "Invalid student ID format")
		}
		results, err := h.resultService.ListByStudent(ctx, orgID, studentID, limit, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to list results")
		}
		return c.JSON(http.StatusOK, map[string]any{
			"results": results,
			"limit":   limit,
			"offset":  offset,
		})
	}

	results, err := h.resultService.List(ctx, orgID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list results")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"results": results,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *ResultHandlers) GetSingleResult(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid result ID format")
	}

	result, err := h.resultService.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Result")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ResultHandlers) UpdateResult(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid result ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityResult)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	var req services.UpdateResultRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	result, err := h.resultService.Update(ctx, orgID, id, &req)
	if err != nil {
		return common.SendPersistenceError(c, "results", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ResultHandlers) DeleteResult(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid result ID format")
	}

	if err := h.resultService.Delete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Result")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Result deleted successfully"})
}
