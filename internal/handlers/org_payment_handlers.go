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

type OrganizationPaymentHandlers struct {
	paymentService services.OrganizationPaymentService
	resolver       *normalize.Resolver
	registry       *validation.Registry
}

func NewOrganizationPaymentHandlers(paymentService services.OrganizationPaymentService, resolver *normalize.Resolver, registry *validation.Registry) *OrganizationPaymentHandlers {
	return &OrganizationPaymentHandlers{paymentService: paymentService, resolver: resolver, registry: registry}
}

func (h *OrganizationPaymentHandlers) CreateOrganizationPayment(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityOrganizationPayment)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	// Organizations are the tenant root, so the scope argument is unused
	// for this descriptor's only reference.
	if err := h.resolver.ResolveRefs(ctx, d, payload, uuid.Nil); err != nil {
		if errors.Is(err, normalize.ErrRefNotFound) {
			return common.SendNotFound(c, "Organization")
		}
		return common.SendServerError(c, "Failed to verify references")
	}

	var req services.CreateOrganizationPaymentRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	payment, err := h.paymentService.Create(ctx, &req)
	if err != nil {
		return common.SendPersistenceError(c, "organization_payments", err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *OrganizationPaymentHandlers) ListOrganizationPayments(c echo.Context) error {
	ctx := c.Request().Context()

	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		return common.SendBadRequest(c, "Invalid organization ID format")
	}

	limit, offset := parsePagination(c)
	payments, err := h.paymentService.ListByOrganization(ctx, organizationID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list organization payments")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *OrganizationPaymentHandlers) GetSingleOrganizationPayment(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	payment, err := h.paymentService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFound(c, "Organization payment")
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *OrganizationPaymentHandlers) UpdateOrganizationPayment(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityOrganizationPayment)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	var req services.UpdateOrganizationPaymentRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	payment, err := h.paymentService.Update(ctx, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "pay_status", Message: services.ErrInvalidTransition.Error()},
			})
		}
		return common.SendPersistenceError(c, "organization_payments", err)
	}
	return c.JSON(http.StatusOK, payment)
}

// MarkOrganizationPaymentPaid performs the pending -> paid transition
// and activates the organization's subscription.
func (h *OrganizationPaymentHandlers) MarkOrganizationPaymentPaid(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	payment, err := h.paymentService.MarkPaid(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "pay_status", Message: services.ErrInvalidTransition.Error()},
			})
		}
		return common.SendNotFound(c, "Organization payment")
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *OrganizationPaymentHandlers) DeleteOrganizationPayment(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	if err := h.paymentService.SoftDelete(ctx, id); err != nil {
		return common.SendNotFound(c, "Organization payment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}

func (h *OrganizationPaymentHandlers) RestoreOrganizationPayment(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	if err := h.paymentService.Restore(ctx, id); err != nil {
		return common.SendNotFound(c, "Organization payment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment restored successfully"})
}
