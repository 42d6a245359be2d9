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

type StudentPaymentHandlers struct {
	paymentService services.StudentPaymentService
	resolver       *normalize.Resolver
	registry       *validation.Registry
}

func NewStudentPaymentHandlers(paymentService services.StudentPaymentService, resolver *normalize.Resolver, registry *validation.Registry) *StudentPaymentHandlers {
	return &StudentPaymentHandlers{paymentService: paymentService, resolver: resolver, registry: registry}
}

func (h *StudentPaymentHandlers) CreateStudentPayment(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityStudentPayment)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	// A student belonging to another organization resolves the same way
	// as one that does not exist.
	if err := h.resolver.ResolveRefs(ctx, d, payload, orgID); err != nil {
		if errors.Is(err, normalize.ErrRefNotFound) {
			return common.SendNotFound(c, "Student")
		}
		return common.SendServerError(c, "Failed to verify references")
	}

	var req services.CreateStudentPaymentRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	payment, err := h.paymentService.Create(ctx, orgID, &req)
	if err != nil {
		return common.SendPersistenceError(c, "student_payments", err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *StudentPaymentHandlers) ListStudentPayments(c echo.Context) error {
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
		payments, err := h.paymentService.ListByStudent(ctx, orgID, studentID, limit, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to list student payments")
		}
		return c.JSON(http.StatusOK, map[string]any{
			"payments": payments,
			"limit":    limit,
			"offset":   offset,
		})
	}

	payments, err := h.paymentService.List(ctx, orgID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list student payments")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *StudentPaymentHandlers) GetSingleStudentPayment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	payment, err := h.paymentService.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Student payment")
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *StudentPaymentHandlers) UpdateStudentPayment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityStudentPayment)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	var req services.UpdateStudentPaymentRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	payment, err := h.paymentService.Update(ctx, orgID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "pay_status", Message: services.ErrInvalidTransition.Error()},
			})
		}
		return common.SendPersistenceError(c, "student_payments", err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *StudentPaymentHandlers) DeleteStudentPayment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	if err := h.paymentService.SoftDelete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Student payment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}

func (h *StudentPaymentHandlers) RestoreStudentPayment(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid payment ID format")
	}

	if err := h.paymentService.Restore(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Student payment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment restored successfully"})
}
