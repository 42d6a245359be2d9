package handlers

import (
	"net/http"

	"edumart/internal/common"
	"edumart/internal/models"
	"edumart/internal/repositories"
	"edumart/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ExamHandlers struct {
	examRepo repositories.ExamRepository
	registry *validation.Registry
}

func NewExamHandlers(examRepo repositories.ExamRepository, registry *validation.Registry) *ExamHandlers {
	return &ExamHandlers{examRepo: examRepo, registry: registry}
}

func (h *ExamHandlers) CreateExam(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityExam)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	var req struct {
		Name     string  `json:"name"`
		ExamType *string `json:"exam_type"`
		Year     int     `json:"year"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	exam := &models.Exam{
		ID:       uuid.New(),
		OrgID:    orgID,
		Name:     req.Name,
		ExamType: req.ExamType,
		Year:     req.Year,
	}
	if err := h.examRepo.Create(ctx, exam); err != nil {
		return common.SendPersistenceError(c, "exams", err)
	}
	return c.JSON(http.StatusCreated, exam)
}

func (h *ExamHandlers) ListExams(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	limit, offset := parsePagination(c)
	exams, err := h.examRepo.List(ctx, orgID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list exams")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"exams":  exams,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *ExamHandlers) GetSingleExam(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid exam ID format")
	}

	exam, err := h.examRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Exam")
	}
	return c.JSON(http.StatusOK, exam)
}

func (h *ExamHandlers) UpdateExam(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid exam ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityExam)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	exam, err := h.examRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Exam")
	}

	var req struct {
		Name     *string `json:"name"`
		ExamType *string `json:"exam_type"`
		Year     *int    `json:"year"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.ExamType != nil {
		exam.ExamType = req.ExamType
	}
	if req.Year != nil {
		exam.Year = *req.Year
	}

	if err := h.examRepo.Update(ctx, exam); err != nil {
		return common.SendPersistenceError(c, "exams", err)
	}
	return c.JSON(http.StatusOK, exam)
}

func (h *ExamHandlers) DeleteExam(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid exam ID format")
	}

	if err := h.examRepo.SoftDelete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Exam")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Exam deleted successfully"})
}

func (h *ExamHandlers) RestoreExam(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid exam ID format")
	}

	if err := h.examRepo.Restore(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Exam")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Exam restored successfully"})
}
