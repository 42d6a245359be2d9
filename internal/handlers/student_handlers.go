package handlers

import (
	"net/http"

	"edumart/internal/common"
	"edumart/internal/repositories"
	"edumart/internal/validation"

	"github.com/labstack/echo/v4"
)

type StudentHandlers struct {
	studentRepo repositories.StudentRepository
	registry    *validation.Registry
}

func NewStudentHandlers(studentRepo repositories.StudentRepository, registry *validation.Registry) *StudentHandlers {
	return &StudentHandlers{studentRepo: studentRepo, registry: registry}
}

func (h *StudentHandlers) ListStudents(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	limit, offset := parsePagination(c)
	students, err := h.studentRepo.List(ctx, orgID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list students")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"students": students,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *StudentHandlers) GetSingleStudent(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid student ID format")
	}

	student, err := h.studentRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Student")
	}
	return c.JSON(http.StatusOK, student)
}

func (h *StudentHandlers) UpdateStudent(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid student ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityStudent)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	student, err := h.studentRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "Student")
	}

	var req struct {
		Name         *string `json:"name"`
		ClassName    *string `json:"class_name"`
		Section      *string `json:"section"`
		Roll         *int    `json:"roll"`
		Session      *string `json:"session"`
		GuardianName *string `json:"guardian_name"`
		Phone        *string `json:"phone"`
	}
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.ClassName != nil {
		student.ClassName = *req.ClassName
	}
	if req.Section != nil {
		student.Section = req.Section
	}
	if req.Roll != nil {
		student.Roll = *req.Roll
	}
	if req.Session != nil {
		student.Session = *req.Session
	}
	if req.GuardianName != nil {
		student.GuardianName = req.GuardianName
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}

	if err := h.studentRepo.Update(ctx, student); err != nil {
		return common.SendPersistenceError(c, "students", err)
	}
	return c.JSON(http.StatusOK, student)
}

func (h *StudentHandlers) DeleteStudent(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid student ID format")
	}

	if err := h.studentRepo.SoftDelete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "Student")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Student deleted successfully"})
}
