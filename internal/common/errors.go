package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"edumart/internal/validation"
)

// ErrorResponse is the uniform error envelope. Structural validation
// failures and persistence-level duplicate-key errors both surface through
// it, so callers never branch on error origin.
type ErrorResponse struct {
	StatusCode   int                      `json:"statusCode"`
	Message      string                   `json:"message"`
	ErrorSources []validation.ErrorSource `json:"errorSources"`
}

// SendValidationError reports every collected violation at once.
func SendValidationError(c echo.Context, sources []validation.ErrorSource) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{
		StatusCode:   http.StatusBadRequest,
		Message:      "Validation failed",
		ErrorSources: sources,
	})
}

func SendBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{
		StatusCode:   http.StatusBadRequest,
		Message:      message,
		ErrorSources: []validation.ErrorSource{{Path: "", Message: message}},
	})
}

func SendNotFound(c echo.Context, resource string) error {
	message := fmt.Sprintf("%s not found", resource)
	return c.JSON(http.StatusNotFound, &ErrorResponse{
		StatusCode:   http.StatusNotFound,
		Message:      message,
		ErrorSources: []validation.ErrorSource{{Path: "", Message: message}},
	})
}

func SendUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, &ErrorResponse{
		StatusCode:   http.StatusUnauthorized,
		Message:      "Unauthorized access",
		ErrorSources: []validation.ErrorSource{{Path: "", Message: "Unauthorized access"}},
	})
}

func SendForbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, &ErrorResponse{
		StatusCode:   http.StatusForbidden,
		Message:      "Forbidden",
		ErrorSources: []validation.ErrorSource{{Path: "", Message: "Forbidden"}},
	})
}

func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, &ErrorResponse{
		StatusCode:   http.StatusInternalServerError,
		Message:      message,
		ErrorSources: []validation.ErrorSource{{Path: "", Message: message}},
	})
}

// SendPersistenceError maps storage failures into the envelope. Duplicate-key
// violations become 400s with the offending column recovered from the
// constraint name where Postgres names it table_column_key; anything else is
// a 500 with minimal detail.
func SendPersistenceError(c echo.Context, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		path := columnFromConstraint(table, pgErr.ConstraintName)
		message := "Duplicate value violates a uniqueness constraint"
		if path != "" {
			message = fmt.Sprintf("Duplicate value for %s", path)
		}
		return c.JSON(http.StatusBadRequest, &ErrorResponse{
			StatusCode:   http.StatusBadRequest,
			Message:      message,
			ErrorSources: []validation.ErrorSource{{Path: path, Message: message}},
		})
	}
	return SendServerError(c, "Operation could not be completed")
}

// columnFromConstraint recovers "subdomain" from "organizations_subdomain_key".
// Constraint names outside the table_column_key convention yield no path.
func columnFromConstraint(table, constraint string) string {
	if !strings.HasSuffix(constraint, "_key") || !strings.HasPrefix(constraint, table+"_") {
		return ""
	}
	name := strings.TrimSuffix(strings.TrimPrefix(constraint, table+"_"), "_key")
	return name
}
