package middleware

import (
	"context"
	"net/http"

	"edumart/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTCustomClaims mirrors services.TokenClaims on the verification side.
type JWTCustomClaims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SeedContext copies the verified claims into the request context so
// handlers and services read tenant scope from one place.
func SeedContext(c echo.Context, claims *JWTCustomClaims) error {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id in token")
	}
	orgID, err := uuid.Parse(claims.OrgID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid org_id in token")
	}

	ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
	ctx = context.WithValue(ctx, common.OrgIDKey, orgID)
	ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
	c.SetRequest(c.Request().WithContext(ctx))
	return nil
}
