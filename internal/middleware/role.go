package middleware

import (
	"edumart/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireRole allows only callers whose token role is in the given set.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorized(c)
			}
			if !allowed[role] {
				return common.SendForbidden(c)
			}
			return next(c)
		}
	}
}
