package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
	"github.com/techBikashRepo/jobbee-api/pkg/jwtutil"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
	"github.com/techBikashRepo/jobbee-api/prometheus"
)

const userContextKey = "current_user"

// AuthMiddleware validates the bearer token and attaches the resolved user
// to the request context.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return apperr.Unauthorized("Login first to access this resource.")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_header")
			return apperr.Unauthorized("Login first to access this resource.")
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return apperr.Unauthorized("Invalid or expired token. Please login again.")
		}

		var user model.User
		if result := database.GetDB().First(&user, claims.UserID); result.Error != nil {
			log.Error("Token user no longer exists", zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError("user_not_found")
			return apperr.Unauthorized("Invalid or expired token. Please login again.")
		}

		c.Set(userContextKey, &user)
		return next(c)
	}
}

// RequireRoles gates a route to the given roles. Must run after
// AuthMiddleware.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperr.Unauthorized("Login first to access this resource.")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			logger.FromEcho(c).Warn("Role not allowed",
				zap.String("role", user.Role),
				zap.Strings("allowed", roles))
			prometheus.RecordAuthError("forbidden_role")
			return apperr.Forbidden("Role (%s) is not allowed to access this resource.", user.Role)
		}
	}
}

// CurrentUser retrieves the authenticated user from the request context.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}
