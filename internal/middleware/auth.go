package middleware

import (
	"net/http"
	"strings"

	"car-service/pkg/jwtutil"
	"car-service/pkg/logger"
	"car-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header.
// The handler behind it never reads the authenticated identity, so no
// claims are attached to the context.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}

		// Expected format: "Bearer <token>". Anything else fails token
		// verification below.
		var tokenString string
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			tokenString = parts[1]
		}

		if _, err := jwtutil.ValidateToken(tokenString); err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Invalid token",
			})
		}

		return next(c)
	}
}
