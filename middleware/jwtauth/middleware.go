package jwtauth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/jwt"
)

const (
	claimsContextKey = "jwt_claims"
	userIDContextKey = "jwt_user_id"
)

// Middleware authenticates API requests via a Bearer token.
func Middleware(jwtSvc *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or malformed token")
			}

			claims, err := jwtSvc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(claimsContextKey, claims)
			c.Set(userIDContextKey, claims.UserID)
			return next(c)
		}
	}
}

func GetClaims(c echo.Context) *jwt.Claims {
	if claims, ok := c.Get(claimsContextKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}

func GetUserID(c echo.Context) uint {
	if id, ok := c.Get(userIDContextKey).(uint); ok {
		return id
	}
	return 0
}
