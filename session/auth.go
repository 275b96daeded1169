package session

import (
	"time"

	"github.com/labstack/echo/v4"
)

const (
	UserIDKey        = "_user_id"
	AuthenticatedKey = "_authenticated"
	PendingUserKey   = "_pending_user_id"
)

// Login promotes the session to the authenticated state and records it
// in the session inventory.
func Login(c echo.Context, userID uint) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	ctx := c.Request().Context()
	manager.Put(ctx, UserIDKey, userID)
	manager.Put(ctx, AuthenticatedKey, true)

	if service := GetService(c); service != nil {
		token := manager.Token(ctx)
		if token != "" && userID > 0 {
			expiresAt := time.Now().Add(manager.config.MaxAge)
			_ = service.Track(userID, token, c.RealIP(), c.Request().UserAgent(), expiresAt)
		}
	}
}

func Logout(c echo.Context) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	ctx := c.Request().Context()

	if service := GetService(c); service != nil {
		if token := manager.Token(ctx); token != "" {
			_ = service.RemoveByToken(token)
		}
	}

	manager.Remove(ctx, UserIDKey)
	manager.Remove(ctx, AuthenticatedKey)
	_ = manager.Destroy(ctx)
}

func GetUserID(c echo.Context) uint {
	manager := GetManager(c)
	if manager == nil {
		return 0
	}
	ctx := c.Request().Context()
	switch v := manager.Get(ctx, UserIDKey).(type) {
	case uint:
		return v
	case int:
		return uint(v)
	case int64:
		return uint(v)
	case float64:
		return uint(v)
	default:
		return 0
	}
}

func IsAuthenticated(c echo.Context) bool {
	manager := GetManager(c)
	if manager == nil {
		return false
	}
	return manager.GetBool(c.Request().Context(), AuthenticatedKey)
}

// BeginPendingLogin marks the session as awaiting OTP verification for
// userID. Only one pending verification exists per session; a second
// call overwrites the first.
func BeginPendingLogin(c echo.Context, userID uint) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	manager.Put(c.Request().Context(), PendingUserKey, userID)
}

// PendingUserID returns the user awaiting verification. ok is false
// when no verification is in progress, which callers treat as "never
// entered the flow" and redirect to login.
func PendingUserID(c echo.Context) (uint, bool) {
	manager := GetManager(c)
	if manager == nil {
		return 0, false
	}
	ctx := c.Request().Context()
	if !manager.Exists(ctx, PendingUserKey) {
		return 0, false
	}
	switch v := manager.Get(ctx, PendingUserKey).(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// CompletePendingLogin clears the pending marker. Called exactly once,
// after a successful verification and before Login.
func CompletePendingLogin(c echo.Context) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	manager.Remove(c.Request().Context(), PendingUserKey)
}

func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAuthenticated(c) {
				return echo.NewHTTPError(401, "Authentication required")
			}
			return next(c)
		}
	}
}

func RequireAuthWeb(loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAuthenticated(c) {
				return c.Redirect(302, loginURL)
			}
			return next(c)
		}
	}
}
