package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/subscription"
	"github.com/streamify/streamify/services/user"
	"github.com/streamify/streamify/session"
)

type AdminHandler struct {
	users         *user.Service
	subscriptions *subscription.Service
}

func NewAdminHandler(users *user.Service, subscriptions *subscription.Service) *AdminHandler {
	return &AdminHandler{users: users, subscriptions: subscriptions}
}

// RequireAdmin loads the session user and rejects non-admins.
func (h *AdminHandler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := h.users.GetByID(session.GetUserID(c))
		if err != nil || !u.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

// Revenue is the admin revenue summary for the last 30 days.
func (h *AdminHandler) Revenue(c echo.Context) error {
	summary, err := h.subscriptions.Revenue(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, summary)
}

// PromoteCreator upgrades a user account to the creator role.
func (h *AdminHandler) PromoteCreator(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if _, err := h.users.GetByID(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := h.users.PromoteToCreator(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User promoted to creator."})
}
