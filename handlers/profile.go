package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/totp"
	"github.com/streamify/streamify/services/user"
	"github.com/streamify/streamify/session"
)

type ProfileHandler struct {
	users    *user.Service
	totp     *totp.Service
	sessions *session.Service
}

func NewProfileHandler(users *user.Service, totpSvc *totp.Service, sessions *session.Service) *ProfileHandler {
	return &ProfileHandler{
		users:    users,
		totp:     totpSvc,
		sessions: sessions,
	}
}

func (h *ProfileHandler) Show(c echo.Context) error {
	u, err := h.users.GetByID(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":         u,
		"totp_enabled": h.totp.IsEnabled(u.ID),
	})
}

type updateProfileRequest struct {
	Name           string `json:"name" form:"name"`
	Bio            string `json:"bio" form:"bio"`
	ProfilePicture string `json:"profile_picture" form:"profile_picture"`
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	err := h.users.UpdateProfile(session.GetUserID(c), req.Name, req.Bio, req.ProfilePicture)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	session.SetFlash(c, "Profile updated.", session.FlashSuccess)
	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated."})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	err := h.users.ChangePassword(session.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed."})
}

// Sessions lists the user's active sessions with device labels, the
// current one flagged.
func (h *ProfileHandler) Sessions(c echo.Context) error {
	manager := session.GetManager(c)
	currentToken := ""
	if manager != nil {
		currentToken = manager.Token(c.Request().Context())
	}

	sessions, err := h.sessions.UserSessions(session.GetUserID(c), currentToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": sessions})
}

// RevokeSession signs out one of the user's other devices.
func (h *ProfileHandler) RevokeSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Session not found")
	}

	if err := h.sessions.Revoke(session.GetUserID(c), uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Session not found")
	}
	return c.NoContent(http.StatusNoContent)
}

type totpRequest struct {
	Code string `json:"code" form:"code"`
}

// EnrollTOTP generates an authenticator-app secret. The secret is not
// accepted at login until confirmed via ConfirmTOTP.
func (h *ProfileHandler) EnrollTOTP(c echo.Context) error {
	u, err := h.users.GetByID(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	secret, url, err := h.totp.Enroll(u.ID, u.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{
			"secret": secret.Secret,
			"url":    url,
		})
	case errors.Is(err, totp.ErrSecretExists):
		return echo.NewHTTPError(http.StatusConflict, "An authenticator is already enrolled")
	case errors.Is(err, totp.ErrTOTPDisabled):
		return echo.NewHTTPError(http.StatusNotFound, "Authenticator support is disabled")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
}

func (h *ProfileHandler) ConfirmTOTP(c echo.Context) error {
	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	err := h.totp.Enable(session.GetUserID(c), req.Code)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "Authenticator enabled."})
	case errors.Is(err, totp.ErrInvalidCode):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid authenticator code")
	case errors.Is(err, totp.ErrSecretNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "No authenticator enrolled")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
}

func (h *ProfileHandler) DisableTOTP(c echo.Context) error {
	err := h.totp.Disable(session.GetUserID(c))
	if err != nil {
		if errors.Is(err, totp.ErrSecretNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No authenticator enrolled")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Authenticator disabled."})
}
