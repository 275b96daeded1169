package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/logging"
	"github.com/streamify/streamify/services/otp"
	"github.com/streamify/streamify/services/totp"
	"github.com/streamify/streamify/services/user"
	"github.com/streamify/streamify/session"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users  *user.Service
	otp    *otp.Service
	totp   *totp.Service
	logger *logging.Service
}

func NewAuthHandler(users *user.Service, otpSvc *otp.Service, totpSvc *totp.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		users:  users,
		otp:    otpSvc,
		totp:   totpSvc,
		logger: logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register creates an inactive account, emails an OTP and puts the
// session into the pending-verification state.
func (h *AuthHandler) Register(c echo.Context) error {
	if session.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/")
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, email and password are required")
	}

	u, err := h.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email is already registered.")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.otp.Issue(u); err != nil {
		h.logger.Error("failed to issue OTP after registration", zap.Error(err), zap.Uint("user_id", u.ID))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send verification code.")
	}

	session.BeginPendingLogin(c, u.ID)
	session.SetFlash(c, "An OTP has been sent to your email.", session.FlashInfo)

	return c.JSON(http.StatusOK, echo.Map{"message": "An OTP has been sent to your email."})
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login checks credentials and, on success, issues an OTP instead of
// authenticating the session directly. Unknown email and wrong password
// are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	if session.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	u, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password.")
	}

	if _, err := h.otp.Issue(u); err != nil {
		h.logger.Error("failed to issue OTP after login", zap.Error(err), zap.Uint("user_id", u.ID))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send verification code.")
	}

	session.BeginPendingLogin(c, u.ID)
	session.SetFlash(c, "An OTP has been sent to your email.", session.FlashInfo)

	return c.JSON(http.StatusOK, echo.Map{"message": "An OTP has been sent to your email."})
}

// VerifyPage reports whether a verification is in progress, along with
// any flash left by the step that issued the code. With no pending
// marker the visitor never entered the flow and goes back to login.
func (h *AuthHandler) VerifyPage(c echo.Context) error {
	if _, ok := session.PendingUserID(c); !ok {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	resp := echo.Map{"pending_verification": true}
	if flash := session.GetFlash(c); flash != nil {
		resp["flash"] = flash
	}
	return c.JSON(http.StatusOK, resp)
}

type verifyRequest struct {
	Code string `json:"otp" form:"otp"`
}

// Verify redeems a submitted code and promotes the session. A wrong,
// expired or superseded code gets one uniform answer. An enrolled
// authenticator app is accepted in place of the emailed code.
func (h *AuthHandler) Verify(c echo.Context) error {
	pendingID, ok := session.PendingUserID(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	u, err := h.users.GetByID(pendingID)
	if err != nil {
		h.logger.Error("pending user vanished before verification",
			zap.Error(err), zap.Uint("user_id", pendingID))
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	if err := h.otp.Verify(u.ID, req.Code); err != nil {
		if !errors.Is(err, otp.ErrInvalidCode) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
		}
		if h.totp == nil || h.totp.Verify(u.ID, req.Code) != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired OTP. Try again.")
		}
	}

	// First successful verification after registration activates the
	// account.
	if !u.Active {
		if err := h.users.Activate(u.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
		}
	}

	session.CompletePendingLogin(c)
	session.Login(c, u.ID)
	session.SetFlash(c, "Welcome, "+u.Name+"!", session.FlashSuccess)

	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome, " + u.Name + "!"})
}

// Resend issues a fresh code for the pending user, superseding any
// outstanding one. Outside the flow it just bounces back to login.
func (h *AuthHandler) Resend(c echo.Context) error {
	pendingID, ok := session.PendingUserID(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	u, err := h.users.GetByID(pendingID)
	if err != nil {
		return c.Redirect(http.StatusFound, "/auth/verify")
	}

	if _, err := h.otp.Issue(u); err != nil {
		h.logger.Error("failed to resend OTP", zap.Error(err), zap.Uint("user_id", u.ID))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send verification code.")
	}

	session.SetFlash(c, "A new OTP has been sent to your email.", session.FlashSuccess)
	return c.JSON(http.StatusOK, echo.Map{"message": "A new OTP has been sent to your email."})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	session.Logout(c)
	return c.Redirect(http.StatusFound, "/")
}
