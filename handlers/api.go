package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/middleware/jwtauth"
	"github.com/streamify/streamify/services/content"
	"github.com/streamify/streamify/services/jwt"
	"github.com/streamify/streamify/services/user"
)

// APIHandler serves the token-authenticated REST surface. It reuses the
// same services as the web handlers but answers to bearer tokens
// instead of sessions.
type APIHandler struct {
	users   *user.Service
	content *content.Service
	jwt     *jwt.Service
}

func NewAPIHandler(users *user.Service, contentSvc *content.Service, jwtSvc *jwt.Service) *APIHandler {
	return &APIHandler{
		users:   users,
		content: contentSvc,
		jwt:     jwtSvc,
	}
}

type tokenRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Token exchanges credentials for a bearer token. Credentials alone are
// enough here; the OTP step guards interactive sessions, not API
// clients.
func (h *APIHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	u, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password.")
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   h.jwt.AccessExpirySeconds(),
	})
}

func (h *APIHandler) ListContent(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	items, total, err := h.content.List(content.ListFilter{
		Query:     c.QueryParam("q"),
		Type:      content.Type(c.QueryParam("type")),
		GenreSlug: c.QueryParam("genre"),
		Sort:      c.QueryParam("sort"),
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

func (h *APIHandler) GetContent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	item, err := h.content.Get(uint(id), jwtauth.GetUserID(c))
	if err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *APIHandler) Me(c echo.Context) error {
	u, err := h.users.GetByID(jwtauth.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	return c.JSON(http.StatusOK, u)
}
