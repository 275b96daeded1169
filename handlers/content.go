package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/content"
	"github.com/streamify/streamify/services/user"
	"github.com/streamify/streamify/session"
)

type ContentHandler struct {
	content *content.Service
	users   *user.Service
}

func NewContentHandler(contentSvc *content.Service, users *user.Service) *ContentHandler {
	return &ContentHandler{content: contentSvc, users: users}
}

// List returns a page of the published catalogue, searchable via ?q=
// and filterable by type and genre. ?sort= accepts newest, oldest and
// popular.
func (h *ContentHandler) List(c echo.Context) error {
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

func (h *ContentHandler) Genres(c echo.Context) error {
	genres, err := h.content.Genres()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"genres": genres})
}

// Detail returns one item with its comment thread and whether the
// viewer may stream it.
func (h *ContentHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	viewerID := session.GetUserID(c)
	item, err := h.content.Get(uint(id), viewerID)
	if err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	canStream, err := h.content.CanStream(item, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	comments, err := h.content.Comments(item.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"content":    item,
		"can_stream": canStream,
		"comments":   comments,
	})
}

type uploadRequest struct {
	Title       string       `json:"title" form:"title"`
	Description string       `json:"description" form:"description"`
	Type        content.Type `json:"content_type" form:"content_type"`
	FilePath    string       `json:"file_path" form:"file_path"`
	Thumbnail   string       `json:"thumbnail" form:"thumbnail"`
	Duration    uint         `json:"duration" form:"duration"`
	ArtistName  string       `json:"artist_name" form:"artist_name"`
	Album       string       `json:"album" form:"album"`
	Premium     bool         `json:"premium" form:"premium"`
	Published   bool         `json:"published" form:"published"`
}

// Upload registers a new catalogue item. Creator role required.
func (h *ContentHandler) Upload(c echo.Context) error {
	u, err := h.users.GetByID(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Title == "" || req.FilePath == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and file path are required")
	}

	item := &content.Content{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		FilePath:    req.FilePath,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
		ArtistName:  req.ArtistName,
		Album:       req.Album,
		Premium:     req.Premium,
		Published:   req.Published,
	}

	if err := h.content.Create(u, item); err != nil {
		if errors.Is(err, content.ErrNotCreator) {
			return echo.NewHTTPError(http.StatusForbidden, "A creator account is required to upload content")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	return c.JSON(http.StatusCreated, item)
}

// Update edits an existing item. Only the uploader or an admin may
// change it.
func (h *ContentHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	u, err := h.users.GetByID(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Title == "" || req.FilePath == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and file path are required")
	}

	item, err := h.content.Get(uint(id), u.ID)
	if err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	item.Title = req.Title
	item.Description = req.Description
	item.Type = req.Type
	item.FilePath = req.FilePath
	item.Thumbnail = req.Thumbnail
	item.Duration = req.Duration
	item.ArtistName = req.ArtistName
	item.Album = req.Album
	item.Premium = req.Premium
	item.Published = req.Published

	if err := h.content.Update(u, item); err != nil {
		if errors.Is(err, content.ErrNotOwner) {
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this content")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	u, err := h.users.GetByID(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	if err := h.content.Delete(u, uint(id)); err != nil {
		switch {
		case errors.Is(err, content.ErrContentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		case errors.Is(err, content.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this content")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the viewer's like and reports the new state.
func (h *ContentHandler) ToggleLike(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	liked, count, err := h.content.ToggleLike(session.GetUserID(c), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"liked": liked,
		"likes": count,
	})
}

type commentRequest struct {
	Text     string `json:"text" form:"text"`
	ParentID *uint  `json:"parent_id" form:"parent_id"`
}

func (h *ContentHandler) AddComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text is required")
	}

	comment, err := h.content.AddComment(session.GetUserID(c), uint(id), req.Text, req.ParentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusCreated, comment)
}
