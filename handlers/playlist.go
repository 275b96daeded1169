package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/playlist"
	"github.com/streamify/streamify/session"
)

type PlaylistHandler struct {
	playlists *playlist.Service
}

func NewPlaylistHandler(playlists *playlist.Service) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

type createPlaylistRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Public      bool   `json:"public" form:"public"`
}

func (h *PlaylistHandler) Create(c echo.Context) error {
	var req createPlaylistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Playlist name is required")
	}

	p, err := h.playlists.Create(session.GetUserID(c), req.Name, req.Description, req.Public)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlaylistHandler) List(c echo.Context) error {
	playlists, err := h.playlists.ForUser(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"playlists": playlists})
}

func (h *PlaylistHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
	}

	p, err := h.playlists.Get(uint(id), session.GetUserID(c))
	if err != nil {
		if errors.Is(err, playlist.ErrPlaylistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, p)
}

type playlistItemRequest struct {
	ContentID uint `json:"content_id" form:"content_id"`
}

func (h *PlaylistHandler) AddItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
	}

	var req playlistItemRequest
	if err := c.Bind(&req); err != nil || req.ContentID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	err = h.playlists.AddContent(uint(id), session.GetUserID(c), req.ContentID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "Added to playlist."})
	case errors.Is(err, playlist.ErrPlaylistNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
	case errors.Is(err, playlist.ErrAlreadyInList):
		return echo.NewHTTPError(http.StatusConflict, "Content is already in this playlist")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
}

func (h *PlaylistHandler) RemoveItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
	}
	contentID, err := strconv.ParseUint(c.Param("contentID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	err = h.playlists.RemoveContent(uint(id), session.GetUserID(c), uint(contentID))
	if err != nil {
		if errors.Is(err, playlist.ErrPlaylistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlaylistHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
	}

	if err := h.playlists.Delete(uint(id), session.GetUserID(c)); err != nil {
		if errors.Is(err, playlist.ErrPlaylistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Playlist not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlaylistHandler) Watchlist(c echo.Context) error {
	entries, err := h.playlists.Watchlist(session.GetUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"watchlist": entries})
}

func (h *PlaylistHandler) AddToWatchlist(c echo.Context) error {
	contentID, err := strconv.ParseUint(c.Param("contentID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	if err := h.playlists.AddToWatchlist(session.GetUserID(c), uint(contentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Added to watchlist."})
}

func (h *PlaylistHandler) RemoveFromWatchlist(c echo.Context) error {
	contentID, err := strconv.ParseUint(c.Param("contentID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	if err := h.playlists.RemoveFromWatchlist(session.GetUserID(c), uint(contentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.NoContent(http.StatusNoContent)
}
