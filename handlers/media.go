package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/content"
	"github.com/streamify/streamify/services/media"
	"github.com/streamify/streamify/session"
)

type MediaHandler struct {
	media   *media.Service
	content *content.Service
}

func NewMediaHandler(mediaSvc *media.Service, contentSvc *content.Service) *MediaHandler {
	return &MediaHandler{media: mediaSvc, content: contentSvc}
}

// Serve streams a file addressed by its path under the media root.
// Traversal attempts and missing files both come back as 404; byte
// ranges are honored.
func (h *MediaHandler) Serve(c echo.Context) error {
	return h.media.ServeFile(c)
}

// Stream plays a catalogue item by id, applying the premium gate before
// handing the underlying file to the media service.
func (h *MediaHandler) Stream(c echo.Context) error {
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

	allowed, err := h.content.CanStream(item, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusForbidden, "A subscription is required to stream premium content")
	}

	var uid *uint
	if viewerID > 0 {
		uid = &viewerID
	}
	_ = h.content.RecordView(item.ID, uid, c.RealIP())

	return h.media.ServeRelative(c, item.FilePath)
}
