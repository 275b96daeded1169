package media

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/logging"
	"go.uber.org/zap"
)

// Service streams files from a fixed media root. It holds no mutable
// state; every request is resolved and served independently.
type Service struct {
	root   string
	logger *logging.Service
}

func NewService(cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		root:   cfg.Media.Root,
		logger: logger,
	}
}

func (s *Service) Root() string {
	return s.root
}

// ServeFile hands a validated open file to http.ServeContent, which
// owns the byte-range protocol: 206 with Content-Range for partial
// requests, 200 for full ones, 416 when the range is unsatisfiable.
func (s *Service) ServeFile(c echo.Context) error {
	return s.serve(c, c.Param("*"))
}

// ServeRelative serves a path under the media root that the caller
// already looked up, e.g. a catalogue item's file path.
func (s *Service) ServeRelative(c echo.Context, requested string) error {
	return s.serve(c, requested)
}

func (s *Service) serve(c echo.Context, requested string) error {
	full, err := Resolve(s.root, requested)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("media request rejected", zap.String("path", requested))
		}
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}

	f, err := os.Open(full)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}

	c.Response().Header().Set(echo.HeaderContentType, ContentType(full))
	http.ServeContent(c.Response(), c.Request(), "", info.ModTime(), f)
	return nil
}
