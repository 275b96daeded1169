package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/logging"
	"go.uber.org/zap"
)

type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *logging.Service
}

func New(cfg *config.Config, logger *logging.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Server) Start() {
	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	if s.logger != nil {
		s.logger.Info("starting server", zap.String("addr", addr))
	}

	if err := s.echo.Start(addr); err != nil && s.logger != nil {
		s.logger.Error("server stopped", zap.Error(err))
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Get(path string, handler echo.HandlerFunc) {
	s.echo.GET(path, handler)
}

func (s *Server) Post(path string, handler echo.HandlerFunc) {
	s.echo.POST(path, handler)
}

func (s *Server) Put(path string, handler echo.HandlerFunc) {
	s.echo.PUT(path, handler)
}

func (s *Server) Delete(path string, handler echo.HandlerFunc) {
	s.echo.DELETE(path, handler)
}

func (s *Server) Patch(path string, handler echo.HandlerFunc) {
	s.echo.PATCH(path, handler)
}

func (s *Server) Group(prefix string) *echo.Group {
	return s.echo.Group(prefix)
}

func (s *Server) Use(middleware ...echo.MiddlewareFunc) {
	s.echo.Use(middleware...)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
