package session

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	sessionManagerKey = "session_manager"
	sessionServiceKey = "session_service"
)

// Middleware bridges scs's net/http LoadAndSave into echo's handler
// chain so every request carries a loaded session.
func Middleware(manager *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if manager == nil {
				return next(c)
			}

			c.Set(sessionManagerKey, manager)

			var handlerErr error

			rw := &responseWriterWrapper{
				ResponseWriter: c.Response().Writer,
				echo:           c.Response(),
			}

			handler := manager.SessionManager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), sessionManagerKey, manager)
				c.SetRequest(r.WithContext(ctx))
				c.Response().Writer = w
				handlerErr = next(c)
			}))

			handler.ServeHTTP(rw, c.Request())
			return handlerErr
		}
	}
}

// responseWriterWrapper keeps echo's recorded status in sync when scs
// writes the header itself.
type responseWriterWrapper struct {
	http.ResponseWriter
	echo *echo.Response
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if w.echo.Status == 0 {
		w.echo.Status = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func GetManager(c echo.Context) *Manager {
	if manager := c.Get(sessionManagerKey); manager != nil {
		return manager.(*Manager)
	}
	return nil
}

// ServiceMiddleware injects the session inventory service so login can
// record the device a session belongs to, and keeps the inventory's
// last-used timestamp current for authenticated traffic.
func ServiceMiddleware(service *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if service == nil {
				return next(c)
			}
			c.Set(sessionServiceKey, service)

			if IsAuthenticated(c) {
				if manager := GetManager(c); manager != nil {
					if token := manager.Token(c.Request().Context()); token != "" {
						_ = service.TouchLastUsed(token)
					}
				}
			}
			return next(c)
		}
	}
}

func GetService(c echo.Context) *Service {
	if service, ok := c.Get(sessionServiceKey).(*Service); ok {
		return service
	}
	return nil
}
