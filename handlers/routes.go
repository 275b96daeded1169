package handlers

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/middleware/jwtauth"
	"github.com/streamify/streamify/middleware/ratelimit"
	"github.com/streamify/streamify/server"
	"github.com/streamify/streamify/services/jwt"
	"github.com/streamify/streamify/session"
)

// Handlers bundles every handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	Media        *MediaHandler
	Content      *ContentHandler
	Playlist     *PlaylistHandler
	Subscription *SubscriptionHandler
	Profile      *ProfileHandler
	API          *APIHandler
	Admin        *AdminHandler
}

// RegisterRoutes wires the HTTP surface: session middleware on
// everything, rate limits on the credential and OTP endpoints, session
// auth for the web routes and bearer tokens for /api/v1.
func RegisterRoutes(
	srv *server.Server,
	cfg *config.Config,
	h *Handlers,
	manager *session.Manager,
	sessions *session.Service,
	jwtSvc *jwt.Service,
) {
	e := srv.Echo()
	e.Use(echomw.Recover())
	e.Use(session.Middleware(manager))
	e.Use(session.ServiceMiddleware(sessions))

	var limit echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		limit = ratelimit.Middleware(&ratelimit.Config{
			Rate:   cfg.RateLimit.Rate,
			Period: cfg.RateLimit.Period,
		})
	} else {
		limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register, limit)
	auth.POST("/login", h.Auth.Login, limit)
	auth.GET("/verify", h.Auth.VerifyPage)
	auth.POST("/verify", h.Auth.Verify, limit)
	auth.POST("/resend", h.Auth.Resend, limit)
	auth.POST("/logout", h.Auth.Logout)

	// The media root requires a signed-in session; the premium gate
	// applies on the per-item stream route.
	e.GET("/media/*", h.Media.Serve, session.RequireAuth())

	e.GET("/content", h.Content.List)
	e.GET("/content/genres", h.Content.Genres)
	e.GET("/content/:id", h.Content.Detail)
	e.GET("/content/:id/stream", h.Media.Stream, session.RequireAuth())
	e.POST("/content", h.Content.Upload, session.RequireAuth())
	e.PUT("/content/:id", h.Content.Update, session.RequireAuth())
	e.DELETE("/content/:id", h.Content.Delete, session.RequireAuth())
	e.POST("/content/:id/like", h.Content.ToggleLike, session.RequireAuth())
	e.POST("/content/:id/comments", h.Content.AddComment, session.RequireAuth())

	playlists := e.Group("/playlists", session.RequireAuth())
	playlists.GET("", h.Playlist.List)
	playlists.POST("", h.Playlist.Create)
	playlists.GET("/:id", h.Playlist.Get)
	playlists.DELETE("/:id", h.Playlist.Delete)
	playlists.POST("/:id/items", h.Playlist.AddItem)
	playlists.DELETE("/:id/items/:contentID", h.Playlist.RemoveItem)

	watchlist := e.Group("/watchlist", session.RequireAuth())
	watchlist.GET("", h.Playlist.Watchlist)
	watchlist.POST("/:contentID", h.Playlist.AddToWatchlist)
	watchlist.DELETE("/:contentID", h.Playlist.RemoveFromWatchlist)

	e.GET("/plans", h.Subscription.Plans)
	subs := e.Group("/subscriptions", session.RequireAuth())
	subs.GET("/current", h.Subscription.Current)
	subs.POST("", h.Subscription.Subscribe)
	subs.POST("/payments/:transactionID/complete", h.Subscription.CompletePayment)
	subs.POST("/cancel", h.Subscription.Cancel)

	profile := e.Group("/profile", session.RequireAuth())
	profile.GET("", h.Profile.Show)
	profile.PUT("", h.Profile.Update)
	profile.POST("/password", h.Profile.ChangePassword)
	profile.GET("/sessions", h.Profile.Sessions)
	profile.DELETE("/sessions/:id", h.Profile.RevokeSession)
	profile.POST("/totp/enroll", h.Profile.EnrollTOTP)
	profile.POST("/totp/confirm", h.Profile.ConfirmTOTP)
	profile.DELETE("/totp", h.Profile.DisableTOTP)

	admin := e.Group("/admin", session.RequireAuth(), h.Admin.RequireAdmin)
	admin.GET("/revenue", h.Admin.Revenue)
	admin.POST("/users/:id/promote", h.Admin.PromoteCreator)

	api := e.Group("/api/v1")
	api.POST("/auth/token", h.API.Token, limit)
	protected := api.Group("", jwtauth.Middleware(jwtSvc))
	protected.GET("/me", h.API.Me)
	protected.GET("/content", h.API.ListContent)
	protected.GET("/content/:id", h.API.GetContent)
}
