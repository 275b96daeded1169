package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/database"
	"github.com/streamify/streamify/handlers"
	"github.com/streamify/streamify/server"
	"github.com/streamify/streamify/services/auth"
	"github.com/streamify/streamify/services/content"
	"github.com/streamify/streamify/services/jwt"
	"github.com/streamify/streamify/services/logging"
	"github.com/streamify/streamify/services/mail"
	"github.com/streamify/streamify/services/media"
	"github.com/streamify/streamify/services/otp"
	"github.com/streamify/streamify/services/playlist"
	"github.com/streamify/streamify/services/subscription"
	"github.com/streamify/streamify/services/totp"
	"github.com/streamify/streamify/services/user"
	"github.com/streamify/streamify/session"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// App is the assembled application: every service wired through fx,
// the HTTP server started on fx's lifecycle.
type App struct {
	fx     *fx.App
	config *config.Config
	logger *logging.Service
	db     *gorm.DB
	server *server.Server
}

// Models returns everything the schema migrator needs to know about.
func Models() []any {
	return []any{
		&user.User{},
		&otp.Code{},
		&totp.TOTPSecret{},
		&session.UserSession{},
		&content.Genre{},
		&content.Content{},
		&content.Like{},
		&content.Comment{},
		&content.ContentView{},
		&playlist.Playlist{},
		&playlist.PlaylistItem{},
		&playlist.WatchlistEntry{},
		&subscription.Plan{},
		&subscription.Subscription{},
		&subscription.Payment{},
	}
}

// New assembles the application. Pass a nil config to load it from the
// environment.
func New(customConfig *config.Config) *App {
	a := &App{}

	a.fx = fx.New(
		fx.NopLogger,
		config.NewProvider(customConfig),
		logging.Module,
		fx.Provide(func() *database.ModelsOption {
			return database.WithModels(Models()...)
		}),
		database.Module,
		fx.Provide(func() *session.Options { return &session.Options{} }),
		session.Module,
		mail.Module,
		auth.Module,
		user.Module,
		otp.Module,
		totp.Module,
		jwt.Module,
		media.Module,
		subscription.Module,
		content.Module,
		playlist.Module,
		handlers.Module,
		server.NewProvider(),
		fx.Populate(&a.config, &a.logger, &a.db, &a.server),
	)

	return a
}

func (a *App) Start() error {
	return a.fx.Start(context.Background())
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() {
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	if a.logger != nil {
		a.logger.Info("received shutdown signal, stopping gracefully")
	} else {
		log.Printf("Received signal %v, shutting down gracefully...", sig)
	}

	a.Stop()
}

func (a *App) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.fx.Stop(ctx); err != nil {
		if a.logger != nil {
			a.logger.Error("failed to stop application gracefully")
		} else {
			log.Printf("Failed to stop application gracefully: %v", err)
		}
	}
}

func (a *App) Server() *echo.Echo {
	if a.server == nil {
		return nil
	}
	return a.server.Echo()
}

func (a *App) DB() *gorm.DB {
	return a.db
}

func (a *App) Logger() *logging.Service {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.config
}
