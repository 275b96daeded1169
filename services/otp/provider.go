package otp

import (
	"context"
	"time"

	"github.com/streamify/streamify/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(startCleanupLoop),
)

func startCleanupLoop(lc fx.Lifecycle, cfg *config.Config, svc *Service) {
	if !cfg.OTP.CleanupEnabled {
		return
	}

	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.OTP.CleanupInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if err := svc.CleanupExpired(); err != nil && svc.logger != nil {
							svc.logger.Error("OTP cleanup failed", zap.Error(err))
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
}
