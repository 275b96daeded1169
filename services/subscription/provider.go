package subscription

import (
	"context"
	"time"

	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/content"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Provide(func(s *Service) content.SubscriptionChecker { return s }),
	fx.Invoke(startExpiryLoop),
)

// startExpiryLoop periodically marks active subscriptions whose end
// date has passed. Gating in HasActiveSubscription checks the end date
// too, so the sweep exists to keep the stored status honest.
func startExpiryLoop(lc fx.Lifecycle, cfg *config.Config, svc *Service) {
	if !cfg.Subscription.ExpireEnabled {
		return
	}

	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.Subscription.ExpireInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						n, err := svc.ExpireDue()
						if err != nil && svc.logger != nil {
							svc.logger.Error("subscription expiry sweep failed", zap.Error(err))
						} else if n > 0 && svc.logger != nil {
							svc.logger.Info("expired subscriptions", zap.Int64("count", n))
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
