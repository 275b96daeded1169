package mail

import (
	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/logging"
	"go.uber.org/fx"
)

func ProvideMailService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	return NewService(&cfg.Mail, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideMailService),
	fx.Provide(func(s *Service) Sender { return s }),
)
