package mail

import (
	"fmt"
	"time"

	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/logging"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Sender is the surface other services depend on, so tests can swap in
// a capturing fake.
type Sender interface {
	SendPlain(to []string, subject, body string) error
}

type Service struct {
	config *config.MailConfig
	client *mail.Client
	logger *logging.Service
}

func NewService(cfg *config.MailConfig, logger *logging.Service) (*Service, error) {
	if logger != nil {
		logger.Info("initializing mail service",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("encryption", cfg.Encryption),
			zap.String("from_address", cfg.FromAddress))
	}

	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("STREAMIFY_MAIL_FROM_ADDRESS is required")
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
	}

	switch cfg.Encryption {
	case "tls", "starttls":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username))
	}
	if cfg.Password != "" {
		clientOpts = append(clientOpts, mail.WithPassword(cfg.Password))
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		if logger != nil {
			logger.Error("failed to create mail client",
				zap.Error(err),
				zap.String("host", cfg.Host))
		}
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Service{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

func (s *Service) NewMessage() *mail.Msg {
	message := mail.NewMsg()

	fromAddr := s.config.FromAddress
	if s.config.FromName != "" {
		fromAddr = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	if err := message.From(fromAddr); err != nil {
		panic(fmt.Sprintf("failed to set FROM address: %s", err))
	}

	return message
}

func (s *Service) Send(message *mail.Msg) error {
	startTime := time.Now()
	err := s.client.DialAndSend(message)
	duration := time.Since(startTime)

	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to send email",
				zap.Error(err),
				zap.Duration("attempt_duration", duration))
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info("email sent successfully", zap.Duration("send_duration", duration))
	}
	return nil
}

func (s *Service) SendPlain(to []string, subject, body string) error {
	if s.logger != nil {
		s.logger.Info("sending plain text email",
			zap.Strings("recipients", to),
			zap.String("subject", subject))
	}

	message := s.NewMessage()

	if err := message.To(to...); err != nil {
		return fmt.Errorf("failed to set TO addresses: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body)

	return s.Send(message)
}
