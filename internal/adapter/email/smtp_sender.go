package email

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/villa-93/mini-store/internal/config"
)

// SMTPSender delivers plain text mail through gomail. Only the worker uses
// it, for order confirmation messages.
type SMTPSender struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	logger *slog.Logger
}

func NewSMTPSender(cfg *config.Config, logger *slog.Logger) (*SMTPSender, error) {
	if cfg.SMTP.Host == "" || cfg.SMTP.Port == 0 || cfg.SMTP.SenderEmail == "" {
		return nil, fmt.Errorf("SMTP host, port and sender email must be configured")
	}

	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	return &SMTPSender{cfg: cfg, dialer: dialer, logger: logger}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTP.SenderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// gomail has no context support; honour cancellation before dialing.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send email", "to", to, "error", err)
		return fmt.Errorf("sending email: %w", err)
	}

	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}
