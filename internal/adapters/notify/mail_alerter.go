package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"log/slog"

	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	mail "github.com/go-mail/mail/v2"
)

// MailConfig holds the SMTP settings used for operator alerts.
type MailConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string
	To            []string
	SkipTLSVerify bool
}

// sender is the part of *mail.Dialer the alerter uses.
type sender interface {
	DialAndSend(m ...*mail.Message) error
}

// MailAlerter emails operators when something needs a human, such as a lost audit entry.
type MailAlerter struct {
	cfg    MailConfig
	sender sender
}

// NewMailAlerter builds an alerter that sends over SMTP with mandatory STARTTLS.
func NewMailAlerter(cfg MailConfig) (*MailAlerter, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}
	if len(cfg.To) == 0 {
		return nil, fmt.Errorf("no operator address configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.SkipTLSVerify, //nolint:gosec // dev only
	}
	return &MailAlerter{cfg: cfg, sender: d}, nil
}

var _ portssvc.OperatorAlerter = (*MailAlerter)(nil)

func (a *MailAlerter) buildMessage(subject, body string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", a.cfg.From)
	m.SetHeader("To", a.cfg.To...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", "<pre>"+html.EscapeString(body)+"</pre>")
	return m
}

// Alert sends one email. The SMTP dialer does not take a context, so ctx is only
// checked before dialing.
func (a *MailAlerter) Alert(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.sender.DialAndSend(a.buildMessage(subject, body)); err != nil {
		return fmt.Errorf("send operator alert: %w", err)
	}
	return nil
}

// LogAlerter records alerts in the log when no SMTP server is configured.
type LogAlerter struct {
	logger *slog.Logger
}

func NewLogAlerter(logger *slog.Logger) *LogAlerter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogAlerter{logger: logger}
}

var _ portssvc.OperatorAlerter = (*LogAlerter)(nil)

func (l *LogAlerter) Alert(ctx context.Context, subject, body string) error {
	l.logger.ErrorContext(ctx, "OPERATOR ALERT", slog.String("subject", subject), slog.String("body", body))
	return nil
}
