package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"bizdir.app/directory/core/config"
)

var ErrNoRecipients = errors.New("email has no recipients")

const defaultSMTPTimeout = 10 * time.Second

type smtpNotifier struct {
	cfg     config.SMTPConfig
	timeout time.Duration
	send    func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPNotifier(cfg config.SMTPConfig) Notifier {
	n := &smtpNotifier{cfg: cfg, timeout: cfg.Timeout}
	if n.timeout <= 0 {
		n.timeout = defaultSMTPTimeout
	}
	n.send = n.dialAndSend
	return n
}

// Send bounds the whole SMTP exchange by the configured timeout, so a stalled
// server fails the task instead of holding a worker.
func (n *smtpNotifier) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := n.message(email)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.send(ctx, msg); err != nil {
		return fmt.Errorf("sending email via %s: %w", n.cfg.Host, err)
	}
	return nil
}

func (n *smtpNotifier) message(email Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return nil, fmt.Errorf("setting sender %q: %w", n.cfg.From, err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("setting recipients: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, email.Body)
	return msg, nil
}

func (n *smtpNotifier) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := n.client()
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// client upgrades to STARTTLS when the server offers it and authenticates
// only when a username is configured.
func (n *smtpNotifier) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTimeout(n.timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring smtp client: %w", err)
	}
	return client, nil
}
