package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/logger"
)

// an outgoing plain-text email
type Mail struct {
	To      string
	Subject string
	Body    string
}

// delivers mail
type Sender interface {
	Send(ctx context.Context, m Mail) error
}

// returns the SMTP sender when SMTP_HOST is configured, otherwise a
// sender that only logs (development)
func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		return LogSender{}
	}

	return &SMTPSender{cfg: cfg}
}

// sends mail through an SMTP relay with PLAIN auth
type SMTPSender struct {
	cfg config.SMTPConfig
}

func (s *SMTPSender) Send(ctx context.Context, m Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, envelopeAddress(s.cfg.From), []string{m.To}, buildMessage(s.cfg.From, m))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail to %s: %w", m.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writes mail to the log instead of sending it
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Mail) error {
	logger.Info("mail (not sent)", "to", m.To, "subject", m.Subject, "body", m.Body)
	return nil
}

// sends in the background; failures are logged, never returned
func SendAsync(sender Sender, m Mail) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := sender.Send(ctx, m); err != nil {
			logger.ErrorErr(err, "failed to send email", "to", m.To, "subject", m.Subject)
		}
	}()
}

func buildMessage(from string, m Mail) []byte {
	var b strings.Builder

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(m.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))

	return []byte(b.String())
}

// "Name <addr>" -> "addr"
func envelopeAddress(from string) string {
	if start := strings.LastIndex(from, "<"); start >= 0 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}

	return from
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
