package providers

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"bgp-notifier/internal/config"
	"bgp-notifier/internal/models"
)

// EmailSender delivers composed emails over SMTP. One attempt per
// message; retrying is the caller's concern and this pipeline does not
// retry at all.
type EmailSender struct {
	cfg config.Config
}

func NewEmailSender(cfg config.Config) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send connects according to the configured TLS mode, authenticates
// when credentials are present and submits the message.
func (e *EmailSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", e.cfg.SMTP.Host, e.cfg.SMTP.Port)

	client, err := e.dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if e.cfg.SMTP.Username != "" {
		if err := client.Auth(e.auth()); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	recipients := splitAddresses(msg.To)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients in message")
	}

	if err := client.SendMail(msg.From, recipients, strings.NewReader(buildMessage(msg))); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return client.Quit()
}

func (e *EmailSender) dial(addr string) (*smtp.Client, error) {
	tlsConfig := &tls.Config{
		ServerName:         e.cfg.SMTP.Host,
		InsecureSkipVerify: !e.cfg.SMTP.RejectUnauthorized,
	}
	switch {
	case e.cfg.SMTP.Secure:
		return smtp.DialTLS(addr, tlsConfig)
	case e.cfg.SMTP.IgnoreTLS:
		return smtp.Dial(addr)
	default:
		return smtp.DialStartTLS(addr, tlsConfig)
	}
}

func (e *EmailSender) auth() sasl.Client {
	switch e.cfg.SMTP.AuthType {
	case "login":
		return sasl.NewLoginClient(e.cfg.SMTP.Username, e.cfg.SMTP.Password)
	default:
		return sasl.NewPlainClient("", e.cfg.SMTP.Username, e.cfg.SMTP.Password)
	}
}

// buildMessage assembles the RFC 5322 envelope for a plain-text email.
func buildMessage(msg models.EmailMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Text)
	b.WriteString("\r\n")
	return b.String()
}

func splitAddresses(joined string) []string {
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
