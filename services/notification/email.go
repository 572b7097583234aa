package notification

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var ErrChannelDisabled = errors.New("notification channel not configured")

// SMTPMailer sends plain-text mail through an SMTP relay.
type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
	useTLS    bool
}

func NewSMTPMailer(host string, port int, username, password, fromEmail, fromName string, useTLS bool) *SMTPMailer {
	return &SMTPMailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
		useTLS:    useTLS,
	}
}

func (m *SMTPMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.host == "" || m.fromEmail == "" {
		return ErrChannelDisabled
	}
	msg := buildMessage(formatFrom(m.fromName, m.fromEmail), to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if m.useTLS {
		return m.sendTLS(addr, to, msg)
	}

	var auth smtp.Auth
	if m.username != "" && m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (m *SMTPMailer) sendTLS(addr, to, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("smtp: tls dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp: client: %w", err)
	}
	defer client.Close()

	if m.username != "" && m.password != "" {
		if err := client.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}
	if err := client.Mail(m.fromEmail); err != nil {
		return fmt.Errorf("smtp: mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp: rcpt: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: close: %w", err)
	}
	return client.Quit()
}

func formatFrom(name, email string) string {
	if name != "" {
		return fmt.Sprintf("%s <%s>", name, email)
	}
	return email
}

func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	for _, h := range [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	} {
		fmt.Fprintf(&b, "%s: %s\r\n", h[0], h[1])
	}
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	client    *sendgrid.Client
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    sendgrid.NewSendClient(apiKey),
	}
}

func (m *SendGridMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.apiKey == "" || m.fromEmail == "" {
		return ErrChannelDisabled
	}
	message := mail.NewSingleEmail(mail.NewEmail(m.fromName, m.fromEmail), subject, mail.NewEmail("", to), body, "")
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer is the development stand-in for a disposable test inbox: it
// writes the message to the log instead of delivering it.
type LogMailer struct {
	enabled bool
	logger  *zap.Logger
}

func NewLogMailer(enabled bool, logger *zap.Logger) *LogMailer {
	return &LogMailer{enabled: enabled, logger: logger}
}

func (m *LogMailer) SendEmail(_ context.Context, to, subject, body string) error {
	if !m.enabled {
		return ErrChannelDisabled
	}
	m.logger.Info("Email captured by development mailer",
		zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}

// FallbackMailer tries each sender in order and stops at the first success.
// Unconfigured senders are skipped.
type FallbackMailer struct {
	senders []EmailSender
	logger  *zap.Logger
}

func NewFallbackMailer(logger *zap.Logger, senders ...EmailSender) *FallbackMailer {
	return &FallbackMailer{senders: senders, logger: logger}
}

func (f *FallbackMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	var errs []error
	for i, s := range f.senders {
		err := s.SendEmail(ctx, to, subject, body)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrChannelDisabled) {
			continue
		}
		f.logger.Warn("Email sender failed, trying next", zap.Int("sender", i), zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrChannelDisabled
	}
	return errors.Join(errs...)
}
