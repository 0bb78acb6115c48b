// ABOUTME: Contact message model and senders (SMTP or simulated)
// ABOUTME: SMTP credentials come from the environment, optionally via a .env file

// Package contact delivers messages from the contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	// ErrMissingField is returned when a required form field is empty
	ErrMissingField = errors.New("missing field")
	// ErrInvalidEmail is returned when the sender address does not parse
	ErrInvalidEmail = errors.New("invalid email address")
)

// SimulatedDelay mimics network latency when no mail server is configured
const SimulatedDelay = time.Second

// Message is a submitted contact form
type Message struct {
	Name  string
	Email string
	Body  string
}

// Validate checks that every field is present and the address parses
func (m Message) Validate() error {
	var errs []error

	for field, value := range map[string]string{"name": m.Name, "email": m.Email, "message": m.Body} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, field))
		}
	}

	if strings.TrimSpace(m.Email) != "" {
		if _, err := mail.ParseAddress(m.Email); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidEmail, err))
		}
	}

	return errors.Join(errs...)
}

// Sender delivers a contact message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds mail server settings
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Configured reports whether credentials are present
func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// Addr returns host:port
func (c SMTPConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadEnv reads .env files into the process environment.
// Missing files are ignored; existing variables are not overridden.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return nil
}

// ConfigFromEnv reads SMTP settings, applying the usual submission defaults
func ConfigFromEnv(getenv func(string) string) SMTPConfig {
	cfg := SMTPConfig{
		Host: getenv("SMTP_HOST"),
		Port: getenv("SMTP_PORT"),
		User: getenv("SMTP_USER"),
		Pass: getenv("SMTP_PASS"),
		To:   getenv("TO_EMAIL"),
	}

	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}

	if cfg.Port == "" {
		cfg.Port = "587"
	}

	if cfg.To == "" {
		cfg.To = cfg.User
	}

	return cfg
}

// NewSender returns an SMTP sender when credentials are configured,
// otherwise a simulated one
func NewSender(cfg SMTPConfig) Sender {
	if cfg.Configured() {
		return NewSMTPSender(cfg)
	}

	return &SimulatedSender{Delay: SimulatedDelay}
}

// sendMailFunc matches smtp.SendMail
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends mail with net/smtp
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPSender creates a sender for cfg
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// Send validates and delivers msg, giving up when ctx is done
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	body := compose(s.cfg, msg)

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(s.cfg.Addr(), auth, s.cfg.User, []string{s.cfg.To}, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// compose builds the RFC 5322 message
func compose(cfg SMTPConfig, msg Message) []byte {
	name := headerSafe(msg.Name)

	var b strings.Builder
	b.WriteString("To: " + cfg.To + "\r\n")
	b.WriteString("From: " + cfg.User + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(msg.Email) + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + name + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Name: %s\r\nEmail: %s\r\nMessage:\r\n%s\r\n", name, msg.Email, msg.Body)

	return []byte(b.String())
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

// SimulatedSender pretends to send after Delay and always succeeds.
// It is safe for concurrent use.
type SimulatedSender struct {
	Delay time.Duration

	mu   sync.Mutex
	sent []Message
}

// Sent returns a copy of the messages delivered so far
func (s *SimulatedSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Message(nil), s.sent...)
}

// Send validates msg, waits Delay and records it
func (s *SimulatedSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		s.mu.Lock()
		s.sent = append(s.sent, msg)
		s.mu.Unlock()

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
