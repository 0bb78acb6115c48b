// ABOUTME: Tests for contact validation, sender selection and message delivery
// ABOUTME: SMTP delivery is exercised through a stubbed send function

package contact

import (
	"context"
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atotto/clipboard"
)

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{"valid", Message{Name: "Kim", Email: "kim@example.com", Body: "hi"}, nil},
		{"missing name", Message{Email: "kim@example.com", Body: "hi"}, ErrMissingField},
		{"blank body", Message{Name: "Kim", Email: "kim@example.com", Body: "   "}, ErrMissingField},
		{"bad email", Message{Name: "Kim", Email: "not-an-address", Body: "hi"}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{"SMTP_USER": "me@example.com", "SMTP_PASS": "secret"}
	cfg := ConfigFromEnv(func(k string) string { return env[k] })

	if cfg.Addr() != "smtp.gmail.com:587" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}

	if cfg.To != "me@example.com" {
		t.Errorf("To should default to the user, got %q", cfg.To)
	}

	if _, ok := NewSender(cfg).(*SMTPSender); !ok {
		t.Error("configured credentials should produce an SMTP sender")
	}

	if _, ok := NewSender(ConfigFromEnv(func(string) string { return "" })).(*SimulatedSender); !ok {
		t.Error("missing credentials should produce a simulated sender")
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FOLIO_TEST_SMTP_HOST=mail.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FOLIO_TEST_SMTP_HOST", "")
	os.Unsetenv("FOLIO_TEST_SMTP_HOST")

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := os.Getenv("FOLIO_TEST_SMTP_HOST"); got != "mail.example.com" {
		t.Errorf("expected variable from .env, got %q", got)
	}
}

func TestSMTPSenderComposes(t *testing.T) {
	var gotAddr string
	var gotBody []byte

	s := NewSMTPSender(SMTPConfig{Host: "mail.example.com", Port: "25", User: "me@example.com", Pass: "x", To: "inbox@example.com"})
	s.sendMail = func(addr string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotAddr = addr
		gotBody = msg
		return nil
	}

	msg := Message{Name: "Kim\r\nBcc: evil@example.com", Email: "kim@example.com", Body: "hello"}
	if err := s.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotAddr != "mail.example.com:25" {
		t.Errorf("addr = %q", gotAddr)
	}

	body := string(gotBody)
	if !strings.Contains(body, "Reply-To: kim@example.com\r\n") {
		t.Errorf("missing Reply-To header:\n%s", body)
	}

	if strings.Contains(body, "\r\nBcc:") {
		t.Errorf("header injection not neutralized:\n%s", body)
	}
}

func TestSMTPSenderError(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "h", Port: "25", User: "u", Pass: "p", To: "t@example.com"})
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := s.Send(context.Background(), Message{Name: "a", Email: "a@example.com", Body: "b"})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped send error, got %v", err)
	}
}

func TestSimulatedSender(t *testing.T) {
	s := &SimulatedSender{Delay: time.Millisecond}

	if err := s.Send(context.Background(), Message{Name: "a", Email: "a@example.com", Body: "b"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if n := len(s.Sent()); n != 1 {
		t.Errorf("expected 1 recorded message, got %d", n)
	}

	if err := s.Send(context.Background(), Message{}); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSimulatedSenderConcurrentSends(t *testing.T) {
	s := &SimulatedSender{}
	msg := Message{Name: "a", Email: "a@example.com", Body: "b"}

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := s.Send(context.Background(), msg); err != nil {
				t.Errorf("Send() error = %v", err)
			}
		}()

		// Reads while sends are in flight
		_ = s.Sent()
	}

	wg.Wait()

	if n := len(s.Sent()); n != 8 {
		t.Errorf("expected 8 recorded messages, got %d", n)
	}
}

func TestSimulatedSenderCancelled(t *testing.T) {
	s := &SimulatedSender{Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, Message{Name: "a", Email: "a@example.com", Body: "b"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCopyAddress(t *testing.T) {
	if err := CopyAddress(""); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}

	if clipboard.Unsupported {
		if err := CopyAddress("me@example.com"); !errors.Is(err, ErrNoClipboard) {
			t.Errorf("expected ErrNoClipboard, got %v", err)
		}

		return
	}

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { writeClipboard = orig }()

	if err := CopyAddress("me@example.com"); err != nil {
		t.Fatalf("CopyAddress() error = %v", err)
	}

	if copied != "me@example.com" {
		t.Errorf("copied %q", copied)
	}
}
