// Package mail delivers contact form messages over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidMessage = errors.New("invalid message")

type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type Sender interface {
	Enabled() bool
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPSender sends plain text mail through a relay using PLAIN auth.
type SMTPSender struct {
	cfg      Config
	now      func() time.Time
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg Config) *SMTPSender {
	if cfg.To == "" {
		cfg.To = cfg.From
	}
	return &SMTPSender{cfg: cfg, now: time.Now, sendMail: smtp.SendMail}
}

// Enabled reports whether a relay host is configured.
func (s *SMTPSender) Enabled() bool {
	return s.cfg.Host != ""
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.Enabled() {
		return errors.New("smtp is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.build(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.cfg.From, []string{s.cfg.To}, body); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// build renders an RFC 5322 message with the visitor address as Reply-To.
func (s *SMTPSender) build(msg Message) ([]byte, error) {
	replyTo, err := mail.ParseAddress(msg.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	replyTo.Name = msg.Name

	subject := msg.Subject
	if subject == "" {
		subject = "Contact form message"
	}

	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", (&mail.Address{Name: "News Portal", Address: s.cfg.From}).String())
	header("To", (&mail.Address{Address: s.cfg.To}).String())
	header("Reply-To", replyTo.String())
	header("Subject", mime.QEncoding.Encode("utf-8", subject))
	header("Date", s.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "From: %s <%s>\r\n\r\n", msg.Name, replyTo.Address)
	b.WriteString(normalizeNewlines(msg.Body))
	b.WriteString("\r\n")

	return b.Bytes(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
