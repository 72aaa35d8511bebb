package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestSender(cfg Config, sent *[]sentMail, sendErr error) *SMTPSender {
	s := NewSMTPSender(cfg)
	s.now = func() time.Time { return time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC) }
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, sentMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	return s
}

func TestSMTPSender_Send(t *testing.T) {
	var sent []sentMail
	s := newTestSender(Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "secret",
		From:     "noreply@example.com",
		To:       "editor@example.com",
	}, &sent, nil)

	err := s.Send(context.Background(), Message{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Hello",
		Body:    "line one\nline two",
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)

	got := sent[0]
	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.NotNil(t, got.auth)
	assert.Equal(t, "noreply@example.com", got.from)
	assert.Equal(t, []string{"editor@example.com"}, got.to)

	assert.Contains(t, got.msg, "To: <editor@example.com>\r\n")
	assert.Contains(t, got.msg, `Reply-To: "Alice" <alice@example.com>`)
	assert.Contains(t, got.msg, "Subject: Hello\r\n")
	assert.Contains(t, got.msg, "Date: Sun, 14 Jan 2024 12:00:00 +0000\r\n")
	assert.Contains(t, got.msg, "line one\r\nline two\r\n")

	headers, _, ok := strings.Cut(got.msg, "\r\n\r\n")
	require.True(t, ok)
	assert.NotContains(t, headers, "line one")
}

func TestSMTPSender_DefaultsRecipientToSender(t *testing.T) {
	var sent []sentMail
	s := newTestSender(Config{Host: "localhost", Port: 25, From: "news@example.com"}, &sent, nil)

	require.NoError(t, s.Send(context.Background(), Message{Name: "Bob", Email: "bob@example.com", Body: "hi"}))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"news@example.com"}, sent[0].to)
	assert.Nil(t, sent[0].auth)
	assert.Contains(t, sent[0].msg, "Subject: Contact form message\r\n")
}

func TestSMTPSender_Errors(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		s := NewSMTPSender(Config{})
		assert.False(t, s.Enabled())
		assert.Error(t, s.Send(context.Background(), Message{Email: "a@example.com"}))
	})

	t.Run("InvalidReplyTo", func(t *testing.T) {
		var sent []sentMail
		s := newTestSender(Config{Host: "localhost", Port: 25, From: "news@example.com"}, &sent, nil)
		err := s.Send(context.Background(), Message{Email: "not-an-email"})
		assert.ErrorIs(t, err, ErrInvalidMessage)
		assert.Empty(t, sent)
	})

	t.Run("RelayFailure", func(t *testing.T) {
		var sent []sentMail
		s := newTestSender(Config{Host: "localhost", Port: 25, From: "news@example.com"}, &sent, errors.New("535 auth failed"))
		err := s.Send(context.Background(), Message{Email: "a@example.com", Body: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "535 auth failed")
	})
}
