package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender relays contact messages through an authenticated SMTP server.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
	logger   *zap.Logger
	send     sendFunc
}

func NewSMTPSender(host string, port int, username, password, from, to string, logger *zap.Logger) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("contact recipient is required")
	}
	if from == "" {
		from = username
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
		logger:   logger,
		send:     smtp.SendMail,
	}, nil
}

func (s *SMTPSender) SendContact(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := s.send(addr, auth, s.from, []string{s.to}, buildMessage(s.from, s.to, m)); err != nil {
		s.logger.Error("sending contact email failed", zap.String("smtp", addr), zap.Error(err))
		return fmt.Errorf("send contact email: %w", err)
	}

	s.logger.Info("contact email sent", zap.String("reply_to", m.Email))
	return nil
}

func buildMessage(from, to string, m Message) []byte {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Reply-To: " + m.Email,
		"Subject: Portfolio Contact: " + m.Name,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	body := fmt.Sprintf("New contact form submission from your portfolio:\r\n\r\nName: %s\r\nEmail: %s\r\nMessage:\r\n%s\r\n\r\n---\r\nSent from your portfolio contact form\r\n",
		m.Name, m.Email, m.Body)
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}
