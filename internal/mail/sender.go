// Package mail delivers contact-form messages.
package mail

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"strings"
)

var (
	ErrDisabled       = errors.New("mail: sending disabled")
	ErrInvalidMessage = errors.New("mail: invalid message")
)

const maxBodyLength = 5000

// Message is one contact-form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Validate trims the fields and rejects anything that could not be sent
// safely as a plain-text email.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)

	switch {
	case m.Name == "" || m.Email == "" || m.Body == "":
		return fmt.Errorf("%w: name, email and message are required", ErrInvalidMessage)
	case strings.ContainsAny(m.Name+m.Email, "\r\n"):
		return fmt.Errorf("%w: header fields must be a single line", ErrInvalidMessage)
	case len(m.Body) > maxBodyLength:
		return fmt.Errorf("%w: message longer than %d bytes", ErrInvalidMessage, maxBodyLength)
	}
	addr, err := netmail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return fmt.Errorf("%w: bad email address %q", ErrInvalidMessage, m.Email)
	}
	return nil
}

// Sender delivers contact messages.
type Sender interface {
	SendContact(ctx context.Context, m Message) error
}

type disabledSender struct {
	reason string
}

// NewDisabledSender returns a Sender that always fails with ErrDisabled.
func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendContact(context.Context, Message) error {
	if s.reason == "" {
		return ErrDisabled
	}
	return fmt.Errorf("%w: %s", ErrDisabled, s.reason)
}
