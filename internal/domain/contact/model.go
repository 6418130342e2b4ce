package contact

import (
	"errors"
	"strings"

	"coachsite/internal/domain/participant"
)

// Max length constants for visitor-editable fields.
const (
	MaxSubjectLength = 255
	MaxMessageLength = 5000
)

// Domain errors
var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidEmail = errors.New("email address is not valid")
	ErrEmptySubject = errors.New("subject cannot be empty")
	ErrEmptyMessage = errors.New("message cannot be empty")
)

// Message is a contact form submission forwarded to the operator's inbox.
// Nothing is persisted; the form exists only to produce an email.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Validate checks if the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if !participant.ValidEmail(m.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(m.Subject) == "" {
		return ErrEmptySubject
	}
	if len(m.Subject) > MaxSubjectLength {
		return errors.New("subject cannot exceed 255 characters")
	}
	if strings.TrimSpace(m.Body) == "" {
		return ErrEmptyMessage
	}
	if len(m.Body) > MaxMessageLength {
		return errors.New("message cannot exceed 5000 characters")
	}
	return nil
}
