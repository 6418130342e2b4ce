package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	emailAdapter "coachsite/internal/adapters/email"
	contactDomain "coachsite/internal/domain/contact"
)

// SendContactInput carries a contact form submission.
type SendContactInput struct {
	Message contactDomain.Message
}

// SendContactDeps holds dependencies for SendContact.
type SendContactDeps struct {
	EmailSender emailAdapter.Sender
	AdminEmail  string
	From        string // optional; the sender falls back to its configured address
	Now         func() time.Time
}

var ErrContactUnavailable = errors.New("contact form delivery is not configured")

// ExecuteSendContact forwards a contact form submission to the operator.
// Nothing is persisted; the email is the whole effect.
// PRE: none (public endpoint)
// POST: One email delivered to the operator, reply-to set to the visitor
func ExecuteSendContact(ctx context.Context, input SendContactInput, deps SendContactDeps) error {
	m := input.Message
	if err := m.Validate(); err != nil {
		return err
	}

	if deps.EmailSender == nil || deps.AdminEmail == "" {
		return ErrContactUnavailable
	}

	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{deps.AdminEmail},
		From:    deps.From,
		Subject: ContactNoticeSubject,
		HTML:    buildContactNoticeBody(m.Name, m.Email, m.Subject, m.Body, deps.Now()),
		ReplyTo: m.Email,
	})
	if err != nil {
		return err
	}

	slog.Info("contact_event", "event", "contact_forwarded", "subject", m.Subject)
	return nil
}
