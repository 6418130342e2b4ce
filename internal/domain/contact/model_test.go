package contact_test

import (
	"testing"

	"coachsite/internal/domain/contact"
)

// TestMessageValidation tests validation of contact form submissions.
func TestMessageValidation(t *testing.T) {
	valid := contact.Message{
		Name:    "Anna Berg",
		Email:   "anna@example.com",
		Subject: "Frage zu einem Seminar",
		Body:    "Gibt es noch freie Plätze?",
	}

	tests := []struct {
		name    string
		mutate  func(*contact.Message)
		wantErr error
	}{
		{"valid", func(*contact.Message) {}, nil},
		{"empty name", func(m *contact.Message) { m.Name = "" }, contact.ErrEmptyName},
		{"bad email", func(m *contact.Message) { m.Email = "anna" }, contact.ErrInvalidEmail},
		{"empty subject", func(m *contact.Message) { m.Subject = " " }, contact.ErrEmptySubject},
		{"empty body", func(m *contact.Message) { m.Body = "" }, contact.ErrEmptyMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			if err := m.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
