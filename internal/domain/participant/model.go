package participant

import (
	"errors"
	"net/mail"
	"strings"
)

// Field length rules for the registration form.
const (
	MinNameLength    = 2
	MaxNameLength    = 127
	MaxRemarksLength = 511
)

// Domain errors
var (
	ErrFirstnameTooShort = errors.New("firstname must be at least 2 characters")
	ErrLastnameTooShort  = errors.New("lastname must be at least 2 characters")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrMissingToken      = errors.New("participant token cannot be empty")
)

// Participant is a person registered for exactly one seminar. The token is a
// capability identifier: whoever holds it may unregister, no login required.
type Participant struct {
	ID        int64
	SeminarID int64
	Firstname string
	Lastname  string
	Email     string
	Remarks   string
	Token     string
}

// Validate checks if the Participant has valid data.
// PRE: Participant struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: The terms acknowledgement is a form-side gate and is not part
// of the model; it is never persisted.
func (p *Participant) Validate() error {
	if len(strings.TrimSpace(p.Firstname)) < MinNameLength {
		return ErrFirstnameTooShort
	}
	if len(p.Firstname) > MaxNameLength {
		return errors.New("firstname cannot exceed 127 characters")
	}
	if len(strings.TrimSpace(p.Lastname)) < MinNameLength {
		return ErrLastnameTooShort
	}
	if len(p.Lastname) > MaxNameLength {
		return errors.New("lastname cannot exceed 127 characters")
	}
	if !ValidEmail(p.Email) {
		return ErrInvalidEmail
	}
	if len(p.Remarks) > MaxRemarksLength {
		return errors.New("remarks cannot exceed 511 characters")
	}
	if strings.TrimSpace(p.Token) == "" {
		return ErrMissingToken
	}
	return nil
}

// FullName returns "Firstname Lastname" for rosters and emails.
// INVARIANT: Participant fields are not mutated
func (p *Participant) FullName() string {
	return p.Firstname + " " + p.Lastname
}

// ValidEmail reports whether the address is syntactically valid. A bare
// address is required; display names ("Jan <jan@x>") are rejected.
func ValidEmail(address string) bool {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	return parsed.Address == address
}
