package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	emailAdapter "coachsite/internal/adapters/email"
	locationDomain "coachsite/internal/domain/location"
	participantDomain "coachsite/internal/domain/participant"
	seminarDomain "coachsite/internal/domain/seminar"
)

// SeminarStoreForRegistration defines the store interface needed to evaluate
// the registration gate.
type SeminarStoreForRegistration interface {
	GetByID(ctx context.Context, id int64) (seminarDomain.Seminar, error)
}

// ParticipantStoreForRegistration defines the participant persistence needed
// by registration.
type ParticipantStoreForRegistration interface {
	Save(ctx context.Context, p participantDomain.Participant) (int64, error)
	CountBySeminar(ctx context.Context, seminarID int64) (int, error)
	ListBySeminar(ctx context.Context, seminarID int64) ([]participantDomain.Participant, error)
}

// LocationLookup resolves the venue for the confirmation email.
type LocationLookup interface {
	GetByID(ctx context.Context, id int64) (locationDomain.Location, error)
}

// RegisterParticipantInput carries input for the registration orchestrator.
type RegisterParticipantInput struct {
	SeminarID int64
	Firstname string
	Lastname  string
	Email     string
	Remarks   string
}

// RegisterParticipantDeps holds dependencies for RegisterParticipant.
type RegisterParticipantDeps struct {
	SeminarStore     SeminarStoreForRegistration
	ParticipantStore ParticipantStoreForRegistration
	LocationStore    LocationLookup
	EmailSender      emailAdapter.Sender
	Now              func() time.Time
	BaseURL          string // e.g. "https://example.de", for the unregister link
	AdminEmail       string // recipient of the registration notice
	ReplyTo          string // reply address on the confirmation, usually the operator inbox
}

var (
	ErrSeminarFull          = errors.New("seminar has no places left")
	ErrRegistrationClosed   = errors.New("registration window has closed")
	ErrExternalRegistration = errors.New("registration for this seminar is handled externally")
)

// ExecuteRegisterParticipant registers a person for a seminar.
// The gate is re-evaluated here with a fresh count and clock, so a form
// rendered while places were left still fails once capacity is gone.
// PRE: SeminarID refers to an existing seminar
// POST: Participant saved with a fresh capability token; confirmation and
// admin notice emails sent (email failure does not undo the registration)
// INVARIANT: A seminar with an external URL never accepts in-site registrations
func ExecuteRegisterParticipant(ctx context.Context, input RegisterParticipantInput, deps RegisterParticipantDeps) (participantDomain.Participant, error) {
	sem, err := deps.SeminarStore.GetByID(ctx, input.SeminarID)
	if err != nil {
		return participantDomain.Participant{}, err
	}

	if sem.HasExternalRegistration() {
		return participantDomain.Participant{}, ErrExternalRegistration
	}

	count, err := deps.ParticipantStore.CountBySeminar(ctx, input.SeminarID)
	if err != nil {
		return participantDomain.Participant{}, err
	}
	if sem.CapacityReached(count) {
		return participantDomain.Participant{}, ErrSeminarFull
	}
	if sem.TooLate(deps.Now()) {
		return participantDomain.Participant{}, ErrRegistrationClosed
	}

	p := participantDomain.Participant{
		SeminarID: input.SeminarID,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
		Remarks:   input.Remarks,
		Token:     uuid.New().String(),
	}
	if err := p.Validate(); err != nil {
		return participantDomain.Participant{}, err
	}

	id, err := deps.ParticipantStore.Save(ctx, p)
	if err != nil {
		return participantDomain.Participant{}, err
	}
	p.ID = id

	slog.Info("registration_event", "event", "participant_registered",
		"seminar_id", sem.ID, "participant_id", p.ID)

	sendRegistrationEmails(ctx, p, sem, deps)
	return p, nil
}

// sendRegistrationEmails delivers the confirmation and the admin notice.
// Failures are logged, never returned: the registration is already stored.
func sendRegistrationEmails(ctx context.Context, p participantDomain.Participant, sem seminarDomain.Seminar, deps RegisterParticipantDeps) {
	if deps.EmailSender == nil {
		return
	}

	var loc *locationDomain.Location
	if sem.LocationID != 0 && deps.LocationStore != nil {
		if l, err := deps.LocationStore.GetByID(ctx, sem.LocationID); err == nil {
			loc = &l
		}
	}

	unregisterURL := fmt.Sprintf("%s/seminars/%d/unregister?token=%s", deps.BaseURL, sem.ID, p.Token)
	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{p.Email},
		Subject: ConfirmationSubject,
		HTML:    buildConfirmationBody(sem, loc, unregisterURL),
		ReplyTo: deps.ReplyTo,
	})
	if err != nil {
		slog.Warn("registration_event", "event", "confirmation_email_failed", "participant_id", p.ID, "error", err)
	}

	if deps.AdminEmail == "" {
		return
	}
	roster, err := deps.ParticipantStore.ListBySeminar(ctx, sem.ID)
	if err != nil {
		slog.Warn("registration_event", "event", "roster_lookup_failed", "seminar_id", sem.ID, "error", err)
		roster = []participantDomain.Participant{p}
	}
	_, err = deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{deps.AdminEmail},
		Subject: RegistrationNoticeSubject,
		HTML:    buildRegistrationNoticeBody(p, sem, roster),
	})
	if err != nil {
		slog.Warn("registration_event", "event", "admin_notice_failed", "seminar_id", sem.ID, "error", err)
	}
}
