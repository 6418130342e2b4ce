package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	participantDomain "coachsite/internal/domain/participant"
)

// ParticipantStoreForUnregistration defines the participant persistence
// needed by unregistration.
type ParticipantStoreForUnregistration interface {
	GetByToken(ctx context.Context, token string) (participantDomain.Participant, error)
	DeleteByToken(ctx context.Context, token string) error
}

// UnregisterParticipantInput carries input for the unregistration orchestrator.
type UnregisterParticipantInput struct {
	Token string
	// Force skips the cutoff check. Set for admin-initiated removal from the
	// roster view; never for the self-service link.
	Force bool
}

// UnregisterParticipantDeps holds dependencies for UnregisterParticipant.
type UnregisterParticipantDeps struct {
	SeminarStore     SeminarStoreForRegistration
	ParticipantStore ParticipantStoreForUnregistration
	Now              func() time.Time
}

var (
	ErrUnknownToken        = errors.New("no registration matches this token")
	ErrTooLateToUnregister = errors.New("unregistration closes 24 hours before the seminar")
)

// ExecuteUnregisterParticipant removes a registration identified by its
// capability token.
// PRE: Token was issued at registration time
// POST: The row is gone; a second call with the same token fails with
// ErrUnknownToken
// INVARIANT: Self-service withdrawal is refused within 24 hours of the start
func ExecuteUnregisterParticipant(ctx context.Context, input UnregisterParticipantInput, deps UnregisterParticipantDeps) error {
	if input.Token == "" {
		return ErrUnknownToken
	}

	p, err := deps.ParticipantStore.GetByToken(ctx, input.Token)
	if err != nil {
		return ErrUnknownToken
	}

	if !input.Force {
		sem, err := deps.SeminarStore.GetByID(ctx, p.SeminarID)
		if err != nil {
			return err
		}
		if sem.TooLateToUnregister(deps.Now()) {
			return ErrTooLateToUnregister
		}
	}

	if err := deps.ParticipantStore.DeleteByToken(ctx, input.Token); err != nil {
		return ErrUnknownToken
	}

	slog.Info("registration_event", "event", "participant_unregistered",
		"seminar_id", p.SeminarID, "participant_id", p.ID, "forced", input.Force)
	return nil
}
