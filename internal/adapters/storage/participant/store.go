package participant

import (
	"context"

	domain "coachsite/internal/domain/participant"
)

// Store persists Participant state. The unregistration path is keyed by the
// capability token, never by the row id.
type Store interface {
	GetByToken(ctx context.Context, token string) (domain.Participant, error)
	Save(ctx context.Context, value domain.Participant) (int64, error)
	DeleteByToken(ctx context.Context, token string) error
	ListBySeminar(ctx context.Context, seminarID int64) ([]domain.Participant, error)
	CountBySeminar(ctx context.Context, seminarID int64) (int, error)
}
