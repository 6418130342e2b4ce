package projections

import (
	"context"

	seminarStore "coachsite/internal/adapters/storage/seminar"
	locationDomain "coachsite/internal/domain/location"
	participantDomain "coachsite/internal/domain/participant"
	seminarDomain "coachsite/internal/domain/seminar"

	locationStore "coachsite/internal/adapters/storage/location"
)

// SeminarStore interface for seminar queries.
type SeminarStore interface {
	GetByID(ctx context.Context, id int64) (seminarDomain.Seminar, error)
	List(ctx context.Context, filter seminarStore.ListFilter) ([]seminarDomain.Seminar, error)
	ListUpcoming(ctx context.Context, fromDate string, limit int) ([]seminarDomain.Seminar, error)
	Count(ctx context.Context) (int, error)
}

// LocationStore interface for venue queries.
type LocationStore interface {
	GetByID(ctx context.Context, id int64) (locationDomain.Location, error)
	List(ctx context.Context, filter locationStore.ListFilter) ([]locationDomain.Location, error)
	Count(ctx context.Context) (int, error)
}

// ParticipantStore interface for roster queries.
type ParticipantStore interface {
	ListBySeminar(ctx context.Context, seminarID int64) ([]participantDomain.Participant, error)
	CountBySeminar(ctx context.Context, seminarID int64) (int, error)
}
