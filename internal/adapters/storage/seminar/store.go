package seminar

import (
	"context"

	domain "coachsite/internal/domain/seminar"
)

// Store persists Seminar state. Reads fill ParticipantsCount from the
// participant table; writes never touch it.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Seminar, error)
	Save(ctx context.Context, value domain.Seminar) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.Seminar, error)
	ListUpcoming(ctx context.Context, fromDate string, limit int) ([]domain.Seminar, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries paging parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
