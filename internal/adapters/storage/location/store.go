package location

import (
	"context"

	domain "coachsite/internal/domain/location"
)

// Store persists Location state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Location, error)
	Save(ctx context.Context, value domain.Location) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.Location, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries paging parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
