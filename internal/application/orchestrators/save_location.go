package orchestrators

import (
	"context"
	"log/slog"

	locationDomain "coachsite/internal/domain/location"
)

// LocationStoreForAdmin defines the store interface for venue administration.
type LocationStoreForAdmin interface {
	GetByID(ctx context.Context, id int64) (locationDomain.Location, error)
	Save(ctx context.Context, l locationDomain.Location) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// SaveLocationInput carries the location to create or update. ID == 0 creates.
type SaveLocationInput struct {
	Location locationDomain.Location
}

// SaveLocationDeps holds dependencies for SaveLocation.
type SaveLocationDeps struct {
	LocationStore LocationStoreForAdmin
}

// ExecuteSaveLocation validates and persists a venue.
// PRE: Operator session established at the HTTP boundary
// POST: Location stored; returns the persisted id
func ExecuteSaveLocation(ctx context.Context, input SaveLocationInput, deps SaveLocationDeps) (int64, error) {
	l := input.Location
	if err := l.Validate(); err != nil {
		return 0, err
	}

	id, err := deps.LocationStore.Save(ctx, l)
	if err != nil {
		return 0, err
	}

	event := "location_updated"
	if l.ID == 0 {
		event = "location_created"
	}
	slog.Info("admin_event", "event", event, "location_id", id)
	return id, nil
}

// DeleteLocationInput carries input for the delete orchestrator.
type DeleteLocationInput struct {
	LocationID int64
}

// ExecuteDeleteLocation removes a venue. Seminars keep running; their
// location reference is detached by the schema, not guarded here.
// PRE: Operator session established; deletion confirmed client-side
// POST: Location is gone; error if it did not exist
func ExecuteDeleteLocation(ctx context.Context, input DeleteLocationInput, deps SaveLocationDeps) error {
	if err := deps.LocationStore.Delete(ctx, input.LocationID); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "location_deleted", "location_id", input.LocationID)
	return nil
}
