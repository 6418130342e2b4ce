package orchestrators

import (
	"context"
	"log/slog"

	seminarDomain "coachsite/internal/domain/seminar"
)

// SeminarStoreForAdmin defines the store interface for seminar administration.
type SeminarStoreForAdmin interface {
	GetByID(ctx context.Context, id int64) (seminarDomain.Seminar, error)
	Save(ctx context.Context, s seminarDomain.Seminar) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// SaveSeminarInput carries the seminar to create or update. ID == 0 creates.
type SaveSeminarInput struct {
	Seminar seminarDomain.Seminar
}

// SaveSeminarDeps holds dependencies for SaveSeminar.
type SaveSeminarDeps struct {
	SeminarStore SeminarStoreForAdmin
}

// ExecuteSaveSeminar validates and persists a seminar.
// PRE: Operator session established at the HTTP boundary
// POST: Seminar stored; returns the persisted id
func ExecuteSaveSeminar(ctx context.Context, input SaveSeminarInput, deps SaveSeminarDeps) (int64, error) {
	s := input.Seminar
	if err := s.Validate(); err != nil {
		return 0, err
	}

	id, err := deps.SeminarStore.Save(ctx, s)
	if err != nil {
		return 0, err
	}

	event := "seminar_updated"
	if s.ID == 0 {
		event = "seminar_created"
	}
	slog.Info("admin_event", "event", event, "seminar_id", id)
	return id, nil
}

// DeleteSeminarInput carries input for the delete orchestrator.
type DeleteSeminarInput struct {
	SeminarID int64
}

// ExecuteDeleteSeminar removes a seminar and, by cascade, its roster.
// PRE: Operator session established; deletion confirmed client-side
// POST: Seminar and its participants are gone; error if it did not exist
func ExecuteDeleteSeminar(ctx context.Context, input DeleteSeminarInput, deps SaveSeminarDeps) error {
	if err := deps.SeminarStore.Delete(ctx, input.SeminarID); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "seminar_deleted", "seminar_id", input.SeminarID)
	return nil
}
