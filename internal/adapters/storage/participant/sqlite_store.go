package participant

import (
	"context"
	"database/sql"
	"fmt"

	"coachsite/internal/adapters/storage"
	domain "coachsite/internal/domain/participant"
)

const participantColumns = "participant_id, firstname, lastname, email, remarks, token, seminar_id"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new participant store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanParticipant(scan func(...any) error) (domain.Participant, error) {
	var entity domain.Participant
	err := scan(
		&entity.ID,
		&entity.Firstname,
		&entity.Lastname,
		&entity.Email,
		&entity.Remarks,
		&entity.Token,
		&entity.SeminarID,
	)
	return entity, err
}

// GetByToken retrieves a Participant by their unregistration token.
// PRE: token is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByToken(ctx context.Context, token string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+participantColumns+" FROM participant WHERE token = ?", token)
	entity, err := scanParticipant(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Participant{}, fmt.Errorf("participant not found: %w", err)
	}
	return entity, err
}

// Save inserts a Participant. Participants are never updated in place.
// PRE: entity has been validated, Token is unique
// POST: Entity is persisted; returns the generated row id
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Participant) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO participant (firstname, lastname, email, remarks, token, seminar_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entity.Firstname, entity.Lastname, entity.Email, entity.Remarks,
		entity.Token, entity.SeminarID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteByToken removes a Participant by token.
// PRE: token is non-empty
// POST: Row is removed; error if the token matched nothing (so a second
// unregistration with the same token fails)
func (s *SQLiteStore) DeleteByToken(ctx context.Context, token string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participant WHERE token = ?", token)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("participant not found: %w", sql.ErrNoRows)
	}
	return nil
}

// ListBySeminar retrieves the roster of one seminar, registration order.
// PRE: seminarID > 0
// POST: Returns all participants of the seminar
func (s *SQLiteStore) ListBySeminar(ctx context.Context, seminarID int64) ([]domain.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+participantColumns+" FROM participant WHERE seminar_id = ? ORDER BY participant_id",
		seminarID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Participant
	for rows.Next() {
		entity, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountBySeminar returns the number of participants of one seminar.
// PRE: seminarID > 0
// POST: Returns count >= 0
func (s *SQLiteStore) CountBySeminar(ctx context.Context, seminarID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM participant WHERE seminar_id = ?", seminarID,
	).Scan(&count)
	return count, err
}
