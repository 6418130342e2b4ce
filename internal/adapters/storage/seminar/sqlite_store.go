package seminar

import (
	"context"
	"database/sql"
	"fmt"

	"coachsite/internal/adapters/storage"
	domain "coachsite/internal/domain/seminar"
)

// seminarColumns are the columns selected by every read, in scan order.
// participants_count is a correlated subquery so reads never go stale.
const seminarColumns = `s.seminar_id, s.title, s.description, s.date, s.time,
	s.url, s.image_name, s.max_participants, s.price, s.location_id,
	(SELECT COUNT(*) FROM participant p WHERE p.seminar_id = s.seminar_id) AS participants_count`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new seminar store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanSeminar(scan func(...any) error) (domain.Seminar, error) {
	var entity domain.Seminar
	var locationID sql.NullInt64
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.Date,
		&entity.Time,
		&entity.URL,
		&entity.ImageName,
		&entity.MaxParticipants,
		&entity.Price,
		&locationID,
		&entity.ParticipantsCount,
	)
	if locationID.Valid {
		entity.LocationID = locationID.Int64
	}
	return entity, err
}

// GetByID retrieves a Seminar by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Seminar, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+seminarColumns+" FROM seminar s WHERE s.seminar_id = ?", id)
	entity, err := scanSeminar(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Seminar{}, fmt.Errorf("seminar not found: %w", err)
	}
	return entity, err
}

// Save persists a Seminar to the database.
// PRE: entity has been validated
// POST: Entity is inserted (ID == 0) or updated; returns the persisted ID
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Seminar) (int64, error) {
	var locationID any
	if entity.LocationID != 0 {
		locationID = entity.LocationID
	}

	if entity.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO seminar (title, description, date, time, url, image_name, max_participants, price, location_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entity.Title, entity.Description, entity.Date, entity.Time,
			entity.URL, entity.ImageName, entity.MaxParticipants, entity.Price, locationID,
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE seminar SET title = ?, description = ?, date = ?, time = ?, url = ?,
		 image_name = ?, max_participants = ?, price = ?, location_id = ?
		 WHERE seminar_id = ?`,
		entity.Title, entity.Description, entity.Date, entity.Time,
		entity.URL, entity.ImageName, entity.MaxParticipants, entity.Price, locationID,
		entity.ID,
	)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("seminar not found: %w", sql.ErrNoRows)
	}
	return entity.ID, nil
}

// Delete removes a Seminar from the database. Participants cascade.
// PRE: id > 0
// POST: Entity with given id is removed; error if it did not exist
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM seminar WHERE seminar_id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("seminar not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves a page of Seminars ordered by start, soonest first.
// PRE: filter has valid parameters
// POST: Returns at most Limit entities starting at Offset
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Seminar, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+seminarColumns+" FROM seminar s ORDER BY s.date, s.time LIMIT ? OFFSET ?",
		limit, filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSeminars(rows)
}

// ListUpcoming retrieves seminars on or after the given date, soonest first.
// PRE: fromDate is YYYY-MM-DD, limit > 0
// POST: Returns at most limit seminars
func (s *SQLiteStore) ListUpcoming(ctx context.Context, fromDate string, limit int) ([]domain.Seminar, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+seminarColumns+" FROM seminar s WHERE s.date >= ? ORDER BY s.date, s.time LIMIT ?",
		fromDate, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSeminars(rows)
}

// Count returns the total number of seminars.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seminar").Scan(&count)
	return count, err
}

func collectSeminars(rows *sql.Rows) ([]domain.Seminar, error) {
	var results []domain.Seminar
	for rows.Next() {
		entity, err := scanSeminar(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
