package location

import (
	"context"
	"database/sql"
	"fmt"

	"coachsite/internal/adapters/storage"
	domain "coachsite/internal/domain/location"
)

const locationColumns = "location_id, name, street, house_number, zip_code, city, remarks, maps_url"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new location store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanLocation(scan func(...any) error) (domain.Location, error) {
	var entity domain.Location
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Street,
		&entity.HouseNumber,
		&entity.ZipCode,
		&entity.City,
		&entity.Remarks,
		&entity.MapsURL,
	)
	return entity, err
}

// GetByID retrieves a Location by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Location, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+locationColumns+" FROM location WHERE location_id = ?", id)
	entity, err := scanLocation(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Location{}, fmt.Errorf("location not found: %w", err)
	}
	return entity, err
}

// Save persists a Location to the database.
// PRE: entity has been validated
// POST: Entity is inserted (ID == 0) or updated; returns the persisted ID
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Location) (int64, error) {
	if entity.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO location (name, street, house_number, zip_code, city, remarks, maps_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entity.Name, entity.Street, entity.HouseNumber, entity.ZipCode,
			entity.City, entity.Remarks, entity.MapsURL,
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE location SET name = ?, street = ?, house_number = ?, zip_code = ?,
		 city = ?, remarks = ?, maps_url = ? WHERE location_id = ?`,
		entity.Name, entity.Street, entity.HouseNumber, entity.ZipCode,
		entity.City, entity.Remarks, entity.MapsURL, entity.ID,
	)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("location not found: %w", sql.ErrNoRows)
	}
	return entity.ID, nil
}

// Delete removes a Location. Seminars referencing it are detached, not
// deleted (ON DELETE SET NULL).
// PRE: id > 0
// POST: Entity with given id is removed; error if it did not exist
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM location WHERE location_id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("location not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves a page of Locations ordered by name.
// PRE: filter has valid parameters
// POST: Returns at most Limit entities starting at Offset
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Location, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+locationColumns+" FROM location ORDER BY name LIMIT ? OFFSET ?",
		limit, filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Location
	for rows.Next() {
		entity, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of locations.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM location").Scan(&count)
	return count, err
}
