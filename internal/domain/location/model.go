package location

import (
	"errors"
	"strconv"
	"strings"
)

// Max length constants for operator-editable fields.
const (
	MaxNameLength    = 127
	MaxRemarksLength = 255
)

// Domain errors
var (
	ErrEmptyName = errors.New("location name cannot be empty")
	ErrEmptyCity = errors.New("location city cannot be empty")
	ErrBadZip    = errors.New("zip code cannot be negative")
)

// Location is a physical venue referenced by zero or more seminars.
type Location struct {
	ID          int64
	Name        string
	Street      string
	HouseNumber string
	ZipCode     int
	City        string
	Remarks     string
	MapsURL     string
}

// Validate checks if the Location has valid data.
// PRE: Location struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if len(l.Name) > MaxNameLength {
		return errors.New("location name cannot exceed 127 characters")
	}
	if strings.TrimSpace(l.City) == "" {
		return ErrEmptyCity
	}
	if l.ZipCode < 0 {
		return ErrBadZip
	}
	if len(l.Remarks) > MaxRemarksLength {
		return errors.New("remarks cannot exceed 255 characters")
	}
	return nil
}

// Address returns the single-line postal address for emails and cards.
// INVARIANT: Location fields are not mutated
func (l *Location) Address() string {
	return strings.TrimSpace(l.Street+" "+l.HouseNumber) + ", " + zipCity(l)
}

func zipCity(l *Location) string {
	if l.ZipCode == 0 {
		return l.City
	}
	return strconv.Itoa(l.ZipCode) + " " + l.City
}
