package seminar

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for operator-editable fields.
const (
	MaxTitleLength = 255
	MaxURLLength   = 255
)

// DescriptionPreviewLength is the number of characters shown before the
// description is cut off behind an expand toggle.
const DescriptionPreviewLength = 200

// RegistrationCutoff is the minimum gap between now and the seminar start
// for registration to remain open.
const RegistrationCutoff = 2 * time.Hour

// UnregisterCutoff is the minimum gap between now and the seminar start for
// a participant to still withdraw.
const UnregisterCutoff = 24 * time.Hour

// PriceNotApplicable is the sentinel meaning the seminar has no price tag.
const PriceNotApplicable = -1

// Image keys. The set is closed: anything else resolves to the fallback.
const (
	ImageBranches   = "branches"
	ImageTeam       = "team"
	ImageWhiteboard = "whiteboard"
	ImageKids       = "kids"
	ImageHandshake  = "handshake"
	ImageClimber    = "climber"
	ImageKnot       = "knot"
	ImageReflection = "reflection"
	ImageStones     = "stones"
	ImageTeamwork   = "teamwork"
)

// ImageKeys lists every known image key, for form select options.
var ImageKeys = []string{
	ImageBranches, ImageTeam, ImageWhiteboard, ImageKids, ImageHandshake,
	ImageClimber, ImageKnot, ImageReflection, ImageStones, ImageTeamwork,
}

// Domain errors
var (
	ErrEmptyTitle       = errors.New("seminar title cannot be empty")
	ErrEmptyDescription = errors.New("seminar description cannot be empty")
	ErrBadDate          = errors.New("seminar date must be YYYY-MM-DD")
	ErrBadTime          = errors.New("seminar time must be HH:MM")
	ErrBadCapacity      = errors.New("max participants cannot be negative")
	ErrBadPrice         = errors.New("price must be non-negative or -1 for not applicable")
)

// Seminar holds state for a bookable seminar.
// ParticipantsCount is derived by the store on read, never written directly.
type Seminar struct {
	ID                int64
	Title             string
	Description       string
	Date              string // YYYY-MM-DD, no timezone
	Time              string // HH:MM, no timezone
	URL               string // non-empty means registration happens off-site
	ImageName         string
	MaxParticipants   int
	ParticipantsCount int
	Price             float64 // PriceNotApplicable when no price is shown
	LocationID        int64
}

// Validate checks if the Seminar has valid data.
// PRE: Seminar struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Seminar) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if len(s.Title) > MaxTitleLength {
		return errors.New("seminar title cannot exceed 255 characters")
	}
	if strings.TrimSpace(s.Description) == "" {
		return ErrEmptyDescription
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return ErrBadDate
	}
	if !validClock(s.Time) {
		return ErrBadTime
	}
	if len(s.URL) > MaxURLLength {
		return errors.New("url cannot exceed 255 characters")
	}
	if s.MaxParticipants < 0 {
		return ErrBadCapacity
	}
	if s.Price < 0 && s.Price != PriceNotApplicable {
		return ErrBadPrice
	}
	return nil
}

// StartsAt combines Date and Time into a single local instant.
// PRE: none
// POST: Returns the start instant, or the zero time if Date/Time do not parse
// (a zero start is always in the past, so the gate fails closed)
func (s *Seminar) StartsAt() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s.Date+" "+clockPrefix(s.Time), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CapacityReached reports whether the participant count has used up all places.
// INVARIANT: Seminar fields are not mutated
func (s *Seminar) CapacityReached(participantsCount int) bool {
	return participantsCount >= s.MaxParticipants
}

// TooLate reports whether the start is less than the cutoff away, computed as
// a floating-point hour difference so past seminars are always too late.
// INVARIANT: Seminar fields are not mutated
func (s *Seminar) TooLate(now time.Time) bool {
	return s.StartsAt().Sub(now).Hours() < RegistrationCutoff.Hours()
}

// TooLateToUnregister reports whether the start is less than UnregisterCutoff
// away. Same fail-closed arithmetic as TooLate.
// INVARIANT: Seminar fields are not mutated
func (s *Seminar) TooLateToUnregister(now time.Time) bool {
	return s.StartsAt().Sub(now).Hours() < UnregisterCutoff.Hours()
}

// RegistrationOpen is the availability gate: open only when capacity remains
// and the seminar starts at least RegistrationCutoff from now.
// PRE: now is the caller's current clock, never a cached value
// POST: Returns false if capacity is reached or the start is too close/past
func (s *Seminar) RegistrationOpen(participantsCount int, now time.Time) bool {
	return !s.CapacityReached(participantsCount) && !s.TooLate(now)
}

// HasExternalRegistration reports whether registration is handled off-site.
// INVARIANT: Seminar fields are not mutated
func (s *Seminar) HasExternalRegistration() bool {
	return s.URL != ""
}

// HasPrice reports whether a price should be displayed.
// INVARIANT: Seminar fields are not mutated
func (s *Seminar) HasPrice() bool {
	return s.Price != PriceNotApplicable && s.Price >= 0
}

// Preview returns the truncated description and whether it was cut off.
// POST: When cut off, the returned text is the 200-char prefix plus "..."
func (s *Seminar) Preview() (string, bool) {
	runes := []rune(s.Description)
	if len(runes) <= DescriptionPreviewLength {
		return s.Description, false
	}
	return string(runes[:DescriptionPreviewLength]) + "...", true
}

// ImageAsset resolves the symbolic image key to a static asset path.
// The fallback arm is unconditional: unknown or empty keys render the
// branches image, never an error.
func (s *Seminar) ImageAsset() string {
	switch s.ImageName {
	case ImageTeam, ImageWhiteboard, ImageKids, ImageHandshake, ImageClimber,
		ImageKnot, ImageReflection, ImageStones, ImageTeamwork:
		return "/static/img/" + s.ImageName + ".jpg"
	default:
		return "/static/img/" + ImageBranches + ".jpg"
	}
}

// validClock accepts HH:MM and HH:MM:SS.
func validClock(v string) bool {
	if _, err := time.Parse("15:04", v); err == nil {
		return true
	}
	if _, err := time.Parse("15:04:05", v); err == nil {
		return true
	}
	return false
}

// clockPrefix normalises HH:MM:SS to HH:MM for StartsAt parsing.
func clockPrefix(v string) string {
	if len(v) > 5 {
		return v[:5]
	}
	return v
}
