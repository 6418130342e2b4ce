package seminar_test

import (
	"strings"
	"testing"
	"time"

	"coachsite/internal/domain/seminar"
)

// fixedNow is a frozen clock so gate tests never depend on the wall clock.
var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

// at returns a seminar starting the given duration after fixedNow.
func at(d time.Duration) seminar.Seminar {
	start := fixedNow.Add(d)
	return seminar.Seminar{
		ID:              1,
		Title:           "Konfliktmoderation",
		Description:     "Grundlagen der Konfliktmoderation.",
		Date:            start.Format("2006-01-02"),
		Time:            start.Format("15:04"),
		MaxParticipants: 10,
		Price:           120,
		LocationID:      1,
	}
}

// TestRegistrationOpen_CapacityReached verifies the gate closes on capacity
// regardless of how far away the seminar is.
func TestRegistrationOpen_CapacityReached(t *testing.T) {
	s := at(30 * 24 * time.Hour)
	if s.RegistrationOpen(10, fixedNow) {
		t.Error("gate should be closed when participants_count == max_participants")
	}
	if s.RegistrationOpen(11, fixedNow) {
		t.Error("gate should be closed when participants_count > max_participants")
	}
	if !s.RegistrationOpen(9, fixedNow) {
		t.Error("gate should be open one place below capacity")
	}
}

// TestRegistrationOpen_TimeWindow verifies the 2-hour cutoff, including past
// seminars, regardless of capacity.
func TestRegistrationOpen_TimeWindow(t *testing.T) {
	tests := []struct {
		name     string
		until    time.Duration
		wantOpen bool
	}{
		{"one hour away", time.Hour, false},
		{"just inside cutoff", 2*time.Hour - time.Minute, false},
		{"exactly at cutoff", 2 * time.Hour, true},
		{"three hours away", 3 * time.Hour, true},
		{"already started", -time.Hour, false},
		{"yesterday", -24 * time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := at(tt.until)
			if got := s.RegistrationOpen(3, fixedNow); got != tt.wantOpen {
				t.Errorf("RegistrationOpen = %v, want %v", got, tt.wantOpen)
			}
		})
	}
}

// TestRegistrationOpen_Scenarios covers the documented gate scenarios.
func TestRegistrationOpen_Scenarios(t *testing.T) {
	// Full seminar later today: closed on capacity even though time remains.
	tonight := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 23, 59, 0, 0, time.Local)
	full := seminar.Seminar{
		Title: "Voll", Description: "x",
		Date: tonight.Format("2006-01-02"), Time: "23:59",
		MaxParticipants: 10,
	}
	if full.RegistrationOpen(10, fixedNow) {
		t.Error("full seminar tonight must be closed (capacity)")
	}

	// Seminar in one hour with places free: closed on time.
	soon := at(time.Hour)
	if soon.RegistrationOpen(3, fixedNow) {
		t.Error("seminar one hour away must be closed (too late)")
	}
}

// TestTooLate_UnparseableDateFailsClosed verifies that a corrupt date never
// opens the gate.
func TestTooLate_UnparseableDateFailsClosed(t *testing.T) {
	s := seminar.Seminar{Date: "not-a-date", Time: "12:00", MaxParticipants: 10}
	if !s.TooLate(fixedNow) {
		t.Error("unparseable start must count as too late")
	}
	if s.RegistrationOpen(0, fixedNow) {
		t.Error("gate must fail closed on unparseable start")
	}
}

// TestStartsAt_AcceptsSeconds verifies HH:MM:SS times from the API round down
// to the minute.
func TestStartsAt_AcceptsSeconds(t *testing.T) {
	s := seminar.Seminar{Date: "2026-03-10", Time: "14:30:00"}
	want := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	if got := s.StartsAt(); !got.Equal(want) {
		t.Errorf("StartsAt = %v, want %v", got, want)
	}
}

// TestPreview tests description truncation at the preview threshold.
func TestPreview(t *testing.T) {
	short := seminar.Seminar{Description: "kurz"}
	if text, cut := short.Preview(); cut || text != "kurz" {
		t.Errorf("short description should not be cut, got %q cut=%v", text, cut)
	}

	long := seminar.Seminar{Description: strings.Repeat("a", 250)}
	text, cut := long.Preview()
	if !cut {
		t.Error("250-char description should be cut")
	}
	if want := strings.Repeat("a", 200) + "..."; text != want {
		t.Errorf("preview length = %d, want 203", len(text))
	}

	exact := seminar.Seminar{Description: strings.Repeat("b", 200)}
	if _, cut := exact.Preview(); cut {
		t.Error("exactly 200 chars should not be cut")
	}
}

// TestImageAsset_FallbackIsUnconditional verifies unknown and empty keys
// resolve to the branches image.
func TestImageAsset_FallbackIsUnconditional(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{seminar.ImageTeam, "/static/img/team.jpg"},
		{seminar.ImageStones, "/static/img/stones.jpg"},
		{seminar.ImageBranches, "/static/img/branches.jpg"},
		{"does-not-exist", "/static/img/branches.jpg"},
		{"", "/static/img/branches.jpg"},
	}
	for _, tt := range tests {
		s := seminar.Seminar{ImageName: tt.key}
		if got := s.ImageAsset(); got != tt.want {
			t.Errorf("ImageAsset(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// TestHasPrice tests the -1 sentinel handling.
func TestHasPrice(t *testing.T) {
	if (&seminar.Seminar{Price: seminar.PriceNotApplicable}).HasPrice() {
		t.Error("-1 means no price")
	}
	if !(&seminar.Seminar{Price: 0}).HasPrice() {
		t.Error("0 is a valid (free) price")
	}
	if !(&seminar.Seminar{Price: 89.5}).HasPrice() {
		t.Error("positive price should display")
	}
}

// TestSeminarValidation tests validation of Seminar.
func TestSeminarValidation(t *testing.T) {
	valid := seminar.Seminar{
		Title:           "Teamentwicklung",
		Description:     "Ein Tagesseminar.",
		Date:            "2026-05-01",
		Time:            "09:30",
		MaxParticipants: 12,
		Price:           seminar.PriceNotApplicable,
	}

	tests := []struct {
		name    string
		mutate  func(*seminar.Seminar)
		wantErr error
	}{
		{"valid", func(*seminar.Seminar) {}, nil},
		{"empty title", func(s *seminar.Seminar) { s.Title = "  " }, seminar.ErrEmptyTitle},
		{"empty description", func(s *seminar.Seminar) { s.Description = "" }, seminar.ErrEmptyDescription},
		{"bad date", func(s *seminar.Seminar) { s.Date = "01.05.2026" }, seminar.ErrBadDate},
		{"bad time", func(s *seminar.Seminar) { s.Time = "9 Uhr" }, seminar.ErrBadTime},
		{"negative capacity", func(s *seminar.Seminar) { s.MaxParticipants = -1 }, seminar.ErrBadCapacity},
		{"negative price", func(s *seminar.Seminar) { s.Price = -2 }, seminar.ErrBadPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
