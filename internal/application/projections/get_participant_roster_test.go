package projections

import (
	"context"
	"strings"
	"testing"
	"time"

	locationDomain "coachsite/internal/domain/location"
	participantDomain "coachsite/internal/domain/participant"
	seminarDomain "coachsite/internal/domain/seminar"
)

// TestQueryGetParticipantRoster verifies row order, token passthrough and
// the bcc mailto link.
func TestQueryGetParticipantRoster(t *testing.T) {
	deps := GetParticipantRosterDeps{
		SeminarStore: &mockSeminarStore{seminars: []seminarDomain.Seminar{
			seminarAt(1, 72*time.Hour, 2, 10),
		}},
		ParticipantStore: &mockParticipantStore{participants: []participantDomain.Participant{
			{ID: 1, SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "anna@example.com", Token: "tok-1"},
			{ID: 2, SeminarID: 1, Firstname: "Jan", Lastname: "Maier", Email: "jan@example.com", Remarks: "vegetarisch", Token: "tok-2"},
			{ID: 3, SeminarID: 2, Firstname: "Eva", Lastname: "Kern", Email: "eva@example.com", Token: "tok-3"},
		}},
	}

	result, err := QueryGetParticipantRoster(context.Background(),
		GetParticipantRosterQuery{SeminarID: 1}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SeminarTitle != "Teamentwicklung" {
		t.Errorf("seminar title = %s", result.SeminarTitle)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].FullName != "Anna Berg" || result.Rows[1].FullName != "Jan Maier" {
		t.Errorf("unexpected row order: %+v", result.Rows)
	}
	if result.Rows[1].Token != "tok-2" {
		t.Error("row must carry the unregister token")
	}

	if !strings.HasPrefix(result.BCCMailto, "mailto:?bcc=") {
		t.Fatalf("mailto = %s", result.BCCMailto)
	}
	for _, addr := range []string{"anna%40example.com", "jan%40example.com"} {
		if !strings.Contains(result.BCCMailto, addr) {
			t.Errorf("mailto is missing %s: %s", addr, result.BCCMailto)
		}
	}
	if strings.Contains(result.BCCMailto, "eva") {
		t.Error("mailto must only cover this seminar's roster")
	}
}

// TestQueryGetParticipantRoster_Empty verifies an empty roster yields no
// mailto link.
func TestQueryGetParticipantRoster_Empty(t *testing.T) {
	deps := GetParticipantRosterDeps{
		SeminarStore: &mockSeminarStore{seminars: []seminarDomain.Seminar{
			seminarAt(1, 72*time.Hour, 0, 10),
		}},
		ParticipantStore: &mockParticipantStore{},
	}

	result, err := QueryGetParticipantRoster(context.Background(),
		GetParticipantRosterQuery{SeminarID: 1}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 0 || result.BCCMailto != "" {
		t.Errorf("expected empty roster and no mailto, got %+v", result)
	}
}

// TestQueryGetLocationList verifies server-side paging of the venue table.
func TestQueryGetLocationList(t *testing.T) {
	locations := map[int64]locationDomain.Location{}
	for i := int64(1); i <= 25; i++ {
		locations[i] = locationDomain.Location{ID: i, Name: "Haus", City: "Freiburg"}
	}
	deps := GetLocationListDeps{LocationStore: &mockLocationStore{locations: locations}}

	result, err := QueryGetLocationList(context.Background(),
		GetLocationListQuery{Page: 2, PerPage: 10}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PageInfo.Total != 25 {
		t.Errorf("total = %d, want 25", result.PageInfo.Total)
	}
	if result.PageInfo.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.PageInfo.TotalPages)
	}
	if result.PageInfo.Offset() != 10 {
		t.Errorf("offset = %d, want 10", result.PageInfo.Offset())
	}
}
