package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	emailAdapter "coachsite/internal/adapters/email"
	locationDomain "coachsite/internal/domain/location"
	participantDomain "coachsite/internal/domain/participant"
	seminarDomain "coachsite/internal/domain/seminar"
)

// fixedTime is in Local because seminar start instants parse as local time.
var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

func fixedNow() time.Time { return fixedTime }

// startingIn returns date/time strings for a seminar this far in the future.
func startingIn(d time.Duration) (string, string) {
	at := fixedTime.Add(d)
	return at.Format("2006-01-02"), at.Format("15:04")
}

// mockSeminarStore implements SeminarStoreForRegistration and
// SeminarStoreForAdmin for testing.
type mockSeminarStore struct {
	seminars map[int64]seminarDomain.Seminar
	deleted  []int64
}

func newMockSeminarStore() *mockSeminarStore {
	return &mockSeminarStore{seminars: make(map[int64]seminarDomain.Seminar)}
}

func (m *mockSeminarStore) GetByID(_ context.Context, id int64) (seminarDomain.Seminar, error) {
	s, ok := m.seminars[id]
	if !ok {
		return seminarDomain.Seminar{}, errors.New("not found")
	}
	return s, nil
}

func (m *mockSeminarStore) Save(_ context.Context, s seminarDomain.Seminar) (int64, error) {
	if s.ID == 0 {
		s.ID = int64(len(m.seminars) + 1)
	} else if _, ok := m.seminars[s.ID]; !ok {
		return 0, errors.New("not found")
	}
	m.seminars[s.ID] = s
	return s.ID, nil
}

func (m *mockSeminarStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.seminars[id]; !ok {
		return errors.New("not found")
	}
	delete(m.seminars, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// mockParticipantStore implements the registration and unregistration store
// interfaces for testing.
type mockParticipantStore struct {
	participants []participantDomain.Participant
	nextID       int64
}

func (m *mockParticipantStore) Save(_ context.Context, p participantDomain.Participant) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	m.participants = append(m.participants, p)
	return p.ID, nil
}

func (m *mockParticipantStore) CountBySeminar(_ context.Context, seminarID int64) (int, error) {
	count := 0
	for _, p := range m.participants {
		if p.SeminarID == seminarID {
			count++
		}
	}
	return count, nil
}

func (m *mockParticipantStore) ListBySeminar(_ context.Context, seminarID int64) ([]participantDomain.Participant, error) {
	var out []participantDomain.Participant
	for _, p := range m.participants {
		if p.SeminarID == seminarID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockParticipantStore) GetByToken(_ context.Context, token string) (participantDomain.Participant, error) {
	for _, p := range m.participants {
		if p.Token == token {
			return p, nil
		}
	}
	return participantDomain.Participant{}, errors.New("not found")
}

func (m *mockParticipantStore) DeleteByToken(_ context.Context, token string) error {
	for i, p := range m.participants {
		if p.Token == token {
			m.participants = append(m.participants[:i], m.participants[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// mockLocationStore implements LocationLookup and LocationStoreForAdmin.
type mockLocationStore struct {
	locations map[int64]locationDomain.Location
	deleted   []int64
}

func newMockLocationStore() *mockLocationStore {
	return &mockLocationStore{locations: make(map[int64]locationDomain.Location)}
}

func (m *mockLocationStore) GetByID(_ context.Context, id int64) (locationDomain.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return locationDomain.Location{}, errors.New("not found")
	}
	return l, nil
}

func (m *mockLocationStore) Save(_ context.Context, l locationDomain.Location) (int64, error) {
	if l.ID == 0 {
		l.ID = int64(len(m.locations) + 1)
	} else if _, ok := m.locations[l.ID]; !ok {
		return 0, errors.New("not found")
	}
	m.locations[l.ID] = l
	return l.ID, nil
}

func (m *mockLocationStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.locations[id]; !ok {
		return errors.New("not found")
	}
	delete(m.locations, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// mockEmailSender records outgoing emails.
type mockEmailSender struct {
	sent []emailAdapter.SendRequest
	fail bool
}

func (m *mockEmailSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.fail {
		return emailAdapter.SendResult{}, errors.New("provider down")
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-001", SentAt: fixedTime}, nil
}

func registrationDeps(seminars *mockSeminarStore, participants *mockParticipantStore, sender *mockEmailSender) RegisterParticipantDeps {
	return RegisterParticipantDeps{
		SeminarStore:     seminars,
		ParticipantStore: participants,
		LocationStore:    newMockLocationStore(),
		EmailSender:      sender,
		Now:              fixedNow,
		BaseURL:          "https://example.de",
		AdminEmail:       "admin@example.de",
	}
}

func openSeminar(id int64, maxParticipants int) seminarDomain.Seminar {
	date, clock := startingIn(72 * time.Hour)
	return seminarDomain.Seminar{
		ID: id, Title: "Teamentwicklung", Description: "Ein Seminar.",
		Date: date, Time: clock, MaxParticipants: maxParticipants, Price: -1,
	}
}

// TestExecuteRegisterParticipant_Success verifies the happy path: participant
// stored with a token, confirmation and admin notice sent.
func TestExecuteRegisterParticipant_Success(t *testing.T) {
	seminars := newMockSeminarStore()
	seminars.seminars[1] = openSeminar(1, 10)
	participants := &mockParticipantStore{}
	sender := &mockEmailSender{}

	p, err := ExecuteRegisterParticipant(context.Background(), RegisterParticipantInput{
		SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "anna@example.com",
	}, registrationDeps(seminars, participants, sender))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Token == "" {
		t.Error("expected a capability token to be issued")
	}
	if len(participants.participants) != 1 {
		t.Fatalf("expected 1 stored participant, got %d", len(participants.participants))
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails (confirmation + admin notice), got %d", len(sender.sent))
	}
	confirmation := sender.sent[0]
	if confirmation.To[0] != "anna@example.com" {
		t.Errorf("confirmation went to %s", confirmation.To[0])
	}
	wantLink := "https://example.de/seminars/1/unregister?token=" + p.Token
	if !strings.Contains(confirmation.HTML, wantLink) {
		t.Errorf("confirmation is missing the unregister link %s", wantLink)
	}
	notice := sender.sent[1]
	if notice.To[0] != "admin@example.de" {
		t.Errorf("admin notice went to %s", notice.To[0])
	}
	if !strings.Contains(notice.HTML, "Anna Berg") {
		t.Error("admin notice does not list the new participant")
	}
}

// TestExecuteRegisterParticipant_Full verifies the capacity gate at submit
// time: the form may have rendered open, the count decides now.
func TestExecuteRegisterParticipant_Full(t *testing.T) {
	seminars := newMockSeminarStore()
	seminars.seminars[1] = openSeminar(1, 1)
	participants := &mockParticipantStore{
		participants: []participantDomain.Participant{
			{ID: 1, SeminarID: 1, Firstname: "Erik", Lastname: "Lang", Email: "erik@example.com", Token: "tok-0"},
		},
		nextID: 1,
	}
	sender := &mockEmailSender{}

	_, err := ExecuteRegisterParticipant(context.Background(), RegisterParticipantInput{
		SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "anna@example.com",
	}, registrationDeps(seminars, participants, sender))
	if !errors.Is(err, ErrSeminarFull) {
		t.Fatalf("expected ErrSeminarFull, got %v", err)
	}
	if len(participants.participants) != 1 {
		t.Error("participant must not be stored when full")
	}
	if len(sender.sent) != 0 {
		t.Error("no emails must be sent when full")
	}
}

// TestExecuteRegisterParticipant_TooLate verifies the 2 hour window.
func TestExecuteRegisterParticipant_TooLate(t *testing.T) {
	seminars := newMockSeminarStore()
	sem := openSeminar(1, 10)
	sem.Date, sem.Time = startingIn(90 * time.Minute)
	seminars.seminars[1] = sem
	sender := &mockEmailSender{}

	_, err := ExecuteRegisterParticipant(context.Background(), RegisterParticipantInput{
		SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "anna@example.com",
	}, registrationDeps(seminars, &mockParticipantStore{}, sender))
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}

// TestExecuteRegisterParticipant_ExternalURL verifies that a seminar with an
// external registration URL refuses in-site registrations.
func TestExecuteRegisterParticipant_ExternalURL(t *testing.T) {
	seminars := newMockSeminarStore()
	sem := openSeminar(1, 10)
	sem.URL = "https://partner.example.com/anmeldung"
	seminars.seminars[1] = sem

	_, err := ExecuteRegisterParticipant(context.Background(), RegisterParticipantInput{
		SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "anna@example.com",
	}, registrationDeps(seminars, &mockParticipantStore{}, &mockEmailSender{}))
	if !errors.Is(err, ErrExternalRegistration) {
		t.Fatalf("expected ErrExternalRegistration, got %v", err)
	}
}

// TestExecuteRegisterParticipant_InvalidForm verifies domain validation runs.
func TestExecuteRegisterParticipant_InvalidForm(t *testing.T) {
	seminars := newMockSeminarStore()
	seminars.seminars[1] = openSeminar(1, 10)
	participants := &mockParticipantStore{}

	tests := []struct {
		name  string
		input RegisterParticipantInput
	}{
		{"shortFirstname", RegisterParticipantInput{SeminarID: 1, Firstname: "A", Lastname: "Berg", Email: "anna@example.com"}},
		{"shortLastname", RegisterParticipantInput{SeminarID: 1, Firstname: "Anna", Lastname: "B", Email: "anna@example.com"}},
		{"badEmail", RegisterParticipantInput{SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteRegisterParticipant(context.Background(), tt.input,
				registrationDeps(seminars, participants, &mockEmailSender{}))
			if err == nil {
				t.Error("expected a validation error")
			}
		})
	}
	if len(participants.participants) != 0 {
		t.Error("invalid registrations must not be stored")
	}
}

// TestExecuteRegisterParticipant_EmailFailureKeepsRegistration verifies a
// provider outage does not undo the stored registration.
func TestExecuteRegisterParticipant_EmailFailureKeepsRegistration(t *testing.T) {
	seminars := newMockSeminarStore()
	seminars.seminars[1] = openSeminar(1, 10)
	participants := &mockParticipantStore{}
	sender := &mockEmailSender{fail: true}

	_, err := ExecuteRegisterParticipant(context.Background(), RegisterParticipantInput{
		SeminarID: 1, Firstname: "Anna", Lastname: "Berg", Email: "anna@example.com",
	}, registrationDeps(seminars, participants, sender))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(participants.participants) != 1 {
		t.Error("registration must survive email failure")
	}
}
