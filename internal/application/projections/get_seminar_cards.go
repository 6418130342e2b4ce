package projections

import (
	"context"
	"time"

	seminarStore "coachsite/internal/adapters/storage/seminar"
	locationDomain "coachsite/internal/domain/location"
	seminarDomain "coachsite/internal/domain/seminar"
)

// Registration modes shown on a seminar card.
const (
	ModeExternal = "external" // forward dialog to the seminar's own URL
	ModeForm     = "form"     // in-site registration form
)

// SeminarCard is the render model for one seminar on the public site.
// The gate fields are computed against the clock passed in the query, so a
// card is only ever as fresh as the request that built it.
type SeminarCard struct {
	ID                 int64
	Title              string
	Date               string
	Time               string
	Price              float64
	HasPrice           bool
	DescriptionShort   string
	DescriptionFull    string
	Truncated          bool
	ImagePath          string
	ParticipantsCount  int
	MaxParticipants    int
	FreePlaces         int
	Full               bool
	TooLate            bool
	RegistrationOpen   bool
	RegistrationMode   string // ModeExternal or ModeForm
	ExternalURL        string
	LocationName       string
	LocationAddress    string
	LocationRemarks    string
	LocationMapsURL    string
}

// GetSeminarCardsQuery carries query parameters for the public listing.
type GetSeminarCardsQuery struct {
	Limit  int
	Offset int
	Now    time.Time
}

// GetSeminarCardsResult carries the query result.
type GetSeminarCardsResult struct {
	Cards []SeminarCard
	Total int
}

// GetSeminarCardsDeps holds dependencies for GetSeminarCards.
type GetSeminarCardsDeps struct {
	SeminarStore  SeminarStore
	LocationStore LocationStore
}

// QueryGetSeminarCards builds the paginated public seminar listing.
// PRE: query.Now is the caller's current clock
// POST: Returns at most Limit cards plus the total count for paging
func QueryGetSeminarCards(ctx context.Context, query GetSeminarCardsQuery, deps GetSeminarCardsDeps) (GetSeminarCardsResult, error) {
	seminars, err := deps.SeminarStore.List(ctx, seminarStore.ListFilter{
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return GetSeminarCardsResult{}, err
	}

	total, err := deps.SeminarStore.Count(ctx)
	if err != nil {
		return GetSeminarCardsResult{}, err
	}

	cards := make([]SeminarCard, 0, len(seminars))
	venues := make(map[int64]locationDomain.Location)
	for _, s := range seminars {
		cards = append(cards, buildCard(ctx, s, query.Now, deps.LocationStore, venues))
	}

	return GetSeminarCardsResult{Cards: cards, Total: total}, nil
}

// GetSeminarCardQuery carries query parameters for a single card.
type GetSeminarCardQuery struct {
	SeminarID int64
	Now       time.Time
}

// GetSeminarCardDeps holds dependencies for GetSeminarCard.
type GetSeminarCardDeps struct {
	SeminarStore  SeminarStore
	LocationStore LocationStore
}

// QueryGetSeminarCard builds the card for one seminar.
// PRE: query.Now is the caller's current clock
// POST: Returns the card or the store's not-found error
func QueryGetSeminarCard(ctx context.Context, query GetSeminarCardQuery, deps GetSeminarCardDeps) (SeminarCard, error) {
	s, err := deps.SeminarStore.GetByID(ctx, query.SeminarID)
	if err != nil {
		return SeminarCard{}, err
	}
	return buildCard(ctx, s, query.Now, deps.LocationStore, make(map[int64]locationDomain.Location)), nil
}

// GetUpcomingSeminarsQuery carries query parameters for the home page teaser.
type GetUpcomingSeminarsQuery struct {
	Limit int
	Now   time.Time
}

// QueryGetUpcomingSeminars returns cards for seminars that have not started
// yet, soonest first. Used for the "next seminar" teaser and the latest-n API.
// PRE: query.Limit > 0, query.Now is the caller's current clock
// POST: Every returned card starts after Now
func QueryGetUpcomingSeminars(ctx context.Context, query GetUpcomingSeminarsQuery, deps GetSeminarCardsDeps) ([]SeminarCard, error) {
	// Fetch from today's date; same-day seminars that already started are
	// filtered below on the full instant.
	seminars, err := deps.SeminarStore.ListUpcoming(ctx, query.Now.Format("2006-01-02"), query.Limit+8)
	if err != nil {
		return nil, err
	}

	venues := make(map[int64]locationDomain.Location)
	var cards []SeminarCard
	for _, s := range seminars {
		if !s.StartsAt().After(query.Now) {
			continue
		}
		cards = append(cards, buildCard(ctx, s, query.Now, deps.LocationStore, venues))
		if len(cards) == query.Limit {
			break
		}
	}
	return cards, nil
}

// buildCard derives all render state from the seminar and the request clock.
// The venues map caches location lookups across cards of one request.
func buildCard(ctx context.Context, s seminarDomain.Seminar, now time.Time, locations LocationStore, venues map[int64]locationDomain.Location) SeminarCard {
	short, truncated := s.Preview()

	card := SeminarCard{
		ID:                s.ID,
		Title:             s.Title,
		Date:              s.Date,
		Time:              s.Time,
		Price:             s.Price,
		HasPrice:          s.HasPrice(),
		DescriptionShort:  short,
		DescriptionFull:   s.Description,
		Truncated:         truncated,
		ImagePath:         s.ImageAsset(),
		ParticipantsCount: s.ParticipantsCount,
		MaxParticipants:   s.MaxParticipants,
		Full:              s.CapacityReached(s.ParticipantsCount),
		TooLate:           s.TooLate(now),
		RegistrationOpen:  s.RegistrationOpen(s.ParticipantsCount, now),
		RegistrationMode:  ModeForm,
		ExternalURL:       s.URL,
	}
	if free := s.MaxParticipants - s.ParticipantsCount; free > 0 {
		card.FreePlaces = free
	}
	if s.HasExternalRegistration() {
		card.RegistrationMode = ModeExternal
	}

	if s.LocationID != 0 && locations != nil {
		loc, ok := venues[s.LocationID]
		if !ok {
			fetched, err := locations.GetByID(ctx, s.LocationID)
			if err == nil {
				venues[s.LocationID] = fetched
				loc, ok = fetched, true
			}
		}
		if ok {
			card.LocationName = loc.Name
			card.LocationAddress = loc.Address()
			card.LocationRemarks = loc.Remarks
			card.LocationMapsURL = loc.MapsURL
		}
	}
	return card
}
