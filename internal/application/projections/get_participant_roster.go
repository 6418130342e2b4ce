package projections

import (
	"context"
	"net/url"
	"strings"
)

// RosterRow is one participant in the admin roster view. The token is
// included so the row's unregister action can be keyed by it.
type RosterRow struct {
	ID        int64
	FullName  string
	Email     string
	Remarks   string
	Token     string
}

// GetParticipantRosterQuery carries query parameters.
type GetParticipantRosterQuery struct {
	SeminarID int64
}

// GetParticipantRosterResult carries the roster plus a prebuilt bcc mailto
// link over every participant on it.
type GetParticipantRosterResult struct {
	SeminarID    int64
	SeminarTitle string
	SeminarDate  string
	SeminarTime  string
	Rows         []RosterRow
	BCCMailto    string
}

// GetParticipantRosterDeps holds dependencies for GetParticipantRoster.
type GetParticipantRosterDeps struct {
	SeminarStore     SeminarStore
	ParticipantStore ParticipantStore
}

// QueryGetParticipantRoster retrieves the roster of one seminar in
// registration order.
// PRE: Operator session established at the HTTP boundary
// POST: Returns all participants; BCCMailto covers exactly the returned rows
func QueryGetParticipantRoster(ctx context.Context, query GetParticipantRosterQuery, deps GetParticipantRosterDeps) (GetParticipantRosterResult, error) {
	sem, err := deps.SeminarStore.GetByID(ctx, query.SeminarID)
	if err != nil {
		return GetParticipantRosterResult{}, err
	}

	participants, err := deps.ParticipantStore.ListBySeminar(ctx, query.SeminarID)
	if err != nil {
		return GetParticipantRosterResult{}, err
	}

	result := GetParticipantRosterResult{
		SeminarID:    sem.ID,
		SeminarTitle: sem.Title,
		SeminarDate:  sem.Date,
		SeminarTime:  sem.Time,
	}
	var addresses []string
	for _, p := range participants {
		result.Rows = append(result.Rows, RosterRow{
			ID:       p.ID,
			FullName: p.FullName(),
			Email:    p.Email,
			Remarks:  p.Remarks,
			Token:    p.Token,
		})
		addresses = append(addresses, p.Email)
	}
	if len(addresses) > 0 {
		result.BCCMailto = "mailto:?bcc=" + url.QueryEscape(strings.Join(addresses, ","))
	}
	return result, nil
}
