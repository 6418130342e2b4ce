package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	locationStore "coachsite/internal/adapters/storage/location"
	seminarStore "coachsite/internal/adapters/storage/seminar"
	"coachsite/internal/application/listutil"
	"coachsite/internal/application/orchestrators"
	"coachsite/internal/application/projections"
	locationDomain "coachsite/internal/domain/location"
	participantDomain "coachsite/internal/domain/participant"
	seminarDomain "coachsite/internal/domain/seminar"
)

// pathID parses the named integer path segment.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// locationOut is the venue wire shape.
type locationOut struct {
	LocationID  int64  `json:"location_id"`
	Name        string `json:"name"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	ZipCode     int    `json:"zip_code"`
	City        string `json:"city"`
	Remarks     string `json:"remarks"`
	MapsURL     string `json:"maps_url"`
}

// seminarOut is the seminar wire shape. Price is null when not applicable;
// the location object is resolved when the seminar has one.
type seminarOut struct {
	SeminarID         int64        `json:"seminar_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Date              string       `json:"date"`
	Time              string       `json:"time"`
	URL               string       `json:"url"`
	ImageName         string       `json:"image_name"`
	MaxParticipants   int          `json:"max_participants"`
	ParticipantsCount int          `json:"participants_count"`
	Price             *float64     `json:"price"`
	LocationID        *int64       `json:"location_id"`
	Location          *locationOut `json:"location"`
}

// participantOut is the roster wire shape.
type participantOut struct {
	ParticipantID int64  `json:"participant_id"`
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Email         string `json:"email"`
	Remarks       string `json:"remarks"`
	Token         string `json:"token"`
	SeminarID     int64  `json:"seminar_id"`
}

func toLocationOut(l locationDomain.Location) locationOut {
	return locationOut{
		LocationID:  l.ID,
		Name:        l.Name,
		Street:      l.Street,
		HouseNumber: l.HouseNumber,
		ZipCode:     l.ZipCode,
		City:        l.City,
		Remarks:     l.Remarks,
		MapsURL:     l.MapsURL,
	}
}

func toSeminarOut(r *http.Request, s seminarDomain.Seminar) seminarOut {
	out := seminarOut{
		SeminarID:         s.ID,
		Title:             s.Title,
		Description:       s.Description,
		Date:              s.Date,
		Time:              s.Time,
		URL:               s.URL,
		ImageName:         s.ImageName,
		MaxParticipants:   s.MaxParticipants,
		ParticipantsCount: s.ParticipantsCount,
	}
	if s.HasPrice() {
		price := s.Price
		out.Price = &price
	}
	if s.LocationID != 0 {
		id := s.LocationID
		out.LocationID = &id
		if loc, err := stores.LocationStore.GetByID(r.Context(), s.LocationID); err == nil {
			resolved := toLocationOut(loc)
			out.Location = &resolved
		}
	}
	return out
}

func toParticipantOut(p participantDomain.Participant) participantOut {
	return participantOut{
		ParticipantID: p.ID,
		Firstname:     p.Firstname,
		Lastname:      p.Lastname,
		Email:         p.Email,
		Remarks:       p.Remarks,
		Token:         p.Token,
		SeminarID:     p.SeminarID,
	}
}

// seminarIn is the create/update wire shape. Price null means no price tag;
// location_id null means no venue.
type seminarIn struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	URL             string   `json:"url"`
	ImageName       string   `json:"image_name"`
	MaxParticipants int      `json:"max_participants"`
	Price           *float64 `json:"price"`
	LocationID      *int64   `json:"location_id"`
}

func (in seminarIn) toDomain(id int64) seminarDomain.Seminar {
	s := seminarDomain.Seminar{
		ID:              id,
		Title:           in.Title,
		Description:     in.Description,
		Date:            in.Date,
		Time:            in.Time,
		URL:             in.URL,
		ImageName:       in.ImageName,
		MaxParticipants: in.MaxParticipants,
		Price:           seminarDomain.PriceNotApplicable,
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.LocationID != nil {
		s.LocationID = *in.LocationID
	}
	return s
}

// handleListSeminars serves GET /seminars/?limit&offset.
func handleListSeminars(w http.ResponseWriter, r *http.Request) {
	limit, offset := listutil.ParseLimitOffset(r.URL.Query())
	seminars, err := stores.SeminarStore.List(r.Context(), seminarStore.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]seminarOut, 0, len(seminars))
	for _, s := range seminars {
		out = append(out, toSeminarOut(r, s))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSeminarCount serves GET /seminars/count.
func handleSeminarCount(w http.ResponseWriter, r *http.Request) {
	count, err := stores.SeminarStore.Count(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

// handleLatestSeminars serves GET /seminars/latest/{n}: the next n seminars
// that have not started yet.
func handleLatestSeminars(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 {
		jsonError(w, http.StatusBadRequest, "Invalid count")
		return
	}
	if n > listutil.MaxLimit {
		n = listutil.MaxLimit
	}

	cards, err := projections.QueryGetUpcomingSeminars(r.Context(),
		projections.GetUpcomingSeminarsQuery{Limit: n, Now: timeNow()},
		projections.GetSeminarCardsDeps{
			SeminarStore:  stores.SeminarStore,
			LocationStore: stores.LocationStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]seminarOut, 0, len(cards))
	for _, c := range cards {
		s, err := stores.SeminarStore.GetByID(r.Context(), c.ID)
		if err != nil {
			continue
		}
		out = append(out, toSeminarOut(r, s))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetSeminar serves GET /seminar/{id}.
func handleGetSeminar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid seminar id")
		return
	}
	s, err := stores.SeminarStore.GetByID(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusNotFound, "Seminar not found")
		return
	}
	writeJSON(w, http.StatusOK, toSeminarOut(r, s))
}

// handleSaveSeminar serves POST /seminars/ and PUT /seminars/{id}, as JSON
// or as the admin HTML form (hidden seminar_id selects update).
func handleSaveSeminar(w http.ResponseWriter, r *http.Request) {
	var in seminarIn
	var id int64

	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id, _ = strconv.ParseInt(r.FormValue("seminar_id"), 10, 64)
		in.Title = r.FormValue("title")
		in.Description = r.FormValue("description")
		in.Date = r.FormValue("date")
		in.Time = r.FormValue("time")
		in.URL = r.FormValue("url")
		in.ImageName = r.FormValue("image_name")
		in.MaxParticipants, _ = strconv.Atoi(r.FormValue("max_participants"))
		if v := r.FormValue("price"); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				in.Price = &price
			}
		}
		if v := r.FormValue("location_id"); v != "" && v != "0" {
			if locID, err := strconv.ParseInt(v, 10, 64); err == nil {
				in.LocationID = &locID
			}
		}
	} else {
		if err := strictDecode(r, &in); err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid request")
			return
		}
	}
	if r.Method == http.MethodPut {
		pid, err := pathID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid seminar id")
			return
		}
		id = pid
	}

	savedID, err := orchestrators.ExecuteSaveSeminar(r.Context(),
		orchestrators.SaveSeminarInput{Seminar: in.toDomain(id)},
		orchestrators.SaveSeminarDeps{SeminarStore: stores.SeminarStore})
	if err != nil {
		if id != 0 && isNotFound(err) {
			jsonError(w, http.StatusNotFound, "Seminar not found")
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/admin/seminars", http.StatusSeeOther)
		return
	}
	s, err := stores.SeminarStore.GetByID(r.Context(), savedID)
	if err != nil {
		internalError(w, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toSeminarOut(r, s))
}

// handleDeleteSeminar serves DELETE (and form POST) /seminars/delete/{id}.
func handleDeleteSeminar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid seminar id")
		return
	}

	err = orchestrators.ExecuteDeleteSeminar(r.Context(),
		orchestrators.DeleteSeminarInput{SeminarID: id},
		orchestrators.SaveSeminarDeps{SeminarStore: stores.SeminarStore})
	if err != nil {
		jsonError(w, http.StatusNotFound, "Seminar not found")
		return
	}

	if r.Method == http.MethodPost {
		http.Redirect(w, r, "/admin/seminars", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleRegister serves POST /seminars/{id}/register.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid seminar id")
		return
	}

	input := orchestrators.RegisterParticipantInput{SeminarID: id}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Firstname = r.FormValue("firstname")
		input.Lastname = r.FormValue("lastname")
		input.Email = r.FormValue("email")
		input.Remarks = r.FormValue("remarks")
	} else {
		var body struct {
			Firstname string `json:"firstname"`
			Lastname  string `json:"lastname"`
			Email     string `json:"email"`
			Remarks   string `json:"remarks"`
		}
		if err := strictDecode(r, &body); err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid request")
			return
		}
		input.Firstname = body.Firstname
		input.Lastname = body.Lastname
		input.Email = body.Email
		input.Remarks = body.Remarks
	}

	p, err := orchestrators.ExecuteRegisterParticipant(r.Context(), input,
		orchestrators.RegisterParticipantDeps{
			SeminarStore:     stores.SeminarStore,
			ParticipantStore: stores.ParticipantStore,
			LocationStore:    stores.LocationStore,
			EmailSender:      emailSender,
			Now:              timeNow,
			BaseURL:          siteBaseURL,
			AdminEmail:       siteAdminEmail,
			ReplyTo:          emailReplyTo,
		})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, orchestrators.ErrSeminarFull),
			errors.Is(err, orchestrators.ErrRegistrationClosed),
			errors.Is(err, orchestrators.ErrExternalRegistration):
			status = http.StatusForbidden
		case isNotFound(err):
			status = http.StatusNotFound
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "anmeldung.html", map[string]any{
				"Title": "Anmeldung", "Error": err.Error(), "SeminarID": id,
			})
			return
		}
		jsonError(w, status, err.Error())
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "anmeldung.html", map[string]any{
			"Title": "Anmeldung", "Success": true, "SeminarID": id,
		})
		return
	}
	writeJSON(w, http.StatusCreated, toParticipantOut(p))
}

// handleUnregister serves the self-service link (GET) and the API call
// (DELETE) on /seminars/{id}/unregister?token=.
func handleUnregister(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	err := orchestrators.ExecuteUnregisterParticipant(r.Context(),
		orchestrators.UnregisterParticipantInput{Token: token},
		orchestrators.UnregisterParticipantDeps{
			SeminarStore:     stores.SeminarStore,
			ParticipantStore: stores.ParticipantStore,
			Now:              timeNow,
		})

	if r.Method == http.MethodGet {
		data := map[string]any{"Title": "Abmeldung"}
		if err != nil {
			data["Error"] = err.Error()
		} else {
			data["Success"] = true
		}
		renderTemplate(w, r, "abmeldung.html", data)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrTooLateToUnregister):
			jsonError(w, http.StatusForbidden, err.Error())
		default:
			jsonError(w, http.StatusNotFound, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleListParticipants serves GET /seminars/{id}/participants.
func handleListParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid seminar id")
		return
	}
	if _, err := stores.SeminarStore.GetByID(r.Context(), id); err != nil {
		jsonError(w, http.StatusNotFound, "Seminar not found")
		return
	}

	participants, err := stores.ParticipantStore.ListBySeminar(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]participantOut, 0, len(participants))
	for _, p := range participants {
		out = append(out, toParticipantOut(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// locationIn is the venue create/update wire shape.
type locationIn struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	ZipCode     int    `json:"zip_code"`
	City        string `json:"city"`
	Remarks     string `json:"remarks"`
	MapsURL     string `json:"maps_url"`
}

func (in locationIn) toDomain(id int64) locationDomain.Location {
	return locationDomain.Location{
		ID:          id,
		Name:        in.Name,
		Street:      in.Street,
		HouseNumber: in.HouseNumber,
		ZipCode:     in.ZipCode,
		City:        in.City,
		Remarks:     in.Remarks,
		MapsURL:     in.MapsURL,
	}
}

// handleListLocations serves GET /locations/?limit&offset.
func handleListLocations(w http.ResponseWriter, r *http.Request) {
	limit, offset := listutil.ParseLimitOffset(r.URL.Query())
	locations, err := stores.LocationStore.List(r.Context(), locationStore.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]locationOut, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationOut(l))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetLocation serves GET /location/{id}.
func handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid location id")
		return
	}
	l, err := stores.LocationStore.GetByID(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusNotFound, "Location not found")
		return
	}
	writeJSON(w, http.StatusOK, toLocationOut(l))
}

// handleSaveLocation serves POST /locations/ and PUT /locations/{id}, as
// JSON or as the admin HTML form.
func handleSaveLocation(w http.ResponseWriter, r *http.Request) {
	var in locationIn
	var id int64

	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id, _ = strconv.ParseInt(r.FormValue("location_id"), 10, 64)
		in.Name = r.FormValue("name")
		in.Street = r.FormValue("street")
		in.HouseNumber = r.FormValue("house_number")
		in.ZipCode, _ = strconv.Atoi(r.FormValue("zip_code"))
		in.City = r.FormValue("city")
		in.Remarks = r.FormValue("remarks")
		in.MapsURL = r.FormValue("maps_url")
	} else {
		if err := strictDecode(r, &in); err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid request")
			return
		}
	}
	if r.Method == http.MethodPut {
		pid, err := pathID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid location id")
			return
		}
		id = pid
	}

	savedID, err := orchestrators.ExecuteSaveLocation(r.Context(),
		orchestrators.SaveLocationInput{Location: in.toDomain(id)},
		orchestrators.SaveLocationDeps{LocationStore: stores.LocationStore})
	if err != nil {
		if id != 0 && isNotFound(err) {
			jsonError(w, http.StatusNotFound, "Location not found")
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/admin/locations", http.StatusSeeOther)
		return
	}
	l, err := stores.LocationStore.GetByID(r.Context(), savedID)
	if err != nil {
		internalError(w, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toLocationOut(l))
}

// handleDeleteLocation serves DELETE (and form POST) /locations/delete/{id}.
// Seminars referencing the venue are detached, not deleted.
func handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid location id")
		return
	}

	err = orchestrators.ExecuteDeleteLocation(r.Context(),
		orchestrators.DeleteLocationInput{LocationID: id},
		orchestrators.SaveLocationDeps{LocationStore: stores.LocationStore})
	if err != nil {
		jsonError(w, http.StatusNotFound, "Location not found")
		return
	}

	if r.Method == http.MethodPost {
		http.Redirect(w, r, "/admin/locations", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleAdminUnregister removes a participant from the roster view,
// bypassing the 24 hour cutoff.
func handleAdminUnregister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	token := r.FormValue("token")
	seminarID := r.FormValue("seminar_id")

	err := orchestrators.ExecuteUnregisterParticipant(r.Context(),
		orchestrators.UnregisterParticipantInput{Token: token, Force: true},
		orchestrators.UnregisterParticipantDeps{
			SeminarStore:     stores.SeminarStore,
			ParticipantStore: stores.ParticipantStore,
			Now:              timeNow,
		})
	if err != nil {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/seminars/"+seminarID+"/participants", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// isNotFound reports whether the error is a store missing-row error.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
