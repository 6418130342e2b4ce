package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"coachsite/internal/adapters/http/middleware"
	locationStore "coachsite/internal/adapters/storage/location"
	"coachsite/internal/application/listutil"
	"coachsite/internal/application/orchestrators"
	"coachsite/internal/application/projections"
	seminarDomain "coachsite/internal/domain/seminar"
)

// handleAdminToken serves POST /admin/token: credentials in, session cookie
// out. Accepts the login form (username/password fields) or JSON.
func handleAdminToken(w http.ResponseWriter, r *http.Request) {
	var email, password string

	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		email = r.FormValue("username")
		password = r.FormValue("password")
	} else {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := strictDecode(r, &body); err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid request")
			return
		}
		email = body.Email
		password = body.Password
	}

	result, err := orchestrators.ExecuteLogin(r.Context(),
		orchestrators.LoginInput{Email: email, Password: password},
		orchestrators.LoginDeps{AccountStore: stores.AccountStore, Now: timeNow})
	if err != nil {
		status := http.StatusUnauthorized
		detail := "Incorrect username or password"
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			status = http.StatusLocked
			detail = err.Error()
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_login.html", map[string]any{
				"Title": "Login", "Error": detail, "Email": email,
			})
			return
		}
		jsonError(w, status, detail)
		return
	}

	token, err := middleware.IssueToken(jwtSecret, result.AccountID, result.Email, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// handleAdminCheck reports whether the caller holds a valid session.
func handleAdminCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		jsonError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

func handleAdminLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "admin_login.html", map[string]any{"Title": "Login"})
}

// handleAdminDashboard renders the admin landing page with headline counts.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	seminarCount, err := stores.SeminarStore.Count(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	locationCount, err := stores.LocationStore.Count(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_dashboard.html", map[string]any{
		"Title":         "Verwaltung",
		"SeminarCount":  seminarCount,
		"LocationCount": locationCount,
	})
}

// handleAdminSeminars renders the paginated seminar management table.
func handleAdminSeminars(w http.ResponseWriter, r *http.Request) {
	pp := listutil.ParsePageParams(r.URL.Query())

	result, err := projections.QueryGetSeminarCards(r.Context(),
		projections.GetSeminarCardsQuery{
			Limit:  pp.PerPage,
			Offset: (pp.Page - 1) * pp.PerPage,
			Now:    timeNow(),
		},
		projections.GetSeminarCardsDeps{
			SeminarStore:  stores.SeminarStore,
			LocationStore: stores.LocationStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_seminars.html", map[string]any{
		"Title":    "Seminare verwalten",
		"Cards":    result.Cards,
		"PageInfo": listutil.NewPageInfo(pp.Page, pp.PerPage, result.Total),
	})
}

// handleSeminarForm renders the create/edit form. With an {id} path segment
// the form is prefilled and submits as an update.
func handleSeminarForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":     "Seminar anlegen",
		"ImageKeys": seminarDomain.ImageKeys,
	}

	if idStr := r.PathValue("id"); idStr != "" {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid seminar id", http.StatusBadRequest)
			return
		}
		s, err := stores.SeminarStore.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Seminar not found", http.StatusNotFound)
			return
		}
		data["Title"] = "Seminar bearbeiten"
		data["Seminar"] = s
		data["HasPrice"] = s.HasPrice()
	}

	// Wide enough for a form select; the venue catalog stays small.
	locations, err := stores.LocationStore.List(r.Context(), locationStore.ListFilter{Limit: listutil.MaxLimit})
	if err != nil {
		internalError(w, err)
		return
	}
	data["Locations"] = locations

	renderTemplate(w, r, "admin_seminar_form.html", data)
}

// handleAdminLocations renders the paginated venue table.
func handleAdminLocations(w http.ResponseWriter, r *http.Request) {
	pp := listutil.ParsePageParams(r.URL.Query())

	result, err := projections.QueryGetLocationList(r.Context(),
		projections.GetLocationListQuery{Page: pp.Page, PerPage: pp.PerPage},
		projections.GetLocationListDeps{LocationStore: stores.LocationStore})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_locations.html", map[string]any{
		"Title":     "Orte verwalten",
		"Locations": result.Locations,
		"PageInfo":  result.PageInfo,
	})
}

func handleLocationForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Ort anlegen"}

	if idStr := r.PathValue("id"); idStr != "" {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid location id", http.StatusBadRequest)
			return
		}
		l, err := stores.LocationStore.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Location not found", http.StatusNotFound)
			return
		}
		data["Title"] = "Ort bearbeiten"
		data["Location"] = l
	}

	renderTemplate(w, r, "admin_location_form.html", data)
}

// handleRosterPage renders the participant roster of one seminar, with the
// bcc mailto link and per-row removal.
func handleRosterPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid seminar id", http.StatusBadRequest)
		return
	}

	roster, err := projections.QueryGetParticipantRoster(r.Context(),
		projections.GetParticipantRosterQuery{SeminarID: id},
		projections.GetParticipantRosterDeps{
			SeminarStore:     stores.SeminarStore,
			ParticipantStore: stores.ParticipantStore,
		})
	if err != nil {
		http.Error(w, "Seminar not found", http.StatusNotFound)
		return
	}

	renderTemplate(w, r, "admin_roster.html", map[string]any{
		"Title":  "Teilnehmer: " + roster.SeminarTitle,
		"Roster": roster,
	})
}

// handleParticipantsCSV exports a seminar roster as a CSV download.
func handleParticipantsCSV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid seminar id", http.StatusBadRequest)
		return
	}

	roster, err := projections.QueryGetParticipantRoster(r.Context(),
		projections.GetParticipantRosterQuery{SeminarID: id},
		projections.GetParticipantRosterDeps{
			SeminarStore:     stores.SeminarStore,
			ParticipantStore: stores.ParticipantStore,
		})
	if err != nil {
		http.Error(w, "Seminar not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="teilnehmer-seminar-%d.csv"`, id))

	cw := csv.NewWriter(w)
	cw.Write([]string{"Name", "E-Mail", "Anmerkungen"})
	for _, row := range roster.Rows {
		cw.Write([]string{row.FullName, row.Email, row.Remarks})
	}
	cw.Flush()
	// Headers are already on the wire, so a write failure can only be logged.
	if err := cw.Error(); err != nil {
		slog.Error("csv_export_failed", "seminar_id", id, "error", err)
	}
}
