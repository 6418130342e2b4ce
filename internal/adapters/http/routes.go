package web

import (
	"net/http"

	"coachsite/internal/adapters/http/middleware"
)

// registerRoutes wires every route. The JSON API keeps the path shapes the
// site has always exposed; the HTML pages live beside them.
func registerRoutes(mux *http.ServeMux) {
	// Public pages
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /seminare", handleSeminarsPage)
	mux.HandleFunc("GET /angebote", handleContentPage("angebote.md", "Angebote"))
	mux.HandleFunc("GET /profil", handleContentPage("profil.md", "Profil"))
	mux.HandleFunc("GET /agb", handleContentPage("agb.md", "AGB"))
	mux.HandleFunc("GET /impressum", handleContentPage("impressum.md", "Impressum"))
	mux.HandleFunc("GET /datenschutz", handleContentPage("datenschutz.md", "Datenschutz"))
	mux.HandleFunc("GET /kontakt", handleContactPage)
	mux.HandleFunc("POST /kontakt", handleContact)
	mux.HandleFunc("POST /kontakt/{$}", handleContact)

	// Seminar API
	mux.HandleFunc("GET /seminars/{$}", handleListSeminars)
	mux.HandleFunc("GET /seminars/count", handleSeminarCount)
	mux.HandleFunc("GET /seminars/latest/{n}", handleLatestSeminars)
	mux.HandleFunc("GET /seminar/{id}", handleGetSeminar)
	mux.Handle("POST /seminars/{$}", middleware.RequireAdmin(http.HandlerFunc(handleSaveSeminar)))
	mux.Handle("PUT /seminars/{id}", middleware.RequireAdmin(http.HandlerFunc(handleSaveSeminar)))
	mux.Handle("DELETE /seminars/delete/{id}", middleware.RequireAdmin(http.HandlerFunc(handleDeleteSeminar)))
	mux.Handle("POST /seminars/delete/{id}", middleware.RequireAdmin(http.HandlerFunc(handleDeleteSeminar)))

	// Registration
	mux.HandleFunc("POST /seminars/{id}/register", handleRegister)
	mux.HandleFunc("GET /seminars/{id}/unregister", handleUnregister)
	mux.HandleFunc("DELETE /seminars/{id}/unregister", handleUnregister)

	// Roster
	mux.Handle("GET /seminars/{id}/participants", middleware.RequireAdmin(http.HandlerFunc(handleListParticipants)))
	mux.Handle("POST /admin/participants/unregister", middleware.RequireAdmin(http.HandlerFunc(handleAdminUnregister)))
	mux.Handle("GET /admin/seminars/{id}/participants.csv", middleware.RequireAdmin(http.HandlerFunc(handleParticipantsCSV)))
	mux.Handle("GET /admin/seminars/{id}/participants", middleware.RequireAdmin(http.HandlerFunc(handleRosterPage)))

	// Location API
	mux.HandleFunc("GET /locations/{$}", handleListLocations)
	mux.HandleFunc("GET /location/{id}", handleGetLocation)
	mux.Handle("POST /locations/{$}", middleware.RequireAdmin(http.HandlerFunc(handleSaveLocation)))
	mux.Handle("PUT /locations/{id}", middleware.RequireAdmin(http.HandlerFunc(handleSaveLocation)))
	mux.Handle("DELETE /locations/delete/{id}", middleware.RequireAdmin(http.HandlerFunc(handleDeleteLocation)))
	mux.Handle("POST /locations/delete/{id}", middleware.RequireAdmin(http.HandlerFunc(handleDeleteLocation)))

	// Admin session
	mux.HandleFunc("POST /admin/token", handleAdminToken)
	mux.HandleFunc("GET /admin/check", handleAdminCheck)
	mux.HandleFunc("POST /admin/logout", handleAdminLogout)

	// Admin pages
	mux.HandleFunc("GET /admin/login", handleAdminLoginPage)
	mux.Handle("GET /admin/{$}", middleware.RequireAdmin(http.HandlerFunc(handleAdminDashboard)))
	mux.Handle("GET /admin/seminars", middleware.RequireAdmin(http.HandlerFunc(handleAdminSeminars)))
	mux.Handle("GET /admin/seminars/new", middleware.RequireAdmin(http.HandlerFunc(handleSeminarForm)))
	mux.Handle("GET /admin/seminars/{id}/edit", middleware.RequireAdmin(http.HandlerFunc(handleSeminarForm)))
	mux.Handle("GET /admin/locations", middleware.RequireAdmin(http.HandlerFunc(handleAdminLocations)))
	mux.Handle("GET /admin/locations/new", middleware.RequireAdmin(http.HandlerFunc(handleLocationForm)))
	mux.Handle("GET /admin/locations/{id}/edit", middleware.RequireAdmin(http.HandlerFunc(handleLocationForm)))
}
