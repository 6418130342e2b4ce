package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"coachsite/internal/adapters/http/middleware"
	"coachsite/internal/application/listutil"
	"coachsite/internal/application/orchestrators"
	"coachsite/internal/application/projections"
	contactDomain "coachsite/internal/domain/contact"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// jsonError writes the API error shape: {"detail": "..."}.
func jsonError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

const templatesDir = "internal/adapters/http/templates"
const contentDir = "content"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"currentEmail": func() string { return sess.Email },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"fmtPrice": func(price float64) string {
			return strconv.FormatFloat(price, 'f', 2, 64) + " €"
		},
		"paginationQuery": func(page, perPage int) template.URL {
			return template.URL(fmt.Sprintf("page=%d&per_page=%d", page, perPage))
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// loadContent reads a markdown file from the content directory.
func loadContent(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(contentDir, name))
	if err != nil {
		return "", fmt.Errorf("content %s: %w", name, err)
	}
	return string(raw), nil
}

// handleHome renders the landing page with the next upcoming seminar.
func handleHome(w http.ResponseWriter, r *http.Request) {
	cards, err := projections.QueryGetUpcomingSeminars(r.Context(),
		projections.GetUpcomingSeminarsQuery{Limit: 1, Now: timeNow()},
		projections.GetSeminarCardsDeps{
			SeminarStore:  stores.SeminarStore,
			LocationStore: stores.LocationStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	intro, err := loadContent("index.md")
	if err != nil {
		internalError(w, err)
		return
	}

	data := map[string]any{"Title": "Start", "Intro": intro}
	if len(cards) > 0 {
		data["NextSeminar"] = cards[0]
	}
	renderTemplate(w, r, "home.html", data)
}

// handleSeminarsPage renders the public seminar listing.
func handleSeminarsPage(w http.ResponseWriter, r *http.Request) {
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

	renderTemplate(w, r, "seminars.html", map[string]any{
		"Title":    "Seminare",
		"Cards":    result.Cards,
		"PageInfo": listutil.NewPageInfo(pp.Page, pp.PerPage, result.Total),
	})
}

// handleContentPage returns a handler serving one markdown content page.
func handleContentPage(file, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		md, err := loadContent(file)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "content.html", map[string]any{
			"Title":    title,
			"Markdown": md,
		})
	}
}

// handleContactPage renders the contact form.
func handleContactPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "kontakt.html", map[string]any{"Title": "Kontakt"})
}

// handleContact accepts a contact form submission, as an HTML form or JSON.
func handleContact(w http.ResponseWriter, r *http.Request) {
	var msg contactDomain.Message

	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		msg = contactDomain.Message{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Subject: r.FormValue("subject"),
			Body:    r.FormValue("message"),
		}
	} else {
		var body struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Subject string `json:"subject"`
			Message string `json:"message"`
		}
		if err := strictDecode(r, &body); err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid request")
			return
		}
		msg = contactDomain.Message{Name: body.Name, Email: body.Email, Subject: body.Subject, Body: body.Message}
	}

	err := orchestrators.ExecuteSendContact(r.Context(),
		orchestrators.SendContactInput{Message: msg},
		orchestrators.SendContactDeps{
			EmailSender: emailSender,
			AdminEmail:  siteAdminEmail,
			From:        emailFromAddress,
			Now:         timeNow,
		})
	if err != nil {
		if isHTMLRequest(r) {
			renderTemplate(w, r, "kontakt.html", map[string]any{
				"Title": "Kontakt", "Error": err.Error(), "Form": msg,
			})
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "kontakt.html", map[string]any{"Title": "Kontakt", "Success": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}
