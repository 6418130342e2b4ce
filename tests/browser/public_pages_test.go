package browser_test

import (
	"strings"
	"testing"
)

// TestPublicPagesRender walks the public navigation and checks each page
// comes up with its heading.
func TestPublicPagesRender(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	pages := []struct {
		path    string
		heading string
	}{
		{"/", "Willkommen"},
		{"/seminare", "Seminare"},
		{"/angebote", "Angebote"},
		{"/profil", "Profil"},
		{"/kontakt", "Kontakt"},
		{"/agb", "Allgemeine Geschäftsbedingungen"},
		{"/impressum", "Impressum"},
		{"/datenschutz", "Datenschutzerklärung"},
	}
	for _, p := range pages {
		if _, err := page.Goto(app.BaseURL + p.path); err != nil {
			t.Fatalf("%s: %v", p.path, err)
		}
		h1, err := page.Locator("main h1, main h2").First().TextContent()
		if err != nil {
			t.Fatalf("%s: no heading: %v", p.path, err)
		}
		if !strings.Contains(h1, p.heading) {
			t.Errorf("%s: heading %q does not contain %q", p.path, h1, p.heading)
		}
	}
}

// TestSeminarCardShowsOnListing seeds a seminar and checks the public card.
func TestSeminarCardShowsOnListing(t *testing.T) {
	app := newTestApp(t)
	app.seedSeminar(t, "Führung für Einsteiger")
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/seminare"); err != nil {
		t.Fatalf("goto: %v", err)
	}
	card := page.Locator(".card").First()
	title, err := card.Locator("h2").TextContent()
	if err != nil {
		t.Fatalf("card title: %v", err)
	}
	if !strings.Contains(title, "Führung für Einsteiger") {
		t.Errorf("card title = %q", title)
	}
	places, err := card.Locator(".places").TextContent()
	if err != nil {
		t.Fatalf("places: %v", err)
	}
	if !strings.Contains(places, "10") {
		t.Errorf("free places = %q", places)
	}
}

// TestContactFormSubmits fills and submits the contact form.
func TestContactFormSubmits(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/kontakt"); err != nil {
		t.Fatalf("goto: %v", err)
	}
	page.Locator("input[name=name]").Fill("Test Person")
	page.Locator("input[name=email]").Fill("test@example.com")
	page.Locator("input[name=subject]").Fill("Frage zum Seminar")
	page.Locator("textarea[name=message]").Fill("Gibt es noch freie Plätze?")
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	success, err := page.Locator(".success").TextContent()
	if err != nil {
		t.Fatalf("no success message: %v", err)
	}
	if !strings.Contains(success, "Vielen Dank") {
		t.Errorf("success = %q", success)
	}
}
