package orchestrators

import (
	"fmt"
	"html"
	"strings"
	"time"

	locationDomain "coachsite/internal/domain/location"
	participantDomain "coachsite/internal/domain/participant"
	seminarDomain "coachsite/internal/domain/seminar"
)

// ConfirmationSubject is the subject line of the registration confirmation.
const ConfirmationSubject = "Anmeldebestätigung"

// RegistrationNoticeSubject is the subject of the admin notification.
const RegistrationNoticeSubject = "Neue Anmeldung zu einem Seminar"

// ContactNoticeSubject is the subject of the forwarded contact form.
const ContactNoticeSubject = "Neue Nachricht von der Webseite über Kontaktformular!"

// buildConfirmationBody renders the participant confirmation email. The venue
// block is omitted when the seminar has no location.
func buildConfirmationBody(s seminarDomain.Seminar, loc *locationDomain.Location, unregisterURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hiermit ist Ihre Anmeldung zum Seminar '%s' bestätigt.</p>", html.EscapeString(s.Title))
	fmt.Fprintf(&b, "<p>Das Seminar findet am %s um %s Uhr statt.</p>", html.EscapeString(s.Date), html.EscapeString(s.Time))

	if loc != nil {
		b.WriteString("<p>Adresse:<br>")
		fmt.Fprintf(&b, "%s<br>", html.EscapeString(loc.Name))
		fmt.Fprintf(&b, "%s %s<br>", html.EscapeString(loc.Street), html.EscapeString(loc.HouseNumber))
		fmt.Fprintf(&b, "%s", html.EscapeString(zipCityLine(loc)))
		if loc.Remarks != "" {
			fmt.Fprintf(&b, "<br>Anmerkungen: %s", html.EscapeString(loc.Remarks))
		}
		if loc.MapsURL != "" {
			fmt.Fprintf(&b, `<br>In Google Maps öffnen: <a href="%s">%s</a>`,
				html.EscapeString(loc.MapsURL), html.EscapeString(loc.MapsURL))
		}
		b.WriteString("</p>")
	}

	b.WriteString("<p>Sie können sich unter folgendem Link vom Seminar abmelden. ")
	b.WriteString("Bitte beachten Sie, dass eine Abmeldung nur bis 24 Stunden vor dem Seminar möglich ist.<br>")
	fmt.Fprintf(&b, `<a href="%s">%s</a></p>`, html.EscapeString(unregisterURL), html.EscapeString(unregisterURL))
	return b.String()
}

// buildRegistrationNoticeBody renders the admin notification listing the
// roster as it stands after the new registration.
func buildRegistrationNoticeBody(p participantDomain.Participant, s seminarDomain.Seminar, roster []participantDomain.Participant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Folgende Person hat sich zum Seminar \"%s\" am %s um %s angemeldet:<br>",
		html.EscapeString(s.Title), html.EscapeString(s.Date), html.EscapeString(s.Time))
	fmt.Fprintf(&b, "Name: %s<br>", html.EscapeString(p.FullName()))
	fmt.Fprintf(&b, "Email: %s<br>", html.EscapeString(p.Email))
	fmt.Fprintf(&b, "Anmerkungen: %s</p>", html.EscapeString(p.Remarks))

	b.WriteString("<p>Bisher haben sich folgende Teilnehmer angemeldet:</p><ul>")
	for _, r := range roster {
		fmt.Fprintf(&b, "<li>%s (%s), Anmerkungen: %s</li>",
			html.EscapeString(r.FullName()), html.EscapeString(r.Email), html.EscapeString(r.Remarks))
	}
	b.WriteString("</ul>")
	return b.String()
}

// buildContactNoticeBody renders the forwarded contact form submission.
func buildContactNoticeBody(name, email, subject, body string, sentAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Das Formular wurde am %s gesendet und enthält die folgenden Daten:<br>",
		sentAt.Format("02.01.2006, 15:04 Uhr"))
	fmt.Fprintf(&b, "Name: %s<br>", html.EscapeString(name))
	fmt.Fprintf(&b, "Email-Adresse: %s<br>", html.EscapeString(email))
	fmt.Fprintf(&b, "Betreff: %s</p>", html.EscapeString(subject))
	fmt.Fprintf(&b, "<p>Nachricht:<br>%s</p>", html.EscapeString(body))
	return b.String()
}

func zipCityLine(loc *locationDomain.Location) string {
	if loc.ZipCode == 0 {
		return loc.City
	}
	return fmt.Sprintf("%d %s", loc.ZipCode, loc.City)
}
