package model

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultTimezone is used for calendar events when the requester gives none
// or gives a zone that cannot be loaded.
const DefaultTimezone = "America/New_York"

// Reminder is one calendar notification ahead of an event.
type Reminder struct {
	Method  string
	Minutes int
}

// EventReminders is the fixed reminder policy: one day before and 30 minutes before.
var EventReminders = []Reminder{
	{Method: "email", Minutes: 24 * 60},
	{Method: "popup", Minutes: 30},
}

// CalendarEvent is derived from a submission for one notification attempt and is never persisted.
type CalendarEvent struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	TimeZone      string
	AttendeeEmail string
	Reminders     []Reminder
}

// NotificationOutcome reports which best-effort side effects succeeded.
type NotificationOutcome struct {
	CalendarEventCreated bool
	CalendarEventLink    string
	EmailSent            bool
	AdminEmail           string
}

// MailMessage is an HTML email sent through the linked account.
type MailMessage struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// ResolveLocation loads the requester's zone, falling back to fallback and
// then to DefaultTimezone. It returns the location and its zone name.
func ResolveLocation(name, fallback string) (*time.Location, string) {
	for _, candidate := range []string{strings.TrimSpace(name), fallback, DefaultTimezone} {
		if candidate == "" {
			continue
		}
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc, candidate
		}
	}
	return time.UTC, "UTC"
}

// NewCalendarEvent builds the event for a scheduled submission. The end time
// is start plus the duration; an end past midnight lands on the next day.
func NewCalendarEvent(sub *Submission, organizer string, loc *time.Location, zoneName string) (*CalendarEvent, error) {
	if !sub.HasSchedule() {
		return nil, goerr.New("submission has no preferred date and time", goerr.V(SubmissionIDKey, sub.ID))
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", sub.PreferredDate+" "+clockHHMM(sub.PreferredTime), loc)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid preferred date or time",
			goerr.V(SubmissionIDKey, sub.ID),
			goerr.V("preferred_date", sub.PreferredDate),
			goerr.V("preferred_time", sub.PreferredTime),
		)
	}

	duration := sub.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	summary := "Interview: " + sub.Name
	if sub.Company != "" {
		summary += " (" + sub.Company + ")"
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Interview request from %s\n", sub.Name)
	fmt.Fprintf(&desc, "Organizer: %s\n", organizer)
	fmt.Fprintf(&desc, "Email: %s\n", sub.Email)
	if sub.Company != "" {
		fmt.Fprintf(&desc, "Company: %s\n", sub.Company)
	}
	if sub.Message != "" {
		fmt.Fprintf(&desc, "Message: %s\n", sub.Message)
	}
	fmt.Fprintf(&desc, "Timezone: %s", zoneName)

	return &CalendarEvent{
		Summary:       summary,
		Description:   desc.String(),
		Start:         start,
		End:           start.Add(time.Duration(duration) * time.Minute),
		TimeZone:      zoneName,
		AttendeeEmail: sub.Email,
		Reminders:     EventReminders,
	}, nil
}

// clockHHMM drops seconds from "HH:MM:SS".
func clockHHMM(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) >= 2 {
		return parts[0] + ":" + parts[1]
	}
	return s
}

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

var notificationMailTemplate = template.Must(template.New("notification").Parse(`<h2>New interview request</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>
{{end}}{{if .PreferredDate}}<p><strong>Preferred date:</strong> {{.PreferredDate}}</p>
{{end}}{{if .PreferredTime}}<p><strong>Preferred time:</strong> {{.PreferredTime}}{{if .Timezone}} ({{.Timezone}}){{end}}</p>
{{end}}<p><strong>Duration:</strong> {{.DurationMinutes}} minutes</p>
{{if .Message}}<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
{{end}}{{if .EventLink}}<p><a href="{{.EventLink}}">View calendar event</a></p>
{{end}}`))

// NewNotificationMail renders the owner notification for a submission.
func NewNotificationMail(sub *Submission, from, to, eventLink string) (*MailMessage, error) {
	data := struct {
		*Submission
		EventLink string
	}{
		Submission: sub,
		EventLink:  eventLink,
	}

	var buf bytes.Buffer
	if err := notificationMailTemplate.Execute(&buf, data); err != nil {
		return nil, goerr.Wrap(err, "failed to render notification mail", goerr.V(SubmissionIDKey, sub.ID))
	}

	return &MailMessage{
		From:     from,
		To:       to,
		Subject:  "New interview request from " + headerSafe.Replace(sub.Name),
		HTMLBody: buf.String(),
	}, nil
}
