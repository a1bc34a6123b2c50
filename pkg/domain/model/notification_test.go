package model_test

import (
	"testing"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestResolveLocation(t *testing.T) {
	loc, name := model.ResolveLocation("Asia/Tokyo", model.DefaultTimezone)
	gt.Value(t, name).Equal("Asia/Tokyo")
	gt.Value(t, loc.String()).Equal("Asia/Tokyo")

	_, name = model.ResolveLocation("", model.DefaultTimezone)
	gt.Value(t, name).Equal(model.DefaultTimezone)

	_, name = model.ResolveLocation("Mars/Olympus_Mons", "Europe/Berlin")
	gt.Value(t, name).Equal("Europe/Berlin")
}

func TestNewCalendarEvent(t *testing.T) {
	loc, zone := model.ResolveLocation("America/Chicago", model.DefaultTimezone)

	t.Run("duration from request", func(t *testing.T) {
		sub := &model.Submission{
			ID:              1,
			Name:            "Jane",
			Email:           "jane@x.com",
			Company:         "Acme",
			PreferredDate:   "2026-03-10",
			PreferredTime:   "14:00",
			DurationMinutes: 45,
			Message:         "Looking forward",
		}

		ev, err := model.NewCalendarEvent(sub, "Sam", loc, zone)
		gt.NoError(t, err).Required()
		gt.Value(t, ev.Start).Equal(time.Date(2026, 3, 10, 14, 0, 0, 0, loc))
		gt.Value(t, ev.End).Equal(time.Date(2026, 3, 10, 14, 45, 0, 0, loc))
		gt.Value(t, ev.TimeZone).Equal("America/Chicago")
		gt.Value(t, ev.AttendeeEmail).Equal("jane@x.com")
		gt.String(t, ev.Summary).Contains("Jane")
		gt.String(t, ev.Summary).Contains("Acme")
		gt.String(t, ev.Description).Contains("Looking forward")
		gt.String(t, ev.Description).Contains("America/Chicago")
		gt.Array(t, ev.Reminders).Length(2)
	})

	t.Run("default duration is 30 minutes", func(t *testing.T) {
		sub := model.NewSubmission(model.ContactRequest{
			Name:          "Jane",
			Email:         "jane@x.com",
			PreferredDate: "2026-03-10",
			PreferredTime: "09:15",
		})

		ev, err := model.NewCalendarEvent(sub, model.DefaultOrganizerLabel, loc, zone)
		gt.NoError(t, err).Required()
		gt.Value(t, ev.End.Sub(ev.Start)).Equal(30 * time.Minute)
		gt.String(t, ev.Summary).NotContains("(")
	})

	t.Run("seconds are ignored", func(t *testing.T) {
		sub := &model.Submission{Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "14:00:59", DurationMinutes: 30}
		ev, err := model.NewCalendarEvent(sub, "Sam", loc, zone)
		gt.NoError(t, err).Required()
		gt.Number(t, ev.Start.Second()).Equal(0)
	})

	t.Run("end past midnight rolls into next day", func(t *testing.T) {
		sub := &model.Submission{Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "23:45", DurationMinutes: 30}
		ev, err := model.NewCalendarEvent(sub, "Sam", loc, zone)
		gt.NoError(t, err).Required()
		gt.Value(t, ev.End).Equal(time.Date(2026, 3, 11, 0, 15, 0, 0, loc))
	})

	t.Run("malformed time fails", func(t *testing.T) {
		sub := &model.Submission{Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "2pm", DurationMinutes: 30}
		_, err := model.NewCalendarEvent(sub, "Sam", loc, zone)
		gt.Value(t, err).NotNil()
	})

	t.Run("requires date and time", func(t *testing.T) {
		sub := &model.Submission{Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10"}
		_, err := model.NewCalendarEvent(sub, "Sam", loc, zone)
		gt.Value(t, err).NotNil()
	})
}

func TestNewNotificationMail(t *testing.T) {
	sub := &model.Submission{
		ID:              9,
		Name:            "Jane <script>",
		Email:           "jane@x.com",
		PreferredDate:   "2026-03-10",
		PreferredTime:   "14:00",
		DurationMinutes: 45,
		Timezone:        "Asia/Tokyo",
		Message:         "Hello & welcome",
	}

	msg, err := model.NewNotificationMail(sub, "owner@gmail.com", "owner@example.com", "https://calendar.google.com/event?eid=abc")
	gt.NoError(t, err).Required()
	gt.Value(t, msg.To).Equal("owner@example.com")
	gt.Value(t, msg.From).Equal("owner@gmail.com")
	gt.String(t, msg.Subject).Contains("Jane")
	gt.String(t, msg.HTMLBody).Contains("Jane &lt;script&gt;")
	gt.String(t, msg.HTMLBody).Contains("45 minutes")
	gt.String(t, msg.HTMLBody).Contains("Hello &amp; welcome")
	gt.String(t, msg.HTMLBody).Contains("https://calendar.google.com/event?eid=abc")
	gt.String(t, msg.HTMLBody).NotContains("Company")

	noLink, err := model.NewNotificationMail(sub, "", "owner@example.com", "")
	gt.NoError(t, err).Required()
	gt.String(t, noLink.HTMLBody).NotContains("View calendar event")
}

func TestContactInfoLabels(t *testing.T) {
	var none *model.ContactInfo
	gt.Value(t, none.OwnerEmail()).Equal("")
	gt.Value(t, none.OrganizerLabel()).Equal(model.DefaultOrganizerLabel)

	info := &model.ContactInfo{Name: "Sam Lee", Email: " sam@example.com "}
	gt.Value(t, info.OwnerEmail()).Equal("sam@example.com")
	gt.Value(t, info.OrganizerLabel()).Equal("Sam Lee")
}
