package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/repository/memory"
	"github.com/hireme-dev/hireme/pkg/service/google"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type notifyFixture struct {
	repo    *memory.Memory
	uc      *usecase.UseCases
	google  *mockGoogleService
	session *mockSession
}

func newNotifyFixture(t *testing.T, linked bool, ownerEmail string, opts ...usecase.Option) *notifyFixture {
	t.Helper()
	ctx := context.Background()

	f := &notifyFixture{
		repo:    memory.New(),
		session: &mockSession{},
	}
	f.google = &mockGoogleService{
		newSessionFn: func(ctx context.Context, refreshToken string) (google.Session, error) {
			return f.session, nil
		},
	}
	f.uc = usecase.New(f.repo, append([]usecase.Option{usecase.WithGoogle(f.google)}, opts...)...)

	if ownerEmail != "" {
		_, err := f.repo.ContactInfo().Put(ctx, &model.ContactInfo{Name: "Sam Owner", Email: ownerEmail})
		gt.NoError(t, err).Required()
	}
	if linked {
		gt.NoError(t, f.uc.AccountLink.Link(ctx, "1//refresh")).Required()
	}
	return f
}

func (f *notifyFixture) submit(t *testing.T, req model.ContactRequest) *model.NotificationOutcome {
	t.Helper()
	result, err := f.uc.Submission.Submit(context.Background(), req)
	gt.NoError(t, err).Required()
	return result.Outcome
}

func TestNotify_NotLinked(t *testing.T) {
	f := newNotifyFixture(t, false, "owner@example.com")

	outcome := f.submit(t, model.ContactRequest{
		Name:          "Jane",
		Email:         "jane@x.com",
		PreferredDate: "2026-03-10",
		PreferredTime: "14:00",
	})

	gt.Bool(t, outcome.CalendarEventCreated).False()
	gt.Bool(t, outcome.EmailSent).False()
	gt.Value(t, outcome.CalendarEventLink).Equal("")
	gt.Value(t, outcome.AdminEmail).Equal("owner@example.com")
	gt.Number(t, f.google.sessionCount()).Equal(0)
}

func TestNotify_GoogleNotConfigured(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()
	gt.NoError(t, uc.AccountLink.Link(ctx, "1//refresh")).Required()

	result, err := uc.Submission.Submit(ctx, model.ContactRequest{
		Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "14:00",
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, result.Outcome.CalendarEventCreated).False()
	gt.Bool(t, result.Outcome.EmailSent).False()
}

func TestNotify_ScheduledAndLinked(t *testing.T) {
	f := newNotifyFixture(t, true, "owner@example.com")

	outcome := f.submit(t, model.ContactRequest{
		Name:              "Jane",
		Email:             "jane@x.com",
		Company:           "Acme",
		PreferredDate:     "2026-03-10",
		PreferredTime:     "14:00",
		InterviewDuration: "45",
		Timezone:          "Europe/Berlin",
	})

	gt.Bool(t, outcome.CalendarEventCreated).True()
	gt.Value(t, outcome.CalendarEventLink).Equal("https://calendar.example.com/event/1")
	gt.Bool(t, outcome.EmailSent).True()
	gt.Value(t, outcome.AdminEmail).Equal("owner@example.com")

	gt.Array(t, f.session.events).Length(1).Required()
	ev := f.session.events[0]
	gt.Value(t, ev.TimeZone).Equal("Europe/Berlin")
	gt.Value(t, ev.Start.Format("15:04")).Equal("14:00")
	gt.Value(t, ev.End.Format("15:04")).Equal("14:45")
	gt.Value(t, ev.AttendeeEmail).Equal("jane@x.com")
	gt.String(t, ev.Summary).Contains("Acme")
	gt.String(t, ev.Description).Contains("Sam Owner")

	gt.Array(t, f.session.mails).Length(1).Required()
	mail := f.session.mails[0]
	gt.Value(t, mail.To).Equal("owner@example.com")
	gt.Value(t, mail.From).Equal("owner@gmail.example.com")
	gt.String(t, mail.HTMLBody).Contains("https://calendar.example.com/event/1")
}

func TestNotify_DefaultDurationAndTimezone(t *testing.T) {
	f := newNotifyFixture(t, true, "", usecase.WithDefaultTimezone("Asia/Tokyo"))

	outcome := f.submit(t, model.ContactRequest{
		Name:          "Jane",
		Email:         "jane@x.com",
		PreferredDate: "2026-03-10",
		PreferredTime: "09:30",
	})
	gt.Bool(t, outcome.CalendarEventCreated).True()
	gt.Bool(t, outcome.EmailSent).False()

	gt.Array(t, f.session.events).Length(1).Required()
	ev := f.session.events[0]
	gt.Value(t, ev.TimeZone).Equal("Asia/Tokyo")
	gt.Value(t, ev.End.Sub(ev.Start)).Equal(30 * time.Minute)
	gt.String(t, ev.Description).Contains(model.DefaultOrganizerLabel)
	gt.Array(t, f.session.mails).Length(0)
}

func TestNotify_PartialScheduleSkipsCalendar(t *testing.T) {
	for _, req := range []model.ContactRequest{
		{Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10"},
		{Name: "Jane", Email: "jane@x.com", PreferredTime: "14:00"},
	} {
		f := newNotifyFixture(t, true, "owner@example.com")
		outcome := f.submit(t, req)

		gt.Bool(t, outcome.CalendarEventCreated).False()
		gt.Array(t, f.session.events).Length(0)
		gt.Bool(t, outcome.EmailSent).True()
	}
}

func TestNotify_CalendarFailureDoesNotBlockEmail(t *testing.T) {
	f := newNotifyFixture(t, true, "owner@example.com")
	f.session.createEventFn = func(ctx context.Context, ev *model.CalendarEvent) (string, error) {
		return "", errors.New("invalid_grant: token has been revoked")
	}

	outcome := f.submit(t, model.ContactRequest{
		Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "14:00",
	})

	gt.Bool(t, outcome.CalendarEventCreated).False()
	gt.Value(t, outcome.CalendarEventLink).Equal("")
	gt.Bool(t, outcome.EmailSent).True()
	gt.Array(t, f.session.mails).Length(1).Required()
	gt.String(t, f.session.mails[0].HTMLBody).NotContains("View calendar event")
}

func TestNotify_MalformedTimeIsCalendarFailure(t *testing.T) {
	f := newNotifyFixture(t, true, "owner@example.com")

	outcome := f.submit(t, model.ContactRequest{
		Name: "Jane", Email: "jane@x.com", PreferredDate: "next tuesday", PreferredTime: "2pm",
	})

	gt.Bool(t, outcome.CalendarEventCreated).False()
	gt.Array(t, f.session.events).Length(0)
	gt.Bool(t, outcome.EmailSent).True()
}

func TestNotify_RemoteTimeout(t *testing.T) {
	f := newNotifyFixture(t, true, "owner@example.com", usecase.WithRemoteTimeout(20*time.Millisecond))
	f.session.createEventFn = func(ctx context.Context, ev *model.CalendarEvent) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}

	outcome := f.submit(t, model.ContactRequest{
		Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "14:00",
	})

	gt.Bool(t, outcome.CalendarEventCreated).False()
	gt.Bool(t, outcome.EmailSent).True()
}

func TestNotify_MailFailureAndIdentityFailure(t *testing.T) {
	t.Run("send failure reports email not sent", func(t *testing.T) {
		f := newNotifyFixture(t, true, "owner@example.com")
		f.session.sendMailFn = func(ctx context.Context, msg *model.MailMessage) error {
			return errors.New("quota exceeded")
		}

		outcome := f.submit(t, model.ContactRequest{Name: "Jane", Email: "jane@x.com"})
		gt.Bool(t, outcome.EmailSent).False()
		gt.Value(t, outcome.AdminEmail).Equal("owner@example.com")
	})

	t.Run("identity failure still sends without sender", func(t *testing.T) {
		f := newNotifyFixture(t, true, "owner@example.com")
		f.session.identityFn = func(ctx context.Context) (string, error) {
			return "", errors.New("userinfo unavailable")
		}

		outcome := f.submit(t, model.ContactRequest{Name: "Jane", Email: "jane@x.com"})
		gt.Bool(t, outcome.EmailSent).True()
		gt.Array(t, f.session.mails).Length(1).Required()
		gt.Value(t, f.session.mails[0].From).Equal("")
	})

	t.Run("session failure skips both steps", func(t *testing.T) {
		f := newNotifyFixture(t, true, "owner@example.com")
		f.google.newSessionFn = func(ctx context.Context, refreshToken string) (google.Session, error) {
			return nil, errors.New("bad credential")
		}

		outcome := f.submit(t, model.ContactRequest{
			Name: "Jane", Email: "jane@x.com", PreferredDate: "2026-03-10", PreferredTime: "14:00",
		})
		gt.Bool(t, outcome.CalendarEventCreated).False()
		gt.Bool(t, outcome.EmailSent).False()
	})
}

func TestNotify_UsesFreshSessionPerAttempt(t *testing.T) {
	f := newNotifyFixture(t, true, "owner@example.com")

	f.submit(t, model.ContactRequest{Name: "A", Email: "a@x.com"})
	f.submit(t, model.ContactRequest{Name: "B", Email: "b@x.com"})
	gt.Number(t, f.google.sessionCount()).Equal(2)

	gt.NoError(t, f.uc.AccountLink.Unlink(context.Background())).Required()
	outcome := f.submit(t, model.ContactRequest{Name: "C", Email: "c@x.com"})
	gt.Bool(t, outcome.EmailSent).False()
	gt.Number(t, f.google.sessionCount()).Equal(2)
}
