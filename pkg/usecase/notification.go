package usecase

import (
	"context"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/metrics"
	"github.com/hireme-dev/hireme/pkg/service/google"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// NotificationUseCase runs the best-effort side effects of a recorded
// submission. No failure here is returned to the caller.
type NotificationUseCase struct {
	repo            interfaces.Repository
	accountLink     *AccountLinkUseCase
	defaultTimezone string
	timeout         time.Duration
}

func NewNotificationUseCase(repo interfaces.Repository, accountLink *AccountLinkUseCase, defaultTimezone string, timeout time.Duration) *NotificationUseCase {
	return &NotificationUseCase{
		repo:            repo,
		accountLink:     accountLink,
		defaultTimezone: defaultTimezone,
		timeout:         timeout,
	}
}

// Notify creates the calendar event and sends the owner email when possible
// and reports what happened. It runs to completion even if ctx is canceled.
func (uc *NotificationUseCase) Notify(ctx context.Context, sub *model.Submission) *model.NotificationOutcome {
	ctx = context.WithoutCancel(ctx)
	logger := logging.From(ctx).With(model.SubmissionIDKey, sub.ID)
	ctx = logging.With(ctx, logger)

	outcome := &model.NotificationOutcome{}

	contact, err := uc.repo.ContactInfo().Get(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to read contact info", goerr.V(model.SubmissionIDKey, sub.ID)), "owner contact unavailable")
	}
	outcome.AdminEmail = contact.OwnerEmail()

	sess, err := uc.accountLink.session(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to open google session", goerr.V(model.SubmissionIDKey, sub.ID)), "notification automation unavailable")
	}
	if sess == nil {
		logger.Info("google account not linked, skipping calendar and email")
		metrics.RecordNotificationStep(metrics.StepCalendar, metrics.OutcomeSkipped, 0)
		metrics.RecordNotificationStep(metrics.StepEmail, metrics.OutcomeSkipped, 0)
		return outcome
	}

	if sub.HasSchedule() {
		link, ok := uc.createEvent(ctx, sess, sub, contact.OrganizerLabel())
		outcome.CalendarEventCreated = ok
		outcome.CalendarEventLink = link
	} else {
		metrics.RecordNotificationStep(metrics.StepCalendar, metrics.OutcomeSkipped, 0)
	}

	if outcome.AdminEmail != "" {
		outcome.EmailSent = uc.sendMail(ctx, sess, sub, outcome.AdminEmail, outcome.CalendarEventLink)
	} else {
		metrics.RecordNotificationStep(metrics.StepEmail, metrics.OutcomeSkipped, 0)
	}

	logger.Info("notification finished",
		"calendar_event_created", outcome.CalendarEventCreated,
		"email_sent", outcome.EmailSent,
	)
	return outcome
}

func (uc *NotificationUseCase) createEvent(ctx context.Context, sess google.Session, sub *model.Submission, organizer string) (string, bool) {
	loc, zone := model.ResolveLocation(sub.Timezone, uc.defaultTimezone)
	ev, err := model.NewCalendarEvent(sub, organizer, loc, zone)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "cannot build calendar event", goerr.V(StepKey, metrics.StepCalendar)), "calendar event not created")
		metrics.RecordNotificationStep(metrics.StepCalendar, metrics.OutcomeFailure, 0)
		return "", false
	}

	started := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	link, err := sess.CreateEvent(callCtx, ev)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "calendar call failed",
			goerr.V(StepKey, metrics.StepCalendar),
			goerr.V(model.SubmissionIDKey, sub.ID),
		), "calendar event not created")
		metrics.RecordNotificationStep(metrics.StepCalendar, metrics.OutcomeFailure, time.Since(started))
		return "", false
	}

	metrics.RecordNotificationStep(metrics.StepCalendar, metrics.OutcomeSuccess, time.Since(started))
	return link, true
}

func (uc *NotificationUseCase) sendMail(ctx context.Context, sess google.Session, sub *model.Submission, to, eventLink string) bool {
	from := uc.accountLink.identity(ctx, sess)

	msg, err := model.NewNotificationMail(sub, from, to, eventLink)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "cannot build notification mail", goerr.V(StepKey, metrics.StepEmail)), "email not sent")
		metrics.RecordNotificationStep(metrics.StepEmail, metrics.OutcomeFailure, 0)
		return false
	}

	started := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := sess.SendMail(callCtx, msg); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "mail call failed",
			goerr.V(StepKey, metrics.StepEmail),
			goerr.V(model.SubmissionIDKey, sub.ID),
		), "email not sent")
		metrics.RecordNotificationStep(metrics.StepEmail, metrics.OutcomeFailure, time.Since(started))
		return false
	}

	metrics.RecordNotificationStep(metrics.StepEmail, metrics.OutcomeSuccess, time.Since(started))
	return true
}
