package usecase

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/metrics"
	"github.com/hireme-dev/hireme/pkg/service/slack"
	"github.com/hireme-dev/hireme/pkg/utils/async"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type SubmissionUseCase struct {
	repo         interfaces.Repository
	notification *NotificationUseCase
	slack        slack.Service
}

// SubmitResult is the recorded submission and what the notification achieved.
type SubmitResult struct {
	Submission *model.Submission
	Outcome    *model.NotificationOutcome
}

func NewSubmissionUseCase(repo interfaces.Repository, notification *NotificationUseCase, slackSvc slack.Service) *SubmissionUseCase {
	return &SubmissionUseCase{
		repo:         repo,
		notification: notification,
		slack:        slackSvc,
	}
}

// Record validates req and persists it as exactly one new submission.
// Nothing is written when validation fails.
func (uc *SubmissionUseCase) Record(ctx context.Context, req model.ContactRequest) (*model.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Submission().Create(ctx, model.NewSubmission(req))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record submission", goerr.V("email", req.Email))
	}

	metrics.IncrementSubmissionsRecorded()
	logging.From(ctx).Info("submission recorded", model.SubmissionIDKey, created.ID)
	return created, nil
}

// Submit records req and then runs notifications. Only recording errors are returned.
func (uc *SubmissionUseCase) Submit(ctx context.Context, req model.ContactRequest) (*SubmitResult, error) {
	sub, err := uc.Record(ctx, req)
	if err != nil {
		return nil, err
	}

	if uc.slack != nil {
		alert := *sub
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.slack.NotifySubmission(ctx, &alert)
		})
	}

	return &SubmitResult{
		Submission: sub,
		Outcome:    uc.notification.Notify(ctx, sub),
	}, nil
}

// List returns submissions newest first.
func (uc *SubmissionUseCase) List(ctx context.Context, unreadOnly bool) ([]*model.Submission, error) {
	var opts []interfaces.ListSubmissionOption
	if unreadOnly {
		opts = append(opts, interfaces.WithUnreadOnly())
	}

	subs, err := uc.repo.Submission().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list submissions")
	}
	return subs, nil
}

func (uc *SubmissionUseCase) MarkRead(ctx context.Context, id int64) error {
	if err := uc.repo.Submission().MarkRead(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to mark submission read", goerr.V(model.SubmissionIDKey, id))
	}
	return nil
}

func (uc *SubmissionUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Submission().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete submission", goerr.V(model.SubmissionIDKey, id))
	}
	return nil
}
