package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/service/google"
	"github.com/hireme-dev/hireme/pkg/service/media"
	"github.com/hireme-dev/hireme/pkg/service/slack"
)

// DefaultRemoteTimeout bounds each call to Google during a notification.
const DefaultRemoteTimeout = 10 * time.Second

type UseCases struct {
	repo            interfaces.Repository
	google          google.Service
	slack           slack.Service
	media           media.Service
	jwtSecret       []byte
	defaultTimezone string
	remoteTimeout   time.Duration

	Submission   *SubmissionUseCase
	Notification *NotificationUseCase
	AccountLink  *AccountLinkUseCase
	Content      *ContentUseCase
	Auth         *AuthUseCase
	Media        *MediaUseCase
}

type Option func(*UseCases)

// WithGoogle enables calendar and email notifications through a linked account
func WithGoogle(svc google.Service) Option {
	return func(uc *UseCases) {
		uc.google = svc
	}
}

// WithSlack enables submission alerts
func WithSlack(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slack = svc
	}
}

// WithMedia enables admin image uploads
func WithMedia(svc media.Service) Option {
	return func(uc *UseCases) {
		uc.media = svc
	}
}

// WithJWTSecret sets the key signing admin tokens and OAuth state. Without it
// a random key is used and tokens do not survive a restart.
func WithJWTSecret(secret []byte) Option {
	return func(uc *UseCases) {
		uc.jwtSecret = secret
	}
}

// WithDefaultTimezone sets the zone used for events when the requester gives none
func WithDefaultTimezone(tz string) Option {
	return func(uc *UseCases) {
		uc.defaultTimezone = tz
	}
}

// WithRemoteTimeout bounds each Google API call
func WithRemoteTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.remoteTimeout = d
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:            repo,
		defaultTimezone: model.DefaultTimezone,
		remoteTimeout:   DefaultRemoteTimeout,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if len(uc.jwtSecret) == 0 {
		uc.jwtSecret = make([]byte, 32)
		_, _ = rand.Read(uc.jwtSecret)
	}

	signer := newTokenSigner(uc.jwtSecret)
	uc.Auth = NewAuthUseCase(repo, signer)
	uc.AccountLink = NewAccountLinkUseCase(repo, uc.google, signer, uc.remoteTimeout)
	uc.Notification = NewNotificationUseCase(repo, uc.AccountLink, uc.defaultTimezone, uc.remoteTimeout)
	uc.Submission = NewSubmissionUseCase(repo, uc.Notification, uc.slack)
	uc.Content = NewContentUseCase(repo)
	uc.Media = NewMediaUseCase(uc.media)

	return uc
}

// Ping checks the backing store is reachable.
func (uc *UseCases) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}
