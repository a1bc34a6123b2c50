package usecase_test

import (
	"context"
	"sync"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/repository/memory"
	"github.com/hireme-dev/hireme/pkg/service/google"
)

// mockGoogleService is a mock implementation of google.Service for testing
type mockGoogleService struct {
	authURLFn    func(state string) string
	exchangeFn   func(ctx context.Context, code string) (string, error)
	newSessionFn func(ctx context.Context, refreshToken string) (google.Session, error)

	mu       sync.Mutex
	sessions int
}

func (m *mockGoogleService) AuthURL(state string) string {
	if m.authURLFn != nil {
		return m.authURLFn(state)
	}
	return "https://accounts.example.com/auth?state=" + state
}

func (m *mockGoogleService) Exchange(ctx context.Context, code string) (string, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return "1//refresh-" + code, nil
}

func (m *mockGoogleService) NewSession(ctx context.Context, refreshToken string) (google.Session, error) {
	m.mu.Lock()
	m.sessions++
	m.mu.Unlock()

	if m.newSessionFn != nil {
		return m.newSessionFn(ctx, refreshToken)
	}
	return &mockSession{}, nil
}

func (m *mockGoogleService) sessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions
}

// mockSession is a mock implementation of google.Session for testing
type mockSession struct {
	identityFn    func(ctx context.Context) (string, error)
	createEventFn func(ctx context.Context, ev *model.CalendarEvent) (string, error)
	sendMailFn    func(ctx context.Context, msg *model.MailMessage) error

	mu     sync.Mutex
	events []*model.CalendarEvent
	mails  []*model.MailMessage
}

func (m *mockSession) Identity(ctx context.Context) (string, error) {
	if m.identityFn != nil {
		return m.identityFn(ctx)
	}
	return "owner@gmail.example.com", nil
}

func (m *mockSession) CreateEvent(ctx context.Context, ev *model.CalendarEvent) (string, error) {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()

	if m.createEventFn != nil {
		return m.createEventFn(ctx, ev)
	}
	return "https://calendar.example.com/event/1", nil
}

func (m *mockSession) SendMail(ctx context.Context, msg *model.MailMessage) error {
	m.mu.Lock()
	m.mails = append(m.mails, msg)
	m.mu.Unlock()

	if m.sendMailFn != nil {
		return m.sendMailFn(ctx, msg)
	}
	return nil
}

// mockSlackService is a mock implementation of slack.Service for testing
type mockSlackService struct {
	notifySubmissionFn func(ctx context.Context, sub *model.Submission) error

	mu       sync.Mutex
	notified []*model.Submission
}

func (m *mockSlackService) NotifySubmission(ctx context.Context, sub *model.Submission) error {
	m.mu.Lock()
	m.notified = append(m.notified, sub)
	m.mu.Unlock()

	if m.notifySubmissionFn != nil {
		return m.notifySubmissionFn(ctx, sub)
	}
	return nil
}

// failingSubmissionRepository rejects every Create with err
type failingSubmissionRepository struct {
	interfaces.SubmissionRepository
	err error
}

func (r *failingSubmissionRepository) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	return nil, r.err
}

// brokenStoreRepository is a memory repository whose submission writes fail
type brokenStoreRepository struct {
	*memory.Memory
	submission *failingSubmissionRepository
}

func newBrokenStoreRepository(err error) *brokenStoreRepository {
	mem := memory.New()
	return &brokenStoreRepository{
		Memory:     mem,
		submission: &failingSubmissionRepository{SubmissionRepository: mem.Submission(), err: err},
	}
}

func (r *brokenStoreRepository) Submission() interfaces.SubmissionRepository {
	return r.submission
}
