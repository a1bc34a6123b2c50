package http_test

import (
	"context"
	"io"
	"sync"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/repository/memory"
	"github.com/hireme-dev/hireme/pkg/service/google"
)

// mockGoogleService is a mock implementation of google.Service for testing
type mockGoogleService struct {
	exchangeFn func(ctx context.Context, code string) (string, error)
	session    *mockSession
}

func (m *mockGoogleService) AuthURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (m *mockGoogleService) Exchange(ctx context.Context, code string) (string, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return "1//refresh-" + code, nil
}

func (m *mockGoogleService) NewSession(ctx context.Context, refreshToken string) (google.Session, error) {
	if m.session == nil {
		m.session = &mockSession{}
	}
	return m.session, nil
}

// mockSession is a mock implementation of google.Session for testing
type mockSession struct {
	mu     sync.Mutex
	events []*model.CalendarEvent
	mails  []*model.MailMessage
}

func (m *mockSession) Identity(ctx context.Context) (string, error) {
	return "owner@gmail.example.com", nil
}

func (m *mockSession) CreateEvent(ctx context.Context, ev *model.CalendarEvent) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return "https://calendar.example.com/event/1", nil
}

func (m *mockSession) SendMail(ctx context.Context, msg *model.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, msg)
	return nil
}

// mockMediaService is a mock implementation of media.Service for testing
type mockMediaService struct {
	uploaded map[string][]byte
}

func (m *mockMediaService) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.uploaded == nil {
		m.uploaded = map[string][]byte{}
	}
	m.uploaded[filename] = data
	return "https://storage.example.com/media/" + filename, nil
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
