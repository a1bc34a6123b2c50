package google

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/model"
)

// Scopes requested when the owner links an account.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Service performs the OAuth flow and opens API sessions from a stored refresh token.
type Service interface {
	// AuthURL returns the consent page URL. Offline access and forced consent
	// are always requested so the callback carries a refresh token.
	AuthURL(state string) string

	// Exchange trades an authorization code for a refresh token.
	// The returned token is empty when Google did not issue one.
	Exchange(ctx context.Context, code string) (string, error)

	// NewSession builds an authorized client from a refresh token.
	// Sessions are not shared between notification attempts.
	NewSession(ctx context.Context, refreshToken string) (Session, error)
}

// Session is an authorized view of the linked account.
type Session interface {
	// Identity returns the email address of the linked account
	Identity(ctx context.Context) (string, error)

	// CreateEvent inserts the event into the primary calendar, invites the
	// attendee and returns the event's web link
	CreateEvent(ctx context.Context, ev *model.CalendarEvent) (string, error)

	// SendMail sends an HTML email as the linked account
	SendMail(ctx context.Context, msg *model.MailMessage) error
}
