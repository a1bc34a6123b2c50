package google

import (
	"context"
	"net/http"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	oauthapi "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// client implements Service
type client struct {
	config      *oauth2.Config
	httpClient  *http.Client
	apiEndpoint string
}

type Option func(*client)

// WithOAuthEndpoint overrides the Google OAuth endpoints
func WithOAuthEndpoint(endpoint oauth2.Endpoint) Option {
	return func(c *client) {
		c.config.Endpoint = endpoint
	}
}

// WithAPIEndpoint sends Calendar, Gmail and userinfo requests to the given base URL
func WithAPIEndpoint(url string) Option {
	return func(c *client) {
		c.apiEndpoint = url
	}
}

// WithHTTPClient sets the transport used for token and API requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a Google service for the given OAuth client. redirectURL must
// match the callback registered in the Google Cloud console.
func New(clientID, clientSecret, redirectURL string, opts ...Option) (Service, error) {
	if clientID == "" || clientSecret == "" {
		return nil, goerr.New("Google OAuth client ID and secret are required")
	}
	if redirectURL == "" {
		return nil, goerr.New("Google OAuth redirect URL is required")
	}

	c := &client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     googleoauth.Endpoint,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) AuthURL(state string) string {
	return c.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (c *client) Exchange(ctx context.Context, code string) (string, error) {
	token, err := c.config.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return "", goerr.Wrap(err, "failed to exchange authorization code")
	}
	return token.RefreshToken, nil
}

func (c *client) NewSession(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return nil, goerr.New("refresh token is required")
	}

	ctx = c.oauthContext(ctx)
	ts := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	opts := []option.ClientOption{
		option.WithHTTPClient(oauth2.NewClient(ctx, ts)),
	}
	if c.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(c.apiEndpoint))
	}

	cal, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create calendar client")
	}
	gm, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gmail client")
	}
	userinfo, err := oauthapi.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create userinfo client")
	}

	return &session{
		calendar: cal,
		gmail:    gm,
		userinfo: userinfo,
	}, nil
}

// oauthContext makes the oauth2 package use our transport for token requests.
func (c *client) oauthContext(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

type session struct {
	calendar *calendar.Service
	gmail    *gmail.Service
	userinfo *oauthapi.Service
}

func (s *session) Identity(ctx context.Context) (string, error) {
	info, err := s.userinfo.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get linked account identity")
	}
	return info.Email, nil
}

func (s *session) CreateEvent(ctx context.Context, ev *model.CalendarEvent) (string, error) {
	overrides := make([]*calendar.EventReminder, 0, len(ev.Reminders))
	for _, r := range ev.Reminders {
		overrides = append(overrides, &calendar.EventReminder{
			Method:  r.Method,
			Minutes: int64(r.Minutes),
		})
	}

	event := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: ev.AttendeeEmail},
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := s.calendar.Events.Insert("primary", event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to insert calendar event",
			goerr.V("summary", ev.Summary),
			goerr.V("start", ev.Start),
		)
	}
	return created.HtmlLink, nil
}

func (s *session) SendMail(ctx context.Context, msg *model.MailMessage) error {
	raw, err := encodeMessage(msg, time.Now())
	if err != nil {
		return err
	}

	if _, err := s.gmail.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to send mail", goerr.V("to", msg.To))
	}
	return nil
}
