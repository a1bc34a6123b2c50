package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/service/google"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// CallbackPath is where Google returns the browser after consent.
const CallbackPath = "/api/google/callback"

// Google holds the OAuth client used to link the owner's account
type Google struct {
	clientID        string
	clientSecret    string
	baseURL         string
	adminURL        string
	defaultTimezone string
	timeout         time.Duration
}

func (x *Google) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "google-client-id",
			Usage:       "Google OAuth client ID",
			Category:    "Google",
			Sources:     cli.EnvVars("HIREME_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID"),
			Destination: &x.clientID,
		},
		&cli.StringFlag{
			Name:        "google-client-secret",
			Usage:       "Google OAuth client secret",
			Category:    "Google",
			Sources:     cli.EnvVars("HIREME_GOOGLE_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET"),
			Destination: &x.clientSecret,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public base URL of this server (e.g., https://your-domain.com)",
			Category:    "Google",
			Sources:     cli.EnvVars("HIREME_BASE_URL", "URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "admin-url",
			Usage:       "Admin page the consent callback redirects to (defaults to <base-url>/admin)",
			Category:    "Google",
			Sources:     cli.EnvVars("HIREME_ADMIN_URL"),
			Destination: &x.adminURL,
		},
		&cli.StringFlag{
			Name:        "default-timezone",
			Usage:       "IANA zone for interview events when the requester gives none",
			Category:    "Google",
			Value:       model.DefaultTimezone,
			Sources:     cli.EnvVars("HIREME_DEFAULT_TIMEZONE"),
			Destination: &x.defaultTimezone,
		},
		&cli.DurationFlag{
			Name:        "google-timeout",
			Usage:       "Timeout for each Google API call",
			Category:    "Google",
			Value:       usecase.DefaultRemoteTimeout,
			Sources:     cli.EnvVars("HIREME_GOOGLE_TIMEOUT"),
			Destination: &x.timeout,
		},
	}
}

func (x Google) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("client-id.len", len(x.clientID)),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.String("base-url", x.baseURL),
		slog.String("admin-url", x.AdminURL()),
		slog.String("default-timezone", x.defaultTimezone),
		slog.Duration("timeout", x.timeout),
	)
}

// IsConfigured reports whether account linking can be offered
func (x *Google) IsConfigured() bool {
	return x.clientID != "" && x.clientSecret != ""
}

// RedirectURL is the OAuth callback registered with Google
func (x *Google) RedirectURL() string {
	return strings.TrimSuffix(x.baseURL, "/") + CallbackPath
}

// AdminURL is where the callback handler sends the browser afterwards
func (x *Google) AdminURL() string {
	if x.adminURL != "" {
		return x.adminURL
	}
	return strings.TrimSuffix(x.baseURL, "/") + "/admin"
}

// Configure returns use case options for Google notifications. It returns
// only the zone and timeout options when no OAuth client is configured.
func (x *Google) Configure() ([]usecase.Option, error) {
	opts := []usecase.Option{
		usecase.WithDefaultTimezone(x.defaultTimezone),
		usecase.WithRemoteTimeout(x.timeout),
	}

	if !x.IsConfigured() {
		return opts, nil
	}
	if x.baseURL == "" {
		return nil, goerr.Wrap(ErrMissingSetting, "base-url is required to build the Google OAuth callback",
			goerr.V(FlagKey, "base-url"))
	}

	svc, err := google.New(x.clientID, x.clientSecret, x.RedirectURL())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize google service")
	}
	return append(opts, usecase.WithGoogle(svc)), nil
}
