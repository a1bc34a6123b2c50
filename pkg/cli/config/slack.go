package config

import (
	"log/slog"

	"github.com/hireme-dev/hireme/pkg/service/slack"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds the bot used to alert on new submissions
type Slack struct {
	botToken  string
	channelID string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for submission alerts",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("HIREME_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID that receives submission alerts",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("HIREME_SLACK_CHANNEL_ID"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// IsConfigured checks if Slack configuration is complete
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure returns the Slack alert option, or nil when alerts are disabled.
func (x *Slack) Configure() (usecase.Option, error) {
	if x.botToken == "" && x.channelID == "" {
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingSetting, "slack-bot-token and slack-channel-id must be set together")
	}

	svc, err := slack.New(x.botToken, x.channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return usecase.WithSlack(svc), nil
}
