package slack

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api       *slack.Client
	channelID string
	slackOpts []slack.Option
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL points the client at a different Slack API base URL
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.slackOpts = append(c.slackOpts, slack.OptionAPIURL(url))
	}
}

// New creates a new Slack service posting to channelID with the provided bot token
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{channelID: channelID}
	for _, opt := range opts {
		opt(c)
	}
	c.api = slack.New(token, c.slackOpts...)

	return c, nil
}

func (c *client) NotifySubmission(ctx context.Context, sub *model.Submission) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(buildSubmissionBlocks(sub)...),
		slack.MsgOptionText(submissionFallbackText(sub), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post submission alert",
			goerr.V("channel_id", c.channelID),
			goerr.V(model.SubmissionIDKey, sub.ID),
		)
	}
	return nil
}
