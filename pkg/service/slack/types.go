package slack

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/model"
)

// Service posts owner alerts to Slack
type Service interface {
	// NotifySubmission posts a summary of a newly recorded interview request
	NotifySubmission(ctx context.Context, sub *model.Submission) error
}
