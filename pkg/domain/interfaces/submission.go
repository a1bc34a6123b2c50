package interfaces

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/model"
)

type SubmissionRepository interface {
	// Create stores a new submission with a generated ID, read=false and the current time
	Create(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// Get retrieves a submission by ID
	Get(ctx context.Context, id int64) (*model.Submission, error)

	// List retrieves submissions, newest first
	List(ctx context.Context, opts ...ListSubmissionOption) ([]*model.Submission, error)

	// MarkRead sets the read flag
	MarkRead(ctx context.Context, id int64) error

	// Delete deletes a submission by ID
	Delete(ctx context.Context, id int64) error
}
