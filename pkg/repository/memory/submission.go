package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type submissionRepository struct {
	mu          sync.RWMutex
	submissions map[int64]*model.Submission
	nextID      int64
}

func newSubmissionRepository() *submissionRepository {
	return &submissionRepository{
		submissions: make(map[int64]*model.Submission),
		nextID:      1,
	}
}

func (r *submissionRepository) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *sub
	created.ID = r.nextID
	created.Read = false
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.submissions[created.ID] = &created
	result := created
	return &result, nil
}

func (r *submissionRepository) Get(ctx context.Context, id int64) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.submissions[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
	}

	// Return a copy to prevent external modification
	result := *sub
	return &result, nil
}

func (r *submissionRepository) List(ctx context.Context, opts ...interfaces.ListSubmissionOption) ([]*model.Submission, error) {
	cfg := interfaces.BuildListSubmissionConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Submission, 0, len(r.submissions))
	for _, sub := range r.submissions {
		if cfg.UnreadOnly() && sub.Read {
			continue
		}
		c := *sub
		result = append(result, &c)
	}

	slices.SortFunc(result, func(a, b *model.Submission) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return result, nil
}

func (r *submissionRepository) MarkRead(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.submissions[id]
	if !ok {
		return goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
	}
	sub.Read = true
	return nil
}

func (r *submissionRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[id]; !ok {
		return goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
	}
	delete(r.submissions, id)
	return nil
}
