package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
)

// singleton holds at most one record. Put swaps the whole value under the lock.
type singleton[T any] struct {
	mu        sync.RWMutex
	value     *T
	clone     func(*T) *T
	updatedAt func(*T) *time.Time
}

func (s *singleton[T]) Get(ctx context.Context) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.value == nil {
		return nil, nil
	}
	return s.clone(s.value), nil
}

func (s *singleton[T]) Put(ctx context.Context, v *T) (*T, error) {
	stored := s.clone(v)
	*s.updatedAt(stored) = time.Now().UTC()

	s.mu.Lock()
	s.value = stored
	s.mu.Unlock()

	return s.clone(stored), nil
}

func newPersonalOverviewStore() *singleton[model.PersonalOverview] {
	return &singleton[model.PersonalOverview]{
		clone: func(x *model.PersonalOverview) *model.PersonalOverview {
			c := *x
			c.Traits = slices.Clone(x.Traits)
			return &c
		},
		updatedAt: func(x *model.PersonalOverview) *time.Time { return &x.UpdatedAt },
	}
}

func newContactInfoStore() *singleton[model.ContactInfo] {
	return &singleton[model.ContactInfo]{
		clone: func(x *model.ContactInfo) *model.ContactInfo {
			c := *x
			return &c
		},
		updatedAt: func(x *model.ContactInfo) *time.Time { return &x.UpdatedAt },
	}
}
