package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// accessor tells a collection how to read and write the bookkeeping fields of T.
type accessor[T any] struct {
	name      string
	id        func(*T) int64
	setID     func(*T, int64)
	sortOrder func(*T) int
	createdAt func(*T) *time.Time
	clone     func(*T) *T
}

// collection is an ordered content table with auto-increment IDs.
type collection[T any] struct {
	acc     accessor[T]
	mu      sync.RWMutex
	entries map[int64]*T
	nextID  int64
}

func newCollection[T any](acc accessor[T]) *collection[T] {
	return &collection[T]{
		acc:     acc,
		entries: make(map[int64]*T),
		nextID:  1,
	}
}

func (c *collection[T]) List(ctx context.Context) ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*T, 0, len(c.entries))
	for _, e := range c.entries {
		result = append(result, c.acc.clone(e))
	}

	slices.SortFunc(result, func(a, b *T) int {
		if n := cmp.Compare(c.acc.sortOrder(a), c.acc.sortOrder(b)); n != 0 {
			return n
		}
		return cmp.Compare(c.acc.id(a), c.acc.id(b))
	})
	return result, nil
}

func (c *collection[T]) Create(ctx context.Context, entry *T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := c.acc.clone(entry)
	c.acc.setID(created, c.nextID)
	*c.acc.createdAt(created) = time.Now().UTC()
	c.nextID++

	c.entries[c.acc.id(created)] = created
	return c.acc.clone(created), nil
}

func (c *collection[T]) Update(ctx context.Context, entry *T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.acc.id(entry)
	existing, ok := c.entries[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, c.acc.name+" not found", goerr.V(model.ContentIDKey, id))
	}

	updated := c.acc.clone(entry)
	*c.acc.createdAt(updated) = *c.acc.createdAt(existing)
	c.entries[id] = updated
	return c.acc.clone(updated), nil
}

func (c *collection[T]) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return goerr.Wrap(model.ErrNotFound, c.acc.name+" not found", goerr.V(model.ContentIDKey, id))
	}
	delete(c.entries, id)
	return nil
}

func newExperienceCollection() *collection[model.Experience] {
	return newCollection(accessor[model.Experience]{
		name:      "experience",
		id:        func(x *model.Experience) int64 { return x.ID },
		setID:     func(x *model.Experience, id int64) { x.ID = id },
		sortOrder: func(x *model.Experience) int { return x.SortOrder },
		createdAt: func(x *model.Experience) *time.Time { return &x.CreatedAt },
		clone: func(x *model.Experience) *model.Experience {
			c := *x
			c.Details = slices.Clone(x.Details)
			return &c
		},
	})
}

func newTestimonialCollection() *collection[model.Testimonial] {
	return newCollection(accessor[model.Testimonial]{
		name:      "testimonial",
		id:        func(x *model.Testimonial) int64 { return x.ID },
		setID:     func(x *model.Testimonial, id int64) { x.ID = id },
		sortOrder: func(x *model.Testimonial) int { return x.SortOrder },
		createdAt: func(x *model.Testimonial) *time.Time { return &x.CreatedAt },
		clone: func(x *model.Testimonial) *model.Testimonial {
			c := *x
			return &c
		},
	})
}

func newSkillCollection() *collection[model.SkillCategory] {
	return newCollection(accessor[model.SkillCategory]{
		name:      "skill category",
		id:        func(x *model.SkillCategory) int64 { return x.ID },
		setID:     func(x *model.SkillCategory, id int64) { x.ID = id },
		sortOrder: func(x *model.SkillCategory) int { return x.SortOrder },
		createdAt: func(x *model.SkillCategory) *time.Time { return &x.CreatedAt },
		clone: func(x *model.SkillCategory) *model.SkillCategory {
			c := *x
			c.Items = slices.Clone(x.Items)
			return &c
		},
	})
}

func newHobbyCollection() *collection[model.Hobby] {
	return newCollection(accessor[model.Hobby]{
		name:      "hobby",
		id:        func(x *model.Hobby) int64 { return x.ID },
		setID:     func(x *model.Hobby, id int64) { x.ID = id },
		sortOrder: func(x *model.Hobby) int { return x.SortOrder },
		createdAt: func(x *model.Hobby) *time.Time { return &x.CreatedAt },
		clone: func(x *model.Hobby) *model.Hobby {
			c := *x
			return &c
		},
	})
}
