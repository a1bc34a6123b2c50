package interfaces

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/model"
)

// ContentRepository is the CRUD surface shared by ordered content collections.
type ContentRepository[T any] interface {
	// List returns all entries ordered by sort order, then ID
	List(ctx context.Context) ([]*T, error)

	// Create stores a new entry with a generated ID and creation time
	Create(ctx context.Context, entry *T) (*T, error)

	// Update replaces an existing entry, keeping its creation time
	Update(ctx context.Context, entry *T) (*T, error)

	// Delete deletes an entry by ID
	Delete(ctx context.Context, id int64) error
}

type (
	ExperienceRepository  = ContentRepository[model.Experience]
	TestimonialRepository = ContentRepository[model.Testimonial]
	SkillRepository       = ContentRepository[model.SkillCategory]
	HobbyRepository       = ContentRepository[model.Hobby]
)

type PersonalOverviewRepository interface {
	// Get returns the overview, or nil when none has been saved
	Get(ctx context.Context) (*model.PersonalOverview, error)

	// Put creates or replaces the overview atomically
	Put(ctx context.Context, overview *model.PersonalOverview) (*model.PersonalOverview, error)
}

type ContactInfoRepository interface {
	// Get returns the contact info, or nil when none has been saved
	Get(ctx context.Context) (*model.ContactInfo, error)

	// Put creates or replaces the contact info atomically
	Put(ctx context.Context, info *model.ContactInfo) (*model.ContactInfo, error)
}

type AdminUserRepository interface {
	// Get retrieves an admin by ID
	Get(ctx context.Context, id int64) (*model.AdminUser, error)

	// GetByUsername retrieves an admin by unique username
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)

	// Save creates the admin or replaces the password of an existing one with the same username
	Save(ctx context.Context, username, passwordHash string) (*model.AdminUser, error)

	// UpdatePassword replaces the password hash of an existing admin
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
