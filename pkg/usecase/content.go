package usecase

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

type ContentUseCase struct {
	repo interfaces.Repository

	Experience  *Collection[model.Experience]
	Testimonial *Collection[model.Testimonial]
	Skill       *Collection[model.SkillCategory]
	Hobby       *Collection[model.Hobby]
}

func NewContentUseCase(repo interfaces.Repository) *ContentUseCase {
	return &ContentUseCase{
		repo: repo,
		Experience: &Collection[model.Experience]{
			name:     "experience",
			repo:     repo.Experience,
			validate: (*model.Experience).Validate,
		},
		Testimonial: &Collection[model.Testimonial]{
			name:     "testimonial",
			repo:     repo.Testimonial,
			validate: (*model.Testimonial).Validate,
		},
		Skill: &Collection[model.SkillCategory]{
			name: "skill category",
			repo: repo.Skill,
			validate: func(x *model.SkillCategory) error {
				if err := x.Validate(); err != nil {
					return err
				}
				x.NormalizeItems()
				return nil
			},
		},
		Hobby: &Collection[model.Hobby]{
			name:     "hobby",
			repo:     repo.Hobby,
			validate: (*model.Hobby).Validate,
		},
	}
}

// SiteData loads every public section concurrently.
func (uc *ContentUseCase) SiteData(ctx context.Context) (*model.SiteData, error) {
	data := &model.SiteData{}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		values, err := uc.repo.Settings().GetAll(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load settings")
		}
		data.Settings = model.SiteSettingsFromValues(values)
		return nil
	})
	eg.Go(func() error {
		v, err := uc.repo.PersonalOverview().Get(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load personal overview")
		}
		data.PersonalOverview = v
		return nil
	})
	eg.Go(func() error {
		v, err := uc.repo.Experience().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load experience")
		}
		data.Experience = v
		return nil
	})
	eg.Go(func() error {
		v, err := uc.repo.Testimonial().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load testimonials")
		}
		data.Testimonials = v
		return nil
	})
	eg.Go(func() error {
		v, err := uc.repo.Skill().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load skills")
		}
		data.Skills = v
		return nil
	})
	eg.Go(func() error {
		v, err := uc.repo.Hobby().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load hobbies")
		}
		data.Hobbies = v
		return nil
	})
	eg.Go(func() error {
		v, err := uc.repo.ContactInfo().Get(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load contact info")
		}
		data.ContactInfo = v
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if data.PersonalOverview == nil {
		data.PersonalOverview = &model.PersonalOverview{Traits: []string{}}
	}
	if data.ContactInfo == nil {
		data.ContactInfo = &model.ContactInfo{}
	}
	return data, nil
}

// Settings returns every editable setting with defaults filled in.
func (uc *ContentUseCase) Settings(ctx context.Context) (*model.SiteSettings, error) {
	values, err := uc.repo.Settings().GetAll(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load settings")
	}
	return model.SiteSettingsFromValues(values), nil
}

// UpdateSettings writes a partial update in one atomic upsert.
func (uc *ContentUseCase) UpdateSettings(ctx context.Context, update map[string]string) (*model.SiteSettings, error) {
	if err := model.ValidateSettingsUpdate(update); err != nil {
		return nil, err
	}
	if err := uc.repo.Settings().Upsert(ctx, update); err != nil {
		return nil, goerr.Wrap(err, "failed to update settings")
	}
	return uc.Settings(ctx)
}

func (uc *ContentUseCase) PersonalOverview(ctx context.Context) (*model.PersonalOverview, error) {
	v, err := uc.repo.PersonalOverview().Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load personal overview")
	}
	if v == nil {
		v = &model.PersonalOverview{Traits: []string{}}
	}
	return v, nil
}

func (uc *ContentUseCase) PutPersonalOverview(ctx context.Context, v *model.PersonalOverview) (*model.PersonalOverview, error) {
	saved, err := uc.repo.PersonalOverview().Put(ctx, v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save personal overview")
	}
	return saved, nil
}

func (uc *ContentUseCase) ContactInfo(ctx context.Context) (*model.ContactInfo, error) {
	v, err := uc.repo.ContactInfo().Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load contact info")
	}
	if v == nil {
		v = &model.ContactInfo{}
	}
	return v, nil
}

func (uc *ContentUseCase) PutContactInfo(ctx context.Context, v *model.ContactInfo) (*model.ContactInfo, error) {
	saved, err := uc.repo.ContactInfo().Put(ctx, v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save contact info")
	}
	return saved, nil
}

// Collection is the admin CRUD surface for one ordered content type.
type Collection[T any] struct {
	name     string
	repo     func() interfaces.ContentRepository[T]
	validate func(*T) error
}

func (c *Collection[T]) List(ctx context.Context) ([]*T, error) {
	list, err := c.repo().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list "+c.name)
	}
	return list, nil
}

func (c *Collection[T]) Create(ctx context.Context, entry *T) (*T, error) {
	if err := c.validate(entry); err != nil {
		return nil, err
	}
	created, err := c.repo().Create(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create "+c.name)
	}
	return created, nil
}

func (c *Collection[T]) Update(ctx context.Context, entry *T) (*T, error) {
	if err := c.validate(entry); err != nil {
		return nil, err
	}
	updated, err := c.repo().Update(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update "+c.name)
	}
	return updated, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	if err := c.repo().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete "+c.name, goerr.V(model.ContentIDKey, id))
	}
	return nil
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	Settings     int
	Experience   int
	Testimonials int
	Skills       int
	Hobbies      int
}

// Import writes seed content. Collections that already hold entries are left
// alone unless replace is set, in which case their entries are deleted first.
// Settings and singletons are always written when present.
func (uc *ContentUseCase) Import(ctx context.Context, content *model.SiteContent, replace bool) (*ImportResult, error) {
	result := &ImportResult{}

	if len(content.Settings) > 0 {
		if _, err := uc.UpdateSettings(ctx, content.Settings); err != nil {
			return nil, err
		}
		result.Settings = len(content.Settings)
	}
	if content.PersonalOverview != nil {
		if _, err := uc.PutPersonalOverview(ctx, content.PersonalOverview); err != nil {
			return nil, err
		}
	}
	if content.ContactInfo != nil {
		if _, err := uc.PutContactInfo(ctx, content.ContactInfo); err != nil {
			return nil, err
		}
	}

	var err error
	if result.Experience, err = importInto(ctx, uc.Experience, content.Experience, replace, func(x *model.Experience) int64 { return x.ID }); err != nil {
		return nil, err
	}
	if result.Testimonials, err = importInto(ctx, uc.Testimonial, content.Testimonials, replace, func(x *model.Testimonial) int64 { return x.ID }); err != nil {
		return nil, err
	}
	if result.Skills, err = importInto(ctx, uc.Skill, content.Skills, replace, func(x *model.SkillCategory) int64 { return x.ID }); err != nil {
		return nil, err
	}
	if result.Hobbies, err = importInto(ctx, uc.Hobby, content.Hobbies, replace, func(x *model.Hobby) int64 { return x.ID }); err != nil {
		return nil, err
	}

	return result, nil
}

func importInto[T any](ctx context.Context, c *Collection[T], entries []*T, replace bool, idOf func(*T) int64) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	existing, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		if !replace {
			logging.From(ctx).Info("skip seeding non-empty collection", "collection", c.name, "entries", len(existing))
			return 0, nil
		}
		for _, e := range existing {
			if err := c.Delete(ctx, idOf(e)); err != nil {
				return 0, err
			}
		}
	}

	for _, e := range entries {
		if _, err := c.Create(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}
