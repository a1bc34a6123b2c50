package firestore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// contentRepository stores model T as document D in one collection with
// counter-allocated IDs.
type contentRepository[T any, D any] struct {
	client     *firestore.Client
	names      *collectionNames
	collection string
	counter    string
	what       string

	toDoc     func(*T) *D
	toModel   func(*D) *T
	id        func(*T) int64
	sortOrder func(*T) int
	setMeta   func(*T, int64, time.Time)
	createdAt func(*T) time.Time
}

func (r *contentRepository[T, D]) ref() *firestore.CollectionRef {
	return r.client.Collection(r.names.get(r.collection))
}

func (r *contentRepository[T, D]) List(ctx context.Context) ([]*T, error) {
	iter := r.ref().Documents(ctx)
	defer iter.Stop()

	result := []*T{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate "+r.what)
		}

		var doc D
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal "+r.what, goerr.V("doc_id", snap.Ref.ID))
		}
		result = append(result, r.toModel(&doc))
	}

	slices.SortFunc(result, func(a, b *T) int {
		if n := cmp.Compare(r.sortOrder(a), r.sortOrder(b)); n != 0 {
			return n
		}
		return cmp.Compare(r.id(a), r.id(b))
	})
	return result, nil
}

func (r *contentRepository[T, D]) Create(ctx context.Context, entry *T) (*T, error) {
	id, err := nextID(ctx, r.client, r.names, r.counter)
	if err != nil {
		return nil, err
	}

	created := r.toModel(r.toDoc(entry))
	r.setMeta(created, id, time.Now().UTC())

	if _, err := r.ref().Doc(docID(id)).Create(ctx, r.toDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create "+r.what, goerr.V(model.ContentIDKey, id))
	}
	return created, nil
}

// Update replaces the document in a transaction so the stored creation time is kept.
func (r *contentRepository[T, D]) Update(ctx context.Context, entry *T) (*T, error) {
	id := r.id(entry)
	docRef := r.ref().Doc(docID(id))

	var updated *T
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, r.what+" not found", goerr.V(model.ContentIDKey, id))
			}
			return goerr.Wrap(err, "failed to get "+r.what, goerr.V(model.ContentIDKey, id))
		}

		var existing D
		if err := snap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal "+r.what, goerr.V(model.ContentIDKey, id))
		}

		updated = r.toModel(r.toDoc(entry))
		r.setMeta(updated, id, r.createdAt(r.toModel(&existing)))
		return tx.Set(docRef, r.toDoc(updated))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *contentRepository[T, D]) Delete(ctx context.Context, id int64) error {
	if _, err := r.ref().Doc(docID(id)).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrNotFound, r.what+" not found", goerr.V(model.ContentIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete "+r.what, goerr.V(model.ContentIDKey, id))
	}
	return nil
}

type experienceDocument struct {
	ID        int64     `firestore:"id"`
	Title     string    `firestore:"title"`
	Period    string    `firestore:"period"`
	Company   string    `firestore:"company"`
	Details   []string  `firestore:"details"`
	SortOrder int       `firestore:"sort_order"`
	CreatedAt time.Time `firestore:"created_at"`
}

func newExperienceRepository(client *firestore.Client, names *collectionNames) *contentRepository[model.Experience, experienceDocument] {
	return &contentRepository[model.Experience, experienceDocument]{
		client:     client,
		names:      names,
		collection: CollectionExperience,
		counter:    "experience_counter",
		what:       "experience",
		toDoc: func(x *model.Experience) *experienceDocument {
			return &experienceDocument{
				ID: x.ID, Title: x.Title, Period: x.Period, Company: x.Company,
				Details: nonNil(x.Details), SortOrder: x.SortOrder, CreatedAt: x.CreatedAt,
			}
		},
		toModel: func(d *experienceDocument) *model.Experience {
			return &model.Experience{
				ID: d.ID, Title: d.Title, Period: d.Period, Company: d.Company,
				Details: nonNil(d.Details), SortOrder: d.SortOrder, CreatedAt: d.CreatedAt.UTC(),
			}
		},
		id:        func(x *model.Experience) int64 { return x.ID },
		sortOrder: func(x *model.Experience) int { return x.SortOrder },
		setMeta:   func(x *model.Experience, id int64, at time.Time) { x.ID, x.CreatedAt = id, at },
		createdAt: func(x *model.Experience) time.Time { return x.CreatedAt },
	}
}

type testimonialDocument struct {
	ID        int64     `firestore:"id"`
	VideoURL  string    `firestore:"video_url"`
	Quote     string    `firestore:"quote"`
	Author    string    `firestore:"author"`
	SortOrder int       `firestore:"sort_order"`
	CreatedAt time.Time `firestore:"created_at"`
}

func newTestimonialRepository(client *firestore.Client, names *collectionNames) *contentRepository[model.Testimonial, testimonialDocument] {
	return &contentRepository[model.Testimonial, testimonialDocument]{
		client:     client,
		names:      names,
		collection: CollectionTestimonials,
		counter:    "testimonial_counter",
		what:       "testimonial",
		toDoc: func(x *model.Testimonial) *testimonialDocument {
			return &testimonialDocument{
				ID: x.ID, VideoURL: x.VideoURL, Quote: x.Quote, Author: x.Author,
				SortOrder: x.SortOrder, CreatedAt: x.CreatedAt,
			}
		},
		toModel: func(d *testimonialDocument) *model.Testimonial {
			return &model.Testimonial{
				ID: d.ID, VideoURL: d.VideoURL, Quote: d.Quote, Author: d.Author,
				SortOrder: d.SortOrder, CreatedAt: d.CreatedAt.UTC(),
			}
		},
		id:        func(x *model.Testimonial) int64 { return x.ID },
		sortOrder: func(x *model.Testimonial) int { return x.SortOrder },
		setMeta:   func(x *model.Testimonial, id int64, at time.Time) { x.ID, x.CreatedAt = id, at },
		createdAt: func(x *model.Testimonial) time.Time { return x.CreatedAt },
	}
}

type skillItemDocument struct {
	Name      string `firestore:"name"`
	Details   string `firestore:"details"`
	SortOrder int    `firestore:"sort_order"`
}

// skillDocument embeds its items, so replacing them is part of the same document write.
type skillDocument struct {
	ID        int64               `firestore:"id"`
	Category  string              `firestore:"category"`
	SortOrder int                 `firestore:"sort_order"`
	CreatedAt time.Time           `firestore:"created_at"`
	Items     []skillItemDocument `firestore:"items"`
}

func newSkillRepository(client *firestore.Client, names *collectionNames) *contentRepository[model.SkillCategory, skillDocument] {
	return &contentRepository[model.SkillCategory, skillDocument]{
		client:     client,
		names:      names,
		collection: CollectionSkills,
		counter:    "skill_counter",
		what:       "skill category",
		toDoc: func(x *model.SkillCategory) *skillDocument {
			items := make([]skillItemDocument, 0, len(x.Items))
			for _, item := range x.Items {
				items = append(items, skillItemDocument{Name: item.Name, Details: item.Details, SortOrder: item.SortOrder})
			}
			return &skillDocument{
				ID: x.ID, Category: x.Category, SortOrder: x.SortOrder, CreatedAt: x.CreatedAt, Items: items,
			}
		},
		toModel: func(d *skillDocument) *model.SkillCategory {
			items := make([]model.SkillItem, 0, len(d.Items))
			for _, item := range d.Items {
				items = append(items, model.SkillItem{Name: item.Name, Details: item.Details, SortOrder: item.SortOrder})
			}
			slices.SortStableFunc(items, func(a, b model.SkillItem) int {
				return cmp.Compare(a.SortOrder, b.SortOrder)
			})
			return &model.SkillCategory{
				ID: d.ID, Category: d.Category, SortOrder: d.SortOrder, CreatedAt: d.CreatedAt.UTC(), Items: items,
			}
		},
		id:        func(x *model.SkillCategory) int64 { return x.ID },
		sortOrder: func(x *model.SkillCategory) int { return x.SortOrder },
		setMeta:   func(x *model.SkillCategory, id int64, at time.Time) { x.ID, x.CreatedAt = id, at },
		createdAt: func(x *model.SkillCategory) time.Time { return x.CreatedAt },
	}
}

type hobbyDocument struct {
	ID        int64     `firestore:"id"`
	Title     string    `firestore:"title"`
	Details   string    `firestore:"details"`
	SortOrder int       `firestore:"sort_order"`
	CreatedAt time.Time `firestore:"created_at"`
}

func newHobbyRepository(client *firestore.Client, names *collectionNames) *contentRepository[model.Hobby, hobbyDocument] {
	return &contentRepository[model.Hobby, hobbyDocument]{
		client:     client,
		names:      names,
		collection: CollectionHobbies,
		counter:    "hobby_counter",
		what:       "hobby",
		toDoc: func(x *model.Hobby) *hobbyDocument {
			return &hobbyDocument{
				ID: x.ID, Title: x.Title, Details: x.Details, SortOrder: x.SortOrder, CreatedAt: x.CreatedAt,
			}
		},
		toModel: func(d *hobbyDocument) *model.Hobby {
			return &model.Hobby{
				ID: d.ID, Title: d.Title, Details: d.Details, SortOrder: d.SortOrder, CreatedAt: d.CreatedAt.UTC(),
			}
		},
		id:        func(x *model.Hobby) int64 { return x.ID },
		sortOrder: func(x *model.Hobby) int { return x.SortOrder },
		setMeta:   func(x *model.Hobby, id int64, at time.Time) { x.ID, x.CreatedAt = id, at },
		createdAt: func(x *model.Hobby) time.Time { return x.CreatedAt },
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}
