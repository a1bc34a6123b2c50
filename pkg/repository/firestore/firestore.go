package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names. Tests and multi-site deployments prefix them with WithCollectionPrefix.
const (
	CollectionSubmissions  = "submissions"
	CollectionSite         = "site"
	CollectionExperience   = "experience"
	CollectionTestimonials = "testimonials"
	CollectionSkills       = "skills"
	CollectionHobbies      = "hobbies"
	CollectionAdminUsers   = "admin_users"
	CollectionCounters     = "counters"
)

type Firestore struct {
	client *firestore.Client
	names  *collectionNames

	submission       *submissionRepository
	settings         *settingsRepository
	personalOverview *personalOverviewRepository
	contactInfo      *contactInfoRepository
	experience       *contentRepository[model.Experience, experienceDocument]
	testimonial      *contentRepository[model.Testimonial, testimonialDocument]
	skill            *contentRepository[model.SkillCategory, skillDocument]
	hobby            *contentRepository[model.Hobby, hobbyDocument]
	adminUser        *adminUserRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.names.prefix = prefix
	}
}

type collectionNames struct {
	prefix string
}

func (n *collectionNames) get(name string) string {
	return CollectionName(n.prefix, name)
}

// CollectionName returns the physical collection name for name under prefix.
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	names := &collectionNames{}
	f := &Firestore{
		client:           client,
		names:            names,
		submission:       &submissionRepository{client: client, names: names},
		settings:         &settingsRepository{client: client, names: names},
		personalOverview: &personalOverviewRepository{client: client, names: names},
		contactInfo:      &contactInfoRepository{client: client, names: names},
		experience:       newExperienceRepository(client, names),
		testimonial:      newTestimonialRepository(client, names),
		skill:            newSkillRepository(client, names),
		hobby:            newHobbyRepository(client, names),
		adminUser:        &adminUserRepository{client: client, names: names},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Submission() interfaces.SubmissionRepository {
	return f.submission
}

func (f *Firestore) Settings() interfaces.SettingsRepository {
	return f.settings
}

func (f *Firestore) PersonalOverview() interfaces.PersonalOverviewRepository {
	return f.personalOverview
}

func (f *Firestore) ContactInfo() interfaces.ContactInfoRepository {
	return f.contactInfo
}

func (f *Firestore) Experience() interfaces.ExperienceRepository {
	return f.experience
}

func (f *Firestore) Testimonial() interfaces.TestimonialRepository {
	return f.testimonial
}

func (f *Firestore) Skill() interfaces.SkillRepository {
	return f.skill
}

func (f *Firestore) Hobby() interfaces.HobbyRepository {
	return f.hobby
}

func (f *Firestore) AdminUser() interfaces.AdminUserRepository {
	return f.adminUser
}

// Ping reads the settings document to check connectivity and permissions.
func (f *Firestore) Ping(ctx context.Context) error {
	_, err := f.client.Collection(f.names.get(CollectionSite)).Doc(settingsDocID).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return goerr.Wrap(err, "failed to reach firestore")
	}
	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func docID(id int64) string {
	return fmt.Sprintf("%d", id)
}

// nextID increments the named counter document in a transaction and returns the new value.
func nextID(ctx context.Context, client *firestore.Client, names *collectionNames, counter string) (int64, error) {
	counterRef := client.Collection(names.get(CollectionCounters)).Doc(counter)

	var id int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				id = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": id,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		current, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}
		value, ok := current.(int64)
		if !ok {
			return goerr.New("counter value is not an integer", goerr.V("counter", counter))
		}

		id = value + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: id},
		})
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID", goerr.V("counter", counter))
	}

	return id, nil
}
