package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type submissionDocument struct {
	ID              int64     `firestore:"id"`
	Name            string    `firestore:"name"`
	Email           string    `firestore:"email"`
	Company         string    `firestore:"company"`
	PreferredDate   string    `firestore:"preferred_date"`
	PreferredTime   string    `firestore:"preferred_time"`
	DurationMinutes int       `firestore:"duration_minutes"`
	Timezone        string    `firestore:"timezone"`
	Message         string    `firestore:"message"`
	Read            bool      `firestore:"read"`
	CreatedAt       time.Time `firestore:"created_at"`
}

func (d *submissionDocument) toModel() *model.Submission {
	return &model.Submission{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Company:         d.Company,
		PreferredDate:   d.PreferredDate,
		PreferredTime:   d.PreferredTime,
		DurationMinutes: d.DurationMinutes,
		Timezone:        d.Timezone,
		Message:         d.Message,
		Read:            d.Read,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

type submissionRepository struct {
	client *firestore.Client
	names  *collectionNames
}

func (r *submissionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.names.get(CollectionSubmissions))
}

func (r *submissionRepository) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	id, err := nextID(ctx, r.client, r.names, "submission_counter")
	if err != nil {
		return nil, err
	}

	doc := &submissionDocument{
		ID:              id,
		Name:            sub.Name,
		Email:           sub.Email,
		Company:         sub.Company,
		PreferredDate:   sub.PreferredDate,
		PreferredTime:   sub.PreferredTime,
		DurationMinutes: sub.DurationMinutes,
		Timezone:        sub.Timezone,
		Message:         sub.Message,
		Read:            false,
		CreatedAt:       time.Now().UTC(),
	}

	if _, err := r.collection().Doc(docID(id)).Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create submission", goerr.V(model.SubmissionIDKey, id))
	}
	return doc.toModel(), nil
}

func (r *submissionRepository) Get(ctx context.Context, id int64) (*model.Submission, error) {
	snap, err := r.collection().Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get submission", goerr.V(model.SubmissionIDKey, id))
	}

	var doc submissionDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal submission", goerr.V(model.SubmissionIDKey, id))
	}
	return doc.toModel(), nil
}

// List orders by created_at descending. The unread filter relies on the
// (read, created_at) composite index created by migrate.
func (r *submissionRepository) List(ctx context.Context, opts ...interfaces.ListSubmissionOption) ([]*model.Submission, error) {
	cfg := interfaces.BuildListSubmissionConfig(opts...)

	q := r.collection().Query
	if cfg.UnreadOnly() {
		q = q.Where("read", "==", false)
	}
	iter := q.OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	subs := []*model.Submission{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate submissions")
		}

		var doc submissionDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal submission", goerr.V("doc_id", snap.Ref.ID))
		}
		subs = append(subs, doc.toModel())
	}
	return subs, nil
}

func (r *submissionRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := r.collection().Doc(docID(id)).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
		}
		return goerr.Wrap(err, "failed to mark submission read", goerr.V(model.SubmissionIDKey, id))
	}
	return nil
}

func (r *submissionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection().Doc(docID(id)).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete submission", goerr.V(model.SubmissionIDKey, id))
	}
	return nil
}
