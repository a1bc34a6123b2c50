package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Admin user documents are keyed by username, which keeps usernames unique.
type adminUserDocument struct {
	ID           int64     `firestore:"id"`
	Username     string    `firestore:"username"`
	PasswordHash string    `firestore:"password_hash"`
	CreatedAt    time.Time `firestore:"created_at"`
}

func (d *adminUserDocument) toModel() *model.AdminUser {
	return &model.AdminUser{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type adminUserRepository struct {
	client *firestore.Client
	names  *collectionNames
}

func (r *adminUserRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.names.get(CollectionAdminUsers))
}

func (r *adminUserRepository) Get(ctx context.Context, id int64) (*model.AdminUser, error) {
	snap, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var doc adminUserDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal admin user", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	snap, err := r.collection().Doc(username).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V(model.UsernameKey, username))
		}
		return nil, goerr.Wrap(err, "failed to get admin user", goerr.V(model.UsernameKey, username))
	}

	var doc adminUserDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal admin user", goerr.V(model.UsernameKey, username))
	}
	return doc.toModel(), nil
}

func (r *adminUserRepository) Save(ctx context.Context, username, passwordHash string) (*model.AdminUser, error) {
	existing, err := r.GetByUsername(ctx, username)
	if err == nil {
		if err := r.setPassword(ctx, r.collection().Doc(username), passwordHash); err != nil {
			return nil, err
		}
		existing.PasswordHash = passwordHash
		return existing, nil
	}

	id, err := nextID(ctx, r.client, r.names, "admin_user_counter")
	if err != nil {
		return nil, err
	}

	doc := &adminUserDocument{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.collection().Doc(username).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			// created concurrently; fall back to a password update
			return r.Save(ctx, username, passwordHash)
		}
		return nil, goerr.Wrap(err, "failed to create admin user", goerr.V(model.UsernameKey, username))
	}
	return doc.toModel(), nil
}

func (r *adminUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	snap, err := r.findByID(ctx, id)
	if err != nil {
		return err
	}
	return r.setPassword(ctx, snap.Ref, passwordHash)
}

func (r *adminUserRepository) setPassword(ctx context.Context, ref *firestore.DocumentRef, passwordHash string) error {
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "password_hash", Value: passwordHash},
	}); err != nil {
		return goerr.Wrap(err, "failed to update admin password", goerr.V("doc_id", ref.ID))
	}
	return nil
}

func (r *adminUserRepository) findByID(ctx context.Context, id int64) (*firestore.DocumentSnapshot, error) {
	iter := r.collection().Where("id", "==", id).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query admin user", goerr.V("id", id))
	}
	return snap, nil
}
