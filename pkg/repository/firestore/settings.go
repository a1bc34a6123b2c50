package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	settingsDocID         = "settings"
	personalOverviewDocID = "personal_overview"
	contactInfoDocID      = "contact_info"
)

// settingsRepository keeps every setting as a field of one document, so a
// multi-key upsert is a single atomic document write.
type settingsRepository struct {
	client *firestore.Client
	names  *collectionNames
}

func (r *settingsRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(r.names.get(CollectionSite)).Doc(settingsDocID)
}

func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return map[string]string{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get settings")
	}

	values := make(map[string]string)
	for k, v := range snap.Data() {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return values, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	data := make(map[string]interface{}, len(values))
	for k, v := range values {
		data[k] = v
	}
	if _, err := r.doc().Set(ctx, data, firestore.MergeAll); err != nil {
		return goerr.Wrap(err, "failed to upsert settings")
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: firestore.Delete})
	}
	if _, err := r.doc().Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete settings", goerr.V("keys", keys))
	}
	return nil
}
