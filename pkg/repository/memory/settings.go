package memory

import (
	"context"
	"maps"
	"sync"
)

type settingsRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func newSettingsRepository() *settingsRepository {
	return &settingsRepository{
		values: make(map[string]string),
	}
}

func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.values), nil
}

func (r *settingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	maps.Copy(r.values, values)
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}
