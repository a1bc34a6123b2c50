package interfaces

import "context"

// SettingsRepository stores the site_settings key-value table.
type SettingsRepository interface {
	// GetAll returns every stored key, including reserved ones
	GetAll(ctx context.Context) (map[string]string, error)

	// Upsert writes all given keys in one atomic operation
	Upsert(ctx context.Context, values map[string]string) error

	// Delete removes the given keys in one atomic operation. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
