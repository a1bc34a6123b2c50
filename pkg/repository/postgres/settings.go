package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type settingsRepository struct {
	pool *pgxpool.Pool
}

func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM site_settings`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query settings")
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to scan setting")
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate settings")
	}
	return values, nil
}

// Upsert writes every key with one INSERT ... ON CONFLICT statement, so
// readers see either none or all of the new values.
func (r *settingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	vals := make([]string, 0, len(values))
	for k, v := range values {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	query := `
		INSERT INTO site_settings (key, value, updated_at)
		SELECT k, v, now() FROM unnest($1::text[], $2::text[]) AS t(k, v)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, keys, vals); err != nil {
		return goerr.Wrap(err, "failed to upsert settings", goerr.V("keys", keys))
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM site_settings WHERE key = ANY($1)`, keys); err != nil {
		return goerr.Wrap(err, "failed to delete settings", goerr.V("keys", keys))
	}
	return nil
}
