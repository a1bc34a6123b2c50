package postgres

import (
	"context"
	"errors"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type adminUserRepository struct {
	pool *pgxpool.Pool
}

func scanAdminUser(row pgx.Row) (*model.AdminUser, error) {
	var u model.AdminUser
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *adminUserRepository) Get(ctx context.Context, id int64) (*model.AdminUser, error) {
	u, err := scanAdminUser(r.pool.QueryRow(ctx, `SELECT id, username, password_hash, created_at FROM admin_users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get admin user", goerr.V("id", id))
	}
	return u, nil
}

func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	u, err := scanAdminUser(r.pool.QueryRow(ctx, `SELECT id, username, password_hash, created_at FROM admin_users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V(model.UsernameKey, username))
		}
		return nil, goerr.Wrap(err, "failed to get admin user", goerr.V(model.UsernameKey, username))
	}
	return u, nil
}

func (r *adminUserRepository) Save(ctx context.Context, username, passwordHash string) (*model.AdminUser, error) {
	u, err := scanAdminUser(r.pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id, username, password_hash, created_at`,
		username, passwordHash,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save admin user", goerr.V(model.UsernameKey, username))
	}
	return u, nil
}

func (r *adminUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admin_users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return goerr.Wrap(err, "failed to update admin password", goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V("id", id))
	}
	return nil
}
