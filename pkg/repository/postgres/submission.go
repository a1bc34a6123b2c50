package postgres

import (
	"context"
	"errors"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

const submissionColumns = `id, name, email, company, preferred_date, preferred_time, duration_minutes, timezone, message, read, created_at`

type submissionRepository struct {
	pool *pgxpool.Pool
}

func scanSubmission(row pgx.Row) (*model.Submission, error) {
	var s model.Submission
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Company, &s.PreferredDate, &s.PreferredTime,
		&s.DurationMinutes, &s.Timezone, &s.Message, &s.Read, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

func (r *submissionRepository) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	query := `
		INSERT INTO contact_submissions (name, email, company, preferred_date, preferred_time, duration_minutes, timezone, message, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
		RETURNING ` + submissionColumns

	created, err := scanSubmission(r.pool.QueryRow(ctx, query,
		sub.Name, sub.Email, sub.Company, sub.PreferredDate, sub.PreferredTime,
		sub.DurationMinutes, sub.Timezone, sub.Message,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert submission")
	}
	return created, nil
}

func (r *submissionRepository) Get(ctx context.Context, id int64) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = $1`

	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get submission", goerr.V(model.SubmissionIDKey, id))
	}
	return sub, nil
}

func (r *submissionRepository) List(ctx context.Context, opts ...interfaces.ListSubmissionOption) ([]*model.Submission, error) {
	cfg := interfaces.BuildListSubmissionConfig(opts...)

	query := `SELECT ` + submissionColumns + ` FROM contact_submissions`
	if cfg.UnreadOnly() {
		query += ` WHERE read = false`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list submissions")
	}
	defer rows.Close()

	subs := []*model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan submission")
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate submissions")
	}
	return subs, nil
}

func (r *submissionRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contact_submissions SET read = true WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to mark submission read", goerr.V(model.SubmissionIDKey, id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
	}
	return nil
}

func (r *submissionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete submission", goerr.V(model.SubmissionIDKey, id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(model.ErrNotFound, "submission not found", goerr.V(model.SubmissionIDKey, id))
	}
	return nil
}
