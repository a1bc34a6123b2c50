package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

func notFound(err error, what string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goerr.Wrap(model.ErrNotFound, what+" not found", goerr.V(model.ContentIDKey, id))
	}
	return goerr.Wrap(err, "failed to write "+what, goerr.V(model.ContentIDKey, id))
}

func deleteByID(ctx context.Context, pool *pgxpool.Pool, table, what string, id int64) error {
	tag, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete "+what, goerr.V(model.ContentIDKey, id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(model.ErrNotFound, what+" not found", goerr.V(model.ContentIDKey, id))
	}
	return nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode string list")
	}
	return string(raw), nil
}

func decodeStrings(raw []byte) ([]string, error) {
	var v []string
	if len(raw) == 0 {
		return []string{}, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode string list")
	}
	return v, nil
}

// experience

type experienceRepository struct {
	pool *pgxpool.Pool
}

func scanExperience(row pgx.Row) (*model.Experience, error) {
	var e model.Experience
	var details []byte
	if err := row.Scan(&e.ID, &e.Title, &e.Period, &e.Company, &details, &e.SortOrder, &e.CreatedAt); err != nil {
		return nil, err
	}
	list, err := decodeStrings(details)
	if err != nil {
		return nil, err
	}
	e.Details = list
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func (r *experienceRepository) List(ctx context.Context) ([]*model.Experience, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, period, company, details, sort_order, created_at FROM experience ORDER BY sort_order, id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list experience")
	}
	defer rows.Close()

	result := []*model.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan experience")
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate experience")
	}
	return result, nil
}

func (r *experienceRepository) Create(ctx context.Context, e *model.Experience) (*model.Experience, error) {
	details, err := encodeStrings(e.Details)
	if err != nil {
		return nil, err
	}

	created, err := scanExperience(r.pool.QueryRow(ctx, `
		INSERT INTO experience (title, period, company, details, sort_order)
		VALUES ($1, $2, $3, $4::jsonb, $5)
		RETURNING id, title, period, company, details, sort_order, created_at`,
		e.Title, e.Period, e.Company, details, e.SortOrder,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert experience")
	}
	return created, nil
}

func (r *experienceRepository) Update(ctx context.Context, e *model.Experience) (*model.Experience, error) {
	details, err := encodeStrings(e.Details)
	if err != nil {
		return nil, err
	}

	updated, err := scanExperience(r.pool.QueryRow(ctx, `
		UPDATE experience SET title = $2, period = $3, company = $4, details = $5::jsonb, sort_order = $6
		WHERE id = $1
		RETURNING id, title, period, company, details, sort_order, created_at`,
		e.ID, e.Title, e.Period, e.Company, details, e.SortOrder,
	))
	if err != nil {
		return nil, notFound(err, "experience", e.ID)
	}
	return updated, nil
}

func (r *experienceRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "experience", "experience", id)
}

// testimonials

type testimonialRepository struct {
	pool *pgxpool.Pool
}

func scanTestimonial(row pgx.Row) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := row.Scan(&t.ID, &t.VideoURL, &t.Quote, &t.Author, &t.SortOrder, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (r *testimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, video_url, quote, author, sort_order, created_at FROM testimonials ORDER BY sort_order, id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list testimonials")
	}
	defer rows.Close()

	result := []*model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan testimonial")
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate testimonials")
	}
	return result, nil
}

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	created, err := scanTestimonial(r.pool.QueryRow(ctx, `
		INSERT INTO testimonials (video_url, quote, author, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, video_url, quote, author, sort_order, created_at`,
		t.VideoURL, t.Quote, t.Author, t.SortOrder,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert testimonial")
	}
	return created, nil
}

func (r *testimonialRepository) Update(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	updated, err := scanTestimonial(r.pool.QueryRow(ctx, `
		UPDATE testimonials SET video_url = $2, quote = $3, author = $4, sort_order = $5
		WHERE id = $1
		RETURNING id, video_url, quote, author, sort_order, created_at`,
		t.ID, t.VideoURL, t.Quote, t.Author, t.SortOrder,
	))
	if err != nil {
		return nil, notFound(err, "testimonial", t.ID)
	}
	return updated, nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "testimonials", "testimonial", id)
}

// hobbies

type hobbyRepository struct {
	pool *pgxpool.Pool
}

func scanHobby(row pgx.Row) (*model.Hobby, error) {
	var h model.Hobby
	if err := row.Scan(&h.ID, &h.Title, &h.Details, &h.SortOrder, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.CreatedAt = h.CreatedAt.UTC()
	return &h, nil
}

func (r *hobbyRepository) List(ctx context.Context) ([]*model.Hobby, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, details, sort_order, created_at FROM hobbies ORDER BY sort_order, id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list hobbies")
	}
	defer rows.Close()

	result := []*model.Hobby{}
	for rows.Next() {
		h, err := scanHobby(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan hobby")
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate hobbies")
	}
	return result, nil
}

func (r *hobbyRepository) Create(ctx context.Context, h *model.Hobby) (*model.Hobby, error) {
	created, err := scanHobby(r.pool.QueryRow(ctx, `
		INSERT INTO hobbies (title, details, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, title, details, sort_order, created_at`,
		h.Title, h.Details, h.SortOrder,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert hobby")
	}
	return created, nil
}

func (r *hobbyRepository) Update(ctx context.Context, h *model.Hobby) (*model.Hobby, error) {
	updated, err := scanHobby(r.pool.QueryRow(ctx, `
		UPDATE hobbies SET title = $2, details = $3, sort_order = $4
		WHERE id = $1
		RETURNING id, title, details, sort_order, created_at`,
		h.ID, h.Title, h.Details, h.SortOrder,
	))
	if err != nil {
		return nil, notFound(err, "hobby", h.ID)
	}
	return updated, nil
}

func (r *hobbyRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "hobbies", "hobby", id)
}
