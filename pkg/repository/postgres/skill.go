package postgres

import (
	"context"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type skillRepository struct {
	pool *pgxpool.Pool
}

// List loads categories and all items with two queries and groups them in memory.
func (r *skillRepository) List(ctx context.Context) ([]*model.SkillCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, category, sort_order, created_at FROM skills ORDER BY sort_order, id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list skills")
	}
	defer rows.Close()

	result := []*model.SkillCategory{}
	byID := make(map[int64]*model.SkillCategory)
	for rows.Next() {
		var s model.SkillCategory
		if err := rows.Scan(&s.ID, &s.Category, &s.SortOrder, &s.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan skill")
		}
		s.CreatedAt = s.CreatedAt.UTC()
		s.Items = []model.SkillItem{}
		result = append(result, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate skills")
	}

	itemRows, err := r.pool.Query(ctx, `SELECT skill_id, name, details, sort_order FROM skill_items ORDER BY skill_id, sort_order, id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list skill items")
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var skillID int64
		var item model.SkillItem
		if err := itemRows.Scan(&skillID, &item.Name, &item.Details, &item.SortOrder); err != nil {
			return nil, goerr.Wrap(err, "failed to scan skill item")
		}
		if s, ok := byID[skillID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate skill items")
	}

	return result, nil
}

func (r *skillRepository) Create(ctx context.Context, s *model.SkillCategory) (*model.SkillCategory, error) {
	created := *s
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO skills (category, sort_order) VALUES ($1, $2)
			RETURNING id, created_at`,
			s.Category, s.SortOrder,
		).Scan(&created.ID, &created.CreatedAt); err != nil {
			return goerr.Wrap(err, "failed to insert skill")
		}
		return insertSkillItems(ctx, tx, created.ID, s.Items)
	})
	if err != nil {
		return nil, err
	}

	created.CreatedAt = created.CreatedAt.UTC()
	created.Items = append([]model.SkillItem{}, s.Items...)
	return &created, nil
}

// Update replaces the category row and all of its items in one transaction.
func (r *skillRepository) Update(ctx context.Context, s *model.SkillCategory) (*model.SkillCategory, error) {
	updated := *s
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			UPDATE skills SET category = $2, sort_order = $3 WHERE id = $1
			RETURNING created_at`,
			s.ID, s.Category, s.SortOrder,
		).Scan(&updated.CreatedAt); err != nil {
			return notFound(err, "skill category", s.ID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM skill_items WHERE skill_id = $1`, s.ID); err != nil {
			return goerr.Wrap(err, "failed to clear skill items", goerr.V(model.ContentIDKey, s.ID))
		}
		return insertSkillItems(ctx, tx, s.ID, s.Items)
	})
	if err != nil {
		return nil, err
	}

	updated.CreatedAt = updated.CreatedAt.UTC()
	updated.Items = append([]model.SkillItem{}, s.Items...)
	return &updated, nil
}

func (r *skillRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "skills", "skill category", id)
}

func insertSkillItems(ctx context.Context, tx pgx.Tx, skillID int64, items []model.SkillItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`INSERT INTO skill_items (skill_id, name, details, sort_order) VALUES ($1, $2, $3, $4)`,
			skillID, item.Name, item.Details, item.SortOrder)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return goerr.Wrap(err, "failed to insert skill items", goerr.V(model.ContentIDKey, skillID))
	}
	return nil
}
