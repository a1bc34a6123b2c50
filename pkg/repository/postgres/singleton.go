package postgres

import (
	"context"
	"errors"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

// Singleton tables are pinned to id = 1 and written with INSERT ... ON CONFLICT.

type personalOverviewRepository struct {
	pool *pgxpool.Pool
}

func scanPersonalOverview(row pgx.Row) (*model.PersonalOverview, error) {
	var p model.PersonalOverview
	var traits []byte
	if err := row.Scan(&p.AboutMe, &p.VideoURL, &traits, &p.Image1URL, &p.Image2URL, &p.UpdatedAt); err != nil {
		return nil, err
	}
	list, err := decodeStrings(traits)
	if err != nil {
		return nil, err
	}
	p.Traits = list
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (r *personalOverviewRepository) Get(ctx context.Context) (*model.PersonalOverview, error) {
	p, err := scanPersonalOverview(r.pool.QueryRow(ctx,
		`SELECT about_me, video_url, traits, image1_url, image2_url, updated_at FROM personal_overview WHERE id = 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get personal overview")
	}
	return p, nil
}

func (r *personalOverviewRepository) Put(ctx context.Context, p *model.PersonalOverview) (*model.PersonalOverview, error) {
	traits, err := encodeStrings(p.Traits)
	if err != nil {
		return nil, err
	}

	stored, err := scanPersonalOverview(r.pool.QueryRow(ctx, `
		INSERT INTO personal_overview (id, about_me, video_url, traits, image1_url, image2_url, updated_at)
		VALUES (1, $1, $2, $3::jsonb, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			about_me = EXCLUDED.about_me,
			video_url = EXCLUDED.video_url,
			traits = EXCLUDED.traits,
			image1_url = EXCLUDED.image1_url,
			image2_url = EXCLUDED.image2_url,
			updated_at = EXCLUDED.updated_at
		RETURNING about_me, video_url, traits, image1_url, image2_url, updated_at`,
		p.AboutMe, p.VideoURL, traits, p.Image1URL, p.Image2URL,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert personal overview")
	}
	return stored, nil
}

type contactInfoRepository struct {
	pool *pgxpool.Pool
}

const contactInfoColumns = `name, tagline, email, linkedin_url, github_url, calendar_url, spotify_embed_url, google_calendar_embed_url, updated_at`

func scanContactInfo(row pgx.Row) (*model.ContactInfo, error) {
	var c model.ContactInfo
	if err := row.Scan(&c.Name, &c.Tagline, &c.Email, &c.LinkedInURL, &c.GitHubURL, &c.CalendarURL,
		&c.SpotifyEmbedURL, &c.GoogleCalendarEmbedURL, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *contactInfoRepository) Get(ctx context.Context) (*model.ContactInfo, error) {
	c, err := scanContactInfo(r.pool.QueryRow(ctx, `SELECT `+contactInfoColumns+` FROM contact_info WHERE id = 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get contact info")
	}
	return c, nil
}

func (r *contactInfoRepository) Put(ctx context.Context, c *model.ContactInfo) (*model.ContactInfo, error) {
	stored, err := scanContactInfo(r.pool.QueryRow(ctx, `
		INSERT INTO contact_info (id, name, tagline, email, linkedin_url, github_url, calendar_url, spotify_embed_url, google_calendar_embed_url, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			tagline = EXCLUDED.tagline,
			email = EXCLUDED.email,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			calendar_url = EXCLUDED.calendar_url,
			spotify_embed_url = EXCLUDED.spotify_embed_url,
			google_calendar_embed_url = EXCLUDED.google_calendar_embed_url,
			updated_at = EXCLUDED.updated_at
		RETURNING `+contactInfoColumns,
		c.Name, c.Tagline, c.Email, c.LinkedInURL, c.GitHubURL, c.CalendarURL, c.SpotifyEmbedURL, c.GoogleCalendarEmbedURL,
	))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert contact info")
	}
	return stored, nil
}
