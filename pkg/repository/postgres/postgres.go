package postgres

import (
	"context"
	_ "embed"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed schema.sql
var schema string

type Postgres struct {
	pool             *pgxpool.Pool
	submission       *submissionRepository
	settings         *settingsRepository
	personalOverview *personalOverviewRepository
	contactInfo      *contactInfoRepository
	experience       *experienceRepository
	testimonial      *testimonialRepository
	skill            *skillRepository
	hobby            *hobbyRepository
	adminUser        *adminUserRepository
}

var _ interfaces.Repository = &Postgres{}

type Option func(*pgxpool.Config)

// WithMaxConns overrides the pool size
func WithMaxConns(n int32) Option {
	return func(cfg *pgxpool.Config) {
		cfg.MaxConns = n
	}
}

// WithSearchPath places every table in the given schema. Migrate creates the schema when missing.
func WithSearchPath(schemaName string) Option {
	return func(cfg *pgxpool.Config) {
		cfg.ConnConfig.RuntimeParams["search_path"] = schemaName
	}
}

// New connects to PostgreSQL and verifies the connection with a ping.
func New(ctx context.Context, dsn string, opts ...Option) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse database DSN")
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnIdleTime = time.Minute
	for _, opt := range opts {
		opt(poolCfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to ping database")
	}

	return &Postgres{
		pool:             pool,
		submission:       &submissionRepository{pool: pool},
		settings:         &settingsRepository{pool: pool},
		personalOverview: &personalOverviewRepository{pool: pool},
		contactInfo:      &contactInfoRepository{pool: pool},
		experience:       &experienceRepository{pool: pool},
		testimonial:      &testimonialRepository{pool: pool},
		skill:            &skillRepository{pool: pool},
		hobby:            &hobbyRepository{pool: pool},
		adminUser:        &adminUserRepository{pool: pool},
	}, nil
}

// Migrate creates missing tables and indexes. It is safe to run repeatedly.
func (p *Postgres) Migrate(ctx context.Context) error {
	if name := p.pool.Config().ConnConfig.RuntimeParams["search_path"]; name != "" {
		if _, err := p.pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{name}.Sanitize()); err != nil {
			return goerr.Wrap(err, "failed to create schema", goerr.V("schema", name))
		}
	}
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return goerr.Wrap(err, "failed to apply schema")
	}
	return nil
}

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schema
}

func (p *Postgres) Submission() interfaces.SubmissionRepository {
	return p.submission
}

func (p *Postgres) Settings() interfaces.SettingsRepository {
	return p.settings
}

func (p *Postgres) PersonalOverview() interfaces.PersonalOverviewRepository {
	return p.personalOverview
}

func (p *Postgres) ContactInfo() interfaces.ContactInfoRepository {
	return p.contactInfo
}

func (p *Postgres) Experience() interfaces.ExperienceRepository {
	return p.experience
}

func (p *Postgres) Testimonial() interfaces.TestimonialRepository {
	return p.testimonial
}

func (p *Postgres) Skill() interfaces.SkillRepository {
	return p.skill
}

func (p *Postgres) Hobby() interfaces.HobbyRepository {
	return p.hobby
}

func (p *Postgres) AdminUser() interfaces.AdminUserRepository {
	return p.adminUser
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return goerr.Wrap(err, "failed to ping database")
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
