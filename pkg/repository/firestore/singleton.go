package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type personalOverviewDocument struct {
	AboutMe   string    `firestore:"about_me"`
	VideoURL  string    `firestore:"video_url"`
	Traits    []string  `firestore:"traits"`
	Image1URL string    `firestore:"image1_url"`
	Image2URL string    `firestore:"image2_url"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type personalOverviewRepository struct {
	client *firestore.Client
	names  *collectionNames
}

func (r *personalOverviewRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(r.names.get(CollectionSite)).Doc(personalOverviewDocID)
}

func (r *personalOverviewRepository) Get(ctx context.Context) (*model.PersonalOverview, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get personal overview")
	}

	var doc personalOverviewDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal personal overview")
	}
	return doc.toModel(), nil
}

func (r *personalOverviewRepository) Put(ctx context.Context, p *model.PersonalOverview) (*model.PersonalOverview, error) {
	traits := p.Traits
	if traits == nil {
		traits = []string{}
	}
	doc := &personalOverviewDocument{
		AboutMe:   p.AboutMe,
		VideoURL:  p.VideoURL,
		Traits:    traits,
		Image1URL: p.Image1URL,
		Image2URL: p.Image2URL,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.doc().Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put personal overview")
	}
	return doc.toModel(), nil
}

func (d *personalOverviewDocument) toModel() *model.PersonalOverview {
	traits := d.Traits
	if traits == nil {
		traits = []string{}
	}
	return &model.PersonalOverview{
		AboutMe:   d.AboutMe,
		VideoURL:  d.VideoURL,
		Traits:    traits,
		Image1URL: d.Image1URL,
		Image2URL: d.Image2URL,
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type contactInfoDocument struct {
	Name                   string    `firestore:"name"`
	Tagline                string    `firestore:"tagline"`
	Email                  string    `firestore:"email"`
	LinkedInURL            string    `firestore:"linkedin_url"`
	GitHubURL              string    `firestore:"github_url"`
	CalendarURL            string    `firestore:"calendar_url"`
	SpotifyEmbedURL        string    `firestore:"spotify_embed_url"`
	GoogleCalendarEmbedURL string    `firestore:"google_calendar_embed_url"`
	UpdatedAt              time.Time `firestore:"updated_at"`
}

type contactInfoRepository struct {
	client *firestore.Client
	names  *collectionNames
}

func (r *contactInfoRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(r.names.get(CollectionSite)).Doc(contactInfoDocID)
}

func (r *contactInfoRepository) Get(ctx context.Context) (*model.ContactInfo, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get contact info")
	}

	var doc contactInfoDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal contact info")
	}
	return doc.toModel(), nil
}

func (r *contactInfoRepository) Put(ctx context.Context, c *model.ContactInfo) (*model.ContactInfo, error) {
	doc := &contactInfoDocument{
		Name:                   c.Name,
		Tagline:                c.Tagline,
		Email:                  c.Email,
		LinkedInURL:            c.LinkedInURL,
		GitHubURL:              c.GitHubURL,
		CalendarURL:            c.CalendarURL,
		SpotifyEmbedURL:        c.SpotifyEmbedURL,
		GoogleCalendarEmbedURL: c.GoogleCalendarEmbedURL,
		UpdatedAt:              time.Now().UTC(),
	}
	if _, err := r.doc().Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put contact info")
	}
	return doc.toModel(), nil
}

func (d *contactInfoDocument) toModel() *model.ContactInfo {
	return &model.ContactInfo{
		Name:                   d.Name,
		Tagline:                d.Tagline,
		Email:                  d.Email,
		LinkedInURL:            d.LinkedInURL,
		GitHubURL:              d.GitHubURL,
		CalendarURL:            d.CalendarURL,
		SpotifyEmbedURL:        d.SpotifyEmbedURL,
		GoogleCalendarEmbedURL: d.GoogleCalendarEmbedURL,
		UpdatedAt:              d.UpdatedAt.UTC(),
	}
}
