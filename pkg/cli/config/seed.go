package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Seed is the initial site content loaded from a TOML file
type Seed struct {
	Settings         map[string]any    `toml:"settings"`
	PersonalOverview *PersonalOverview `toml:"personal_overview"`
	ContactInfo      *ContactInfo      `toml:"contact_info"`
	Experience       []Experience      `toml:"experience"`
	Testimonials     []Testimonial     `toml:"testimonial"`
	Skills           []SkillCategory   `toml:"skill"`
	Hobbies          []Hobby           `toml:"hobby"`
	Admin            *Admin            `toml:"admin"`
}

type PersonalOverview struct {
	AboutMe   string   `toml:"about_me"`
	VideoURL  string   `toml:"video_url"`
	Traits    []string `toml:"traits"`
	Image1URL string   `toml:"image1_url"`
	Image2URL string   `toml:"image2_url"`
}

type ContactInfo struct {
	Name                   string `toml:"name"`
	Tagline                string `toml:"tagline"`
	Email                  string `toml:"email"`
	LinkedInURL            string `toml:"linkedin_url"`
	GitHubURL              string `toml:"github_url"`
	CalendarURL            string `toml:"calendar_url"`
	SpotifyEmbedURL        string `toml:"spotify_embed_url"`
	GoogleCalendarEmbedURL string `toml:"google_calendar_embed_url"`
}

type Experience struct {
	Title   string   `toml:"title"`
	Period  string   `toml:"period"`
	Company string   `toml:"company"`
	Details []string `toml:"details"`
}

type Testimonial struct {
	VideoURL string `toml:"video_url"`
	Quote    string `toml:"quote"`
	Author   string `toml:"author"`
}

type SkillItem struct {
	Name    string `toml:"name"`
	Details string `toml:"details"`
}

type SkillCategory struct {
	Category string      `toml:"category"`
	Items    []SkillItem `toml:"items"`
}

type Hobby struct {
	Title   string `toml:"title"`
	Details string `toml:"details"`
}

// Admin is the bootstrap administrator account
type Admin struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// LoadSeed reads and validates a seed file
func LoadSeed(path string) (*Seed, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V(SeedPathKey, path))
	}

	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(ErrInvalidSeed, "failed to parse TOML seed", goerr.V(SeedPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed validation failed", goerr.V(SeedPathKey, path))
	}

	return &seed, nil
}

// Validate checks every entry with the same rules the admin API applies
func (x *Seed) Validate() error {
	content, err := x.Content()
	if err != nil {
		return err
	}

	if len(content.Settings) > 0 {
		if err := model.ValidateSettingsUpdate(content.Settings); err != nil {
			return goerr.Wrap(ErrInvalidSeed, "invalid settings", goerr.V("cause", err.Error()))
		}
	}
	for i, e := range content.Experience {
		if err := e.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSeed, "invalid experience", goerr.V("index", i), goerr.V("cause", err.Error()))
		}
	}
	for i, e := range content.Testimonials {
		if err := e.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSeed, "invalid testimonial", goerr.V("index", i), goerr.V("cause", err.Error()))
		}
	}
	for i, e := range content.Skills {
		if err := e.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSeed, "invalid skill category", goerr.V("index", i), goerr.V("cause", err.Error()))
		}
	}
	for i, e := range content.Hobbies {
		if err := e.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSeed, "invalid hobby", goerr.V("index", i), goerr.V("cause", err.Error()))
		}
	}

	if x.Admin != nil {
		if strings.TrimSpace(x.Admin.Username) == "" {
			return goerr.Wrap(ErrInvalidSeed, "admin username is required")
		}
		if len(x.Admin.Password) < model.MinPasswordLength {
			return goerr.Wrap(ErrInvalidSeed, "admin password is too short", goerr.V("min", model.MinPasswordLength))
		}
		if len(x.Admin.Password) > model.MaxPasswordLength {
			return goerr.Wrap(ErrInvalidSeed, "admin password is too long", goerr.V("max", model.MaxPasswordLength))
		}
	}

	return nil
}

// Content converts the seed into domain content. Sort order follows file order.
func (x *Seed) Content() (*model.SiteContent, error) {
	settings, err := settingStrings(x.Settings)
	if err != nil {
		return nil, err
	}

	content := &model.SiteContent{Settings: settings}

	if v := x.PersonalOverview; v != nil {
		content.PersonalOverview = &model.PersonalOverview{
			AboutMe:   v.AboutMe,
			VideoURL:  v.VideoURL,
			Traits:    v.Traits,
			Image1URL: v.Image1URL,
			Image2URL: v.Image2URL,
		}
	}
	if v := x.ContactInfo; v != nil {
		content.ContactInfo = &model.ContactInfo{
			Name:                   v.Name,
			Tagline:                v.Tagline,
			Email:                  v.Email,
			LinkedInURL:            v.LinkedInURL,
			GitHubURL:              v.GitHubURL,
			CalendarURL:            v.CalendarURL,
			SpotifyEmbedURL:        v.SpotifyEmbedURL,
			GoogleCalendarEmbedURL: v.GoogleCalendarEmbedURL,
		}
	}

	for i, e := range x.Experience {
		content.Experience = append(content.Experience, &model.Experience{
			Title:     e.Title,
			Period:    e.Period,
			Company:   e.Company,
			Details:   e.Details,
			SortOrder: i,
		})
	}
	for i, e := range x.Testimonials {
		content.Testimonials = append(content.Testimonials, &model.Testimonial{
			VideoURL:  e.VideoURL,
			Quote:     e.Quote,
			Author:    e.Author,
			SortOrder: i,
		})
	}
	for i, e := range x.Skills {
		items := make([]model.SkillItem, len(e.Items))
		for j, item := range e.Items {
			items[j] = model.SkillItem{Name: item.Name, Details: item.Details, SortOrder: j}
		}
		content.Skills = append(content.Skills, &model.SkillCategory{
			Category:  e.Category,
			SortOrder: i,
			Items:     items,
		})
	}
	for i, e := range x.Hobbies {
		content.Hobbies = append(content.Hobbies, &model.Hobby{
			Title:     e.Title,
			Details:   e.Details,
			SortOrder: i,
		})
	}

	return content, nil
}

// settingStrings stores arrays as JSON and everything else in its plain text form
func settingStrings(values map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case string:
			out[key] = v
		case bool:
			out[key] = fmt.Sprintf("%t", v)
		case []any:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to encode setting", goerr.V(model.SettingKeyKey, key))
			}
			out[key] = string(raw)
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out, nil
}
