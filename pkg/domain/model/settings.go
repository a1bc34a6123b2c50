package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Site settings keys editable by the owner.
const (
	SettingHeroTitle          = "hero_title"
	SettingHeroTagline1       = "hero_tagline1"
	SettingHeroTagline2       = "hero_tagline2"
	SettingHeroDescription    = "hero_description"
	SettingHeroSubdescription = "hero_subdescription"
	SettingHeroBullets        = "hero_bullets"
	SettingCopyrightText      = "copyright_text"

	SettingPagePersonal     = "page_personal_enabled"
	SettingPageExperience   = "page_experience_enabled"
	SettingPageTestimonials = "page_testimonials_enabled"
	SettingPageSkills       = "page_skills_enabled"
	SettingPageHobbies      = "page_hobbies_enabled"
	SettingPageContact      = "page_contact_enabled"
)

const reservedSettingPrefix = "google_"

// HeroSettings is the landing section text.
type HeroSettings struct {
	Title          string
	Tagline1       string
	Tagline2       string
	Description    string
	Subdescription string
	Bullets        []string
}

// PageVisibility toggles public sections. Pages are enabled unless explicitly disabled.
type PageVisibility struct {
	Personal     bool
	Experience   bool
	Testimonials bool
	Skills       bool
	Hobbies      bool
	Contact      bool
}

// SiteSettings is the typed view of the site_settings key-value store.
type SiteSettings struct {
	Hero      HeroSettings
	Copyright string
	Pages     PageVisibility
}

// SiteSettingsFromValues maps stored key-value pairs to SiteSettings.
// Reserved and unknown keys are ignored.
func SiteSettingsFromValues(values map[string]string) *SiteSettings {
	s := &SiteSettings{
		Hero: HeroSettings{
			Title:          values[SettingHeroTitle],
			Tagline1:       values[SettingHeroTagline1],
			Tagline2:       values[SettingHeroTagline2],
			Description:    values[SettingHeroDescription],
			Subdescription: values[SettingHeroSubdescription],
		},
		Copyright: values[SettingCopyrightText],
		Pages: PageVisibility{
			Personal:     pageEnabled(values, SettingPagePersonal),
			Experience:   pageEnabled(values, SettingPageExperience),
			Testimonials: pageEnabled(values, SettingPageTestimonials),
			Skills:       pageEnabled(values, SettingPageSkills),
			Hobbies:      pageEnabled(values, SettingPageHobbies),
			Contact:      pageEnabled(values, SettingPageContact),
		},
	}

	if raw := values[SettingHeroBullets]; raw != "" {
		var bullets []string
		if err := json.Unmarshal([]byte(raw), &bullets); err == nil {
			s.Hero.Bullets = bullets
		}
	}

	return s
}

// Values maps SiteSettings back to the key-value form served to clients
// and written to storage.
func (x *SiteSettings) Values() map[string]string {
	bullets := x.Hero.Bullets
	if bullets == nil {
		bullets = []string{}
	}
	raw, _ := json.Marshal(bullets)

	return map[string]string{
		SettingHeroTitle:          x.Hero.Title,
		SettingHeroTagline1:       x.Hero.Tagline1,
		SettingHeroTagline2:       x.Hero.Tagline2,
		SettingHeroDescription:    x.Hero.Description,
		SettingHeroSubdescription: x.Hero.Subdescription,
		SettingHeroBullets:        string(raw),
		SettingCopyrightText:      x.Copyright,
		SettingPagePersonal:       boolString(x.Pages.Personal),
		SettingPageExperience:     boolString(x.Pages.Experience),
		SettingPageTestimonials:   boolString(x.Pages.Testimonials),
		SettingPageSkills:         boolString(x.Pages.Skills),
		SettingPageHobbies:        boolString(x.Pages.Hobbies),
		SettingPageContact:        boolString(x.Pages.Contact),
	}
}

// ValidateSettingsUpdate checks a partial settings update. Every key must be
// a known editable key; hero_bullets must be a JSON string array and page
// flags must be "true" or "false".
func ValidateSettingsUpdate(update map[string]string) error {
	if len(update) == 0 {
		return goerr.Wrap(ErrValidation, "no settings given")
	}

	for key, value := range update {
		if strings.HasPrefix(key, reservedSettingPrefix) {
			return goerr.Wrap(ErrValidation, "reserved setting key", goerr.V(SettingKeyKey, key))
		}

		switch key {
		case SettingHeroTitle, SettingHeroTagline1, SettingHeroTagline2,
			SettingHeroDescription, SettingHeroSubdescription, SettingCopyrightText:
			// free text

		case SettingHeroBullets:
			var bullets []string
			if err := json.Unmarshal([]byte(value), &bullets); err != nil {
				return goerr.Wrap(ErrValidation, "hero_bullets must be a JSON array of strings", goerr.V(SettingKeyKey, key))
			}

		case SettingPagePersonal, SettingPageExperience, SettingPageTestimonials,
			SettingPageSkills, SettingPageHobbies, SettingPageContact:
			if value != "true" && value != "false" {
				return goerr.Wrap(ErrValidation, "page flag must be true or false", goerr.V(SettingKeyKey, key), goerr.V("value", value))
			}

		default:
			return goerr.Wrap(ErrValidation, "unknown setting key", goerr.V(SettingKeyKey, key))
		}
	}

	return nil
}

func pageEnabled(values map[string]string, key string) bool {
	return values[key] != "false"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
