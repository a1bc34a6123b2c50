package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

type PersonalOverview struct {
	AboutMe   string
	VideoURL  string
	Traits    []string
	Image1URL string
	Image2URL string
	UpdatedAt time.Time
}

type Experience struct {
	ID        int64
	Title     string
	Period    string
	Company   string
	Details   []string
	SortOrder int
	CreatedAt time.Time
}

func (x *Experience) Validate() error {
	if strings.TrimSpace(x.Title) == "" {
		return goerr.Wrap(ErrValidation, "experience title is required")
	}
	return nil
}

type Testimonial struct {
	ID        int64
	VideoURL  string
	Quote     string
	Author    string
	SortOrder int
	CreatedAt time.Time
}

func (x *Testimonial) Validate() error {
	if strings.TrimSpace(x.Quote) == "" || strings.TrimSpace(x.Author) == "" {
		return goerr.Wrap(ErrValidation, "testimonial quote and author are required")
	}
	return nil
}

type SkillItem struct {
	Name      string
	Details   string
	SortOrder int
}

// SkillCategory groups skill items. Items are replaced as a whole on update.
type SkillCategory struct {
	ID        int64
	Category  string
	SortOrder int
	CreatedAt time.Time
	Items     []SkillItem
}

func (x *SkillCategory) Validate() error {
	if strings.TrimSpace(x.Category) == "" {
		return goerr.Wrap(ErrValidation, "skill category is required")
	}
	return nil
}

// NormalizeItems gives every item without an explicit order its position in the list.
func (x *SkillCategory) NormalizeItems() {
	for i := range x.Items {
		if x.Items[i].SortOrder == 0 {
			x.Items[i].SortOrder = i
		}
	}
}

type Hobby struct {
	ID        int64
	Title     string
	Details   string
	SortOrder int
	CreatedAt time.Time
}

func (x *Hobby) Validate() error {
	if strings.TrimSpace(x.Title) == "" {
		return goerr.Wrap(ErrValidation, "hobby title is required")
	}
	return nil
}

// SiteData is everything the public site renders.
type SiteData struct {
	Settings         *SiteSettings
	PersonalOverview *PersonalOverview
	Experience       []*Experience
	Testimonials     []*Testimonial
	Skills           []*SkillCategory
	Hobbies          []*Hobby
	ContactInfo      *ContactInfo
}

// SiteContent is a full set of editable content, used to seed a fresh site.
type SiteContent struct {
	Settings         map[string]string
	PersonalOverview *PersonalOverview
	ContactInfo      *ContactInfo
	Experience       []*Experience
	Testimonials     []*Testimonial
	Skills           []*SkillCategory
	Hobbies          []*Hobby
}
