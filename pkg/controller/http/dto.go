package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// flexString accepts a JSON string or number. Forms post durations either way.
type flexString string

func (x *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*x = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*x = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(err, "expected string or number")
	}
	*x = flexString(n.String())
	return nil
}

type contactRequest struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Company           string     `json:"company"`
	PreferredDate     string     `json:"preferredDate"`
	PreferredTime     string     `json:"preferredTime"`
	InterviewDuration flexString `json:"interviewDuration"`
	Timezone          string     `json:"timezone"`
	Message           string     `json:"message"`
}

func (x contactRequest) toModel() model.ContactRequest {
	return model.ContactRequest{
		Name:              x.Name,
		Email:             x.Email,
		Company:           x.Company,
		PreferredDate:     x.PreferredDate,
		PreferredTime:     x.PreferredTime,
		InterviewDuration: string(x.InterviewDuration),
		Timezone:          x.Timezone,
		Message:           x.Message,
	}
}

type contactResponse struct {
	Message              string  `json:"message"`
	CalendarEventCreated bool    `json:"calendarEventCreated"`
	CalendarEventLink    *string `json:"calendarEventLink"`
	EmailSent            bool    `json:"emailSent"`
	AdminEmail           *string `json:"adminEmail"`
}

func newContactResponse(outcome *model.NotificationOutcome) contactResponse {
	resp := contactResponse{Message: "Contact form submitted successfully"}
	if outcome == nil {
		return resp
	}
	resp.CalendarEventCreated = outcome.CalendarEventCreated
	resp.CalendarEventLink = nullable(outcome.CalendarEventLink)
	resp.EmailSent = outcome.EmailSent
	resp.AdminEmail = nullable(outcome.AdminEmail)
	return resp
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timestamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

type submissionJSON struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Company           string    `json:"company"`
	PreferredDate     string    `json:"preferred_date"`
	PreferredTime     string    `json:"preferred_time"`
	InterviewDuration int       `json:"interview_duration"`
	Timezone          string    `json:"timezone"`
	Message           string    `json:"message"`
	Read              bool      `json:"read"`
	CreatedAt         time.Time `json:"created_at"`
}

func newSubmissionJSON(x *model.Submission) submissionJSON {
	return submissionJSON{
		ID:                x.ID,
		Name:              x.Name,
		Email:             x.Email,
		Company:           x.Company,
		PreferredDate:     x.PreferredDate,
		PreferredTime:     x.PreferredTime,
		InterviewDuration: x.DurationMinutes,
		Timezone:          x.Timezone,
		Message:           x.Message,
		Read:              x.Read,
		CreatedAt:         x.CreatedAt,
	}
}

type personalOverviewJSON struct {
	AboutMe   string     `json:"about_me"`
	VideoURL  string     `json:"video_url"`
	Traits    []string   `json:"traits"`
	Image1URL string     `json:"image1_url"`
	Image2URL string     `json:"image2_url"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func newPersonalOverviewJSON(x *model.PersonalOverview) personalOverviewJSON {
	return personalOverviewJSON{
		AboutMe:   x.AboutMe,
		VideoURL:  x.VideoURL,
		Traits:    nonNilStrings(x.Traits),
		Image1URL: x.Image1URL,
		Image2URL: x.Image2URL,
		UpdatedAt: timestamp(x.UpdatedAt),
	}
}

func (x personalOverviewJSON) toModel() *model.PersonalOverview {
	return &model.PersonalOverview{
		AboutMe:   x.AboutMe,
		VideoURL:  x.VideoURL,
		Traits:    nonNilStrings(x.Traits),
		Image1URL: x.Image1URL,
		Image2URL: x.Image2URL,
	}
}

type contactInfoJSON struct {
	Name                   string     `json:"name"`
	Tagline                string     `json:"tagline"`
	Email                  string     `json:"email"`
	LinkedInURL            string     `json:"linkedin_url"`
	GitHubURL              string     `json:"github_url"`
	CalendarURL            string     `json:"calendar_url"`
	SpotifyEmbedURL        string     `json:"spotify_embed_url"`
	GoogleCalendarEmbedURL string     `json:"google_calendar_embed_url"`
	UpdatedAt              *time.Time `json:"updated_at,omitempty"`
}

func newContactInfoJSON(x *model.ContactInfo) contactInfoJSON {
	return contactInfoJSON{
		Name:                   x.Name,
		Tagline:                x.Tagline,
		Email:                  x.Email,
		LinkedInURL:            x.LinkedInURL,
		GitHubURL:              x.GitHubURL,
		CalendarURL:            x.CalendarURL,
		SpotifyEmbedURL:        x.SpotifyEmbedURL,
		GoogleCalendarEmbedURL: x.GoogleCalendarEmbedURL,
		UpdatedAt:              timestamp(x.UpdatedAt),
	}
}

func (x contactInfoJSON) toModel() *model.ContactInfo {
	return &model.ContactInfo{
		Name:                   x.Name,
		Tagline:                x.Tagline,
		Email:                  x.Email,
		LinkedInURL:            x.LinkedInURL,
		GitHubURL:              x.GitHubURL,
		CalendarURL:            x.CalendarURL,
		SpotifyEmbedURL:        x.SpotifyEmbedURL,
		GoogleCalendarEmbedURL: x.GoogleCalendarEmbedURL,
	}
}

type experienceJSON struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Period    string     `json:"period"`
	Company   string     `json:"company"`
	Details   []string   `json:"details"`
	SortOrder int        `json:"sort_order"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func newExperienceJSON(x *model.Experience) experienceJSON {
	return experienceJSON{
		ID:        x.ID,
		Title:     x.Title,
		Period:    x.Period,
		Company:   x.Company,
		Details:   nonNilStrings(x.Details),
		SortOrder: x.SortOrder,
		CreatedAt: timestamp(x.CreatedAt),
	}
}

func (x experienceJSON) toModel(id int64) *model.Experience {
	return &model.Experience{
		ID:        id,
		Title:     x.Title,
		Period:    x.Period,
		Company:   x.Company,
		Details:   nonNilStrings(x.Details),
		SortOrder: x.SortOrder,
	}
}

type testimonialJSON struct {
	ID        int64      `json:"id"`
	VideoURL  string     `json:"video_url"`
	Quote     string     `json:"quote"`
	Author    string     `json:"author"`
	SortOrder int        `json:"sort_order"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func newTestimonialJSON(x *model.Testimonial) testimonialJSON {
	return testimonialJSON{
		ID:        x.ID,
		VideoURL:  x.VideoURL,
		Quote:     x.Quote,
		Author:    x.Author,
		SortOrder: x.SortOrder,
		CreatedAt: timestamp(x.CreatedAt),
	}
}

func (x testimonialJSON) toModel(id int64) *model.Testimonial {
	return &model.Testimonial{
		ID:        id,
		VideoURL:  x.VideoURL,
		Quote:     x.Quote,
		Author:    x.Author,
		SortOrder: x.SortOrder,
	}
}

type skillItemJSON struct {
	Name      string `json:"name"`
	Details   string `json:"details"`
	SortOrder int    `json:"sort_order"`
}

type skillJSON struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	SortOrder int             `json:"sort_order"`
	Items     []skillItemJSON `json:"items"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

func newSkillJSON(x *model.SkillCategory) skillJSON {
	items := make([]skillItemJSON, len(x.Items))
	for i, item := range x.Items {
		items[i] = skillItemJSON(item)
	}
	return skillJSON{
		ID:        x.ID,
		Category:  x.Category,
		SortOrder: x.SortOrder,
		Items:     items,
		CreatedAt: timestamp(x.CreatedAt),
	}
}

func (x skillJSON) toModel(id int64) *model.SkillCategory {
	items := make([]model.SkillItem, len(x.Items))
	for i, item := range x.Items {
		items[i] = model.SkillItem(item)
	}
	return &model.SkillCategory{
		ID:        id,
		Category:  x.Category,
		SortOrder: x.SortOrder,
		Items:     items,
	}
}

type hobbyJSON struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Details   string     `json:"details"`
	SortOrder int        `json:"sort_order"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func newHobbyJSON(x *model.Hobby) hobbyJSON {
	return hobbyJSON{
		ID:        x.ID,
		Title:     x.Title,
		Details:   x.Details,
		SortOrder: x.SortOrder,
		CreatedAt: timestamp(x.CreatedAt),
	}
}

func (x hobbyJSON) toModel(id int64) *model.Hobby {
	return &model.Hobby{
		ID:        id,
		Title:     x.Title,
		Details:   x.Details,
		SortOrder: x.SortOrder,
	}
}

// settingsValues flattens a settings update body into stored strings.
// Non-string values are kept in their JSON form, so arrays and booleans
// round trip through the key-value table.
func settingsValues(body map[string]json.RawMessage) (map[string]string, error) {
	values := make(map[string]string, len(body))
	for key, raw := range body {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			values[key] = s
			continue
		}

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, goerr.Wrap(err, "invalid setting value", goerr.V(model.SettingKeyKey, key))
		}
		switch typed := v.(type) {
		case bool:
			values[key] = strconv.FormatBool(typed)
		default:
			values[key] = string(bytes.TrimSpace(raw))
		}
	}
	return values, nil
}
