package model

import (
	"strings"
	"time"
)

// DefaultOrganizerLabel is used on calendar events when the owner has no display name.
const DefaultOrganizerLabel = "Portfolio Owner"

// ContactInfo is the owner's public contact card. Its email is also the
// notification target for interview requests.
type ContactInfo struct {
	Name                   string
	Tagline                string
	Email                  string
	LinkedInURL            string
	GitHubURL              string
	CalendarURL            string
	SpotifyEmbedURL        string
	GoogleCalendarEmbedURL string
	UpdatedAt              time.Time
}

// OwnerEmail returns the notification target, or "" when none is configured.
func (x *ContactInfo) OwnerEmail() string {
	if x == nil {
		return ""
	}
	return strings.TrimSpace(x.Email)
}

// OrganizerLabel returns the display name used on calendar events.
func (x *ContactInfo) OrganizerLabel() string {
	if x == nil || strings.TrimSpace(x.Name) == "" {
		return DefaultOrganizerLabel
	}
	return strings.TrimSpace(x.Name)
}
