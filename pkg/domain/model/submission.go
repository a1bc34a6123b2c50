package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const DefaultDurationMinutes = 30

// ContactRequest is the raw interview request as submitted by a visitor.
type ContactRequest struct {
	Name              string
	Email             string
	Company           string
	PreferredDate     string
	PreferredTime     string
	InterviewDuration string
	Timezone          string
	Message           string
}

// Validate checks that name and email are present. Whitespace only counts as empty.
func (x ContactRequest) Validate() error {
	if strings.TrimSpace(x.Name) == "" || strings.TrimSpace(x.Email) == "" {
		return goerr.Wrap(ErrValidation, "Name and email are required")
	}
	return nil
}

// Submission is a recorded interview request.
type Submission struct {
	ID              int64
	Name            string
	Email           string
	Company         string
	PreferredDate   string
	PreferredTime   string
	DurationMinutes int
	Timezone        string
	Message         string
	Read            bool
	CreatedAt       time.Time
}

// NewSubmission builds an unsaved submission from a validated request.
func NewSubmission(req ContactRequest) *Submission {
	return &Submission{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Company:         strings.TrimSpace(req.Company),
		PreferredDate:   strings.TrimSpace(req.PreferredDate),
		PreferredTime:   strings.TrimSpace(req.PreferredTime),
		DurationMinutes: ParseDuration(req.InterviewDuration),
		Timezone:        strings.TrimSpace(req.Timezone),
		Message:         req.Message,
	}
}

// HasSchedule reports whether both preferred date and time are set.
func (x *Submission) HasSchedule() bool {
	return x.PreferredDate != "" && x.PreferredTime != ""
}

// ParseDuration converts an interview duration in minutes. Missing,
// non-numeric and non-positive values fall back to DefaultDurationMinutes.
func ParseDuration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return DefaultDurationMinutes
	}
	return n
}
