package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrValidation marks input rejected before anything is persisted.
	ErrValidation = goerr.New("validation error")
	// ErrNotFound is returned when a record addressed by ID does not exist.
	ErrNotFound = goerr.New("not found")
)

// Context keys for error values
const (
	SubmissionIDKey = "submission_id"
	SettingKeyKey   = "setting_key"
	ContentIDKey    = "content_id"
	UsernameKey     = "username"
)
