package config

import "log/slog"

// NewGoogleForTest creates a Google config for testing purposes
func NewGoogleForTest(clientID, clientSecret, baseURL, adminURL string) *Google {
	return &Google{
		clientID:        clientID,
		clientSecret:    clientSecret,
		baseURL:         baseURL,
		adminURL:        adminURL,
		defaultTimezone: "UTC",
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, dsn, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		dsn:       dsn,
		projectID: projectID,
	}
}

// NewStorageForTest creates a Storage config for testing purposes
func NewStorageForTest(bucket string) *Storage {
	return &Storage{bucket: bucket}
}

func ParseLevel(s string) (slog.Level, error) {
	return parseLevel(s)
}

var NewRedactor = newRedactor
