package interfaces

// ListSubmissionOption is a functional option for filtering submissions in List
type ListSubmissionOption func(*listSubmissionConfig)

type listSubmissionConfig struct {
	unreadOnly bool
}

// WithUnreadOnly restricts the listing to submissions not yet marked read
func WithUnreadOnly() ListSubmissionOption {
	return func(c *listSubmissionConfig) {
		c.unreadOnly = true
	}
}

// BuildListSubmissionConfig builds a listSubmissionConfig from options
func BuildListSubmissionConfig(opts ...ListSubmissionOption) *listSubmissionConfig {
	cfg := &listSubmissionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// UnreadOnly reports whether read submissions are excluded
func (c *listSubmissionConfig) UnreadOnly() bool {
	return c.unreadOnly
}
