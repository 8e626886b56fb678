package credentials

import "errors"

var (
	// ErrAPIKeyNotConfigured is returned when no tier supplies an API key.
	ErrAPIKeyNotConfigured = errors.New("API key not configured")
)
