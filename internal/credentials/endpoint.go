package credentials

import "strings"

const defaultHost = "api.anthropic.com"

// IsCustomBaseURL reports whether baseURL is a custom endpoint. An empty URL is
// not custom. Any URL containing the default hostname, case-insensitively and
// anywhere in the string, counts as the default endpoint.
func IsCustomBaseURL(baseURL string) bool {
	if baseURL == "" {
		return false
	}
	return !strings.Contains(strings.ToLower(baseURL), defaultHost)
}
