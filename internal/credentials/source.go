package credentials

// Environment variable names read and written by the resolver.
const (
	EnvAPIKey    = "ANTHROPIC_API_KEY"
	EnvAuthToken = "ANTHROPIC_AUTH_TOKEN"
	EnvBaseURL   = "ANTHROPIC_BASE_URL"
)

// Source records which configuration tier supplied a resolved value.
type Source string

// Provenance values. Base URL sources carry no variable name.
const (
	SourceDefault Source = "default"

	SourceEnvAPIKey         Source = "environment (" + EnvAPIKey + ")"
	SourceEnvAuthToken      Source = "environment (" + EnvAuthToken + ")"
	SourceSettingsAPIKey    Source = "settings.json (" + EnvAPIKey + ")"
	SourceSettingsAuthToken Source = "settings.json (" + EnvAuthToken + ")"

	SourceEnvBaseURL      Source = "environment"
	SourceSettingsBaseURL Source = "settings.json"
)

func (s Source) String() string {
	return string(s)
}

// Credentials is the outcome of a successful resolution.
type Credentials struct {
	APIKey        string
	BaseURL       string
	APIKeySource  Source
	BaseURLSource Source
}

// IsCustomEndpoint reports whether BaseURL points somewhere other than the
// default vendor endpoint.
func (c Credentials) IsCustomEndpoint() bool {
	return IsCustomBaseURL(c.BaseURL)
}
