package credentials

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/eugenenazirov/credresolver/internal/environ"
	"github.com/eugenenazirov/credresolver/internal/settings"
)

const defaultSettingsLabel = "~/.claude/settings.json"

// Resolver resolves API credentials from the environment and settings.json.
//
// Values the resolver writes into the environment, either seeded from
// settings or exported after resolution, are remembered and not treated as
// ambient on later calls, so repeated resolution against an unchanged
// environment yields the same Credentials.
type Resolver struct {
	env          environ.Environment
	logger       *zap.Logger
	settingsPath string
	export       bool

	mu      sync.Mutex
	written map[string]string
}

// Option configures Resolver behaviour.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSettingsPath overrides the settings.json location used by Setup.
func WithSettingsPath(path string) Option {
	return func(r *Resolver) {
		r.settingsPath = path
	}
}

// WithExport controls whether the resolver writes into the environment.
// When disabled, settings are neither seeded nor resolved values exported.
func WithExport(enabled bool) Option {
	return func(r *Resolver) {
		r.export = enabled
	}
}

// NewResolver constructs a Resolver over env. Export is enabled by default.
func NewResolver(env environ.Environment, opts ...Option) *Resolver {
	r := &Resolver{
		env:     env,
		logger:  zap.NewNop(),
		export:  true,
		written: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Setup resolves credentials from the process environment and the default
// settings file.
func Setup() (Credentials, error) {
	defaultOnce.Do(func() {
		defaultResolver = NewResolver(environ.OS{})
	})
	return defaultResolver.Setup()
}

// SettingsPath returns the settings file Setup reads, or an empty string when
// it cannot be determined.
func (r *Resolver) SettingsPath() string {
	if r.settingsPath != "" {
		return r.settingsPath
	}
	path, err := settings.DefaultPath()
	if err != nil {
		return ""
	}
	return path
}

// Setup loads settings.json and resolves credentials from it.
func (r *Resolver) Setup() (Credentials, error) {
	var s settings.Settings
	if path := r.SettingsPath(); path != "" {
		s, _ = settings.Load(path)
	}
	return r.Resolve(s)
}

// Seed copies settings env entries into the environment for keys that are not
// already set. It returns the keys it set.
func (r *Resolver) Seed(s settings.Settings) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.seed(s)
}

// Resolve determines the API key and base URL.
//
// API key precedence: ambient ANTHROPIC_API_KEY, ambient ANTHROPIC_AUTH_TOKEN,
// settings ANTHROPIC_API_KEY, settings ANTHROPIC_AUTH_TOKEN. Base URL: ambient
// ANTHROPIC_BASE_URL, then settings. Ambient values are read before settings
// are seeded.
func (r *Resolver) Resolve(s settings.Settings) (Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	envKey := r.ambient(EnvAPIKey)
	envToken := r.ambient(EnvAuthToken)
	envBaseURL := r.ambient(EnvBaseURL)

	if r.export {
		r.seed(s)
	}

	creds := Credentials{
		APIKeySource:  SourceDefault,
		BaseURLSource: SourceDefault,
	}

	if envKey != "" {
		creds.APIKey, creds.APIKeySource = envKey, SourceEnvAPIKey
	} else if envToken != "" {
		creds.APIKey, creds.APIKeySource = envToken, SourceEnvAuthToken
	} else if v, ok := s.Value(EnvAPIKey); ok {
		creds.APIKey, creds.APIKeySource = v, SourceSettingsAPIKey
	} else if v, ok := s.Value(EnvAuthToken); ok {
		creds.APIKey, creds.APIKeySource = v, SourceSettingsAuthToken
	}

	if envBaseURL != "" {
		creds.BaseURL, creds.BaseURLSource = envBaseURL, SourceEnvBaseURL
	} else if v, ok := s.Value(EnvBaseURL); ok {
		creds.BaseURL, creds.BaseURLSource = v, SourceSettingsBaseURL
	}

	if creds.APIKey == "" {
		label := r.settingsPath
		if label == "" {
			label = defaultSettingsLabel
		}
		r.logger.Error("API key not configured",
			zap.Strings("env", []string{EnvAPIKey, EnvAuthToken}),
			zap.String("settings", label),
		)
		return Credentials{}, fmt.Errorf("%w: set %s or %s in the environment or in %s",
			ErrAPIKeyNotConfigured, EnvAPIKey, EnvAuthToken, label)
	}

	if r.export {
		if err := r.exportCredentials(creds); err != nil {
			return Credentials{}, err
		}
	}

	r.logger.Debug("resolved credentials",
		zap.Stringer("api_key_source", creds.APIKeySource),
		zap.Stringer("base_url_source", creds.BaseURLSource),
		zap.Bool("custom_base_url", creds.IsCustomEndpoint()),
	)

	return creds, nil
}

// ambient returns the non-empty environment value for key unless it is a value
// this resolver wrote itself.
func (r *Resolver) ambient(key string) string {
	v, ok := r.env.Lookup(key)
	if !ok || v == "" {
		return ""
	}
	if w, mine := r.written[key]; mine && w == v {
		return ""
	}
	return v
}

func (r *Resolver) seed(s settings.Settings) []string {
	var loaded []string
	for _, key := range s.Keys() {
		if _, set := r.env.Lookup(key); set {
			continue
		}
		if err := r.set(key, s.Env[key]); err != nil {
			r.logger.Warn("skipping settings variable", zap.String("key", key), zap.Error(err))
			continue
		}
		loaded = append(loaded, key)
	}

	if len(loaded) > 0 {
		r.logger.Debug("loaded environment variables from settings",
			zap.Int("count", len(loaded)),
			zap.Strings("keys", loaded),
		)
	}
	return loaded
}

func (r *Resolver) exportCredentials(creds Credentials) error {
	vars := [][2]string{
		{EnvAPIKey, creds.APIKey},
		{EnvAuthToken, creds.APIKey},
	}
	if creds.BaseURL != "" {
		vars = append(vars, [2]string{EnvBaseURL, creds.BaseURL})
	}

	for _, kv := range vars {
		if err := r.set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("export %s: %w", kv[0], err)
		}
	}
	return nil
}

// set writes key and records it as the resolver's own value, unless the
// environment already held exactly that value. An unchanged ambient value
// stays ambient.
func (r *Resolver) set(key, value string) error {
	prev, had := r.env.Lookup(key)
	if err := r.env.Set(key, value); err != nil {
		return err
	}
	if had && prev == value {
		if r.written[key] != value {
			delete(r.written, key)
		}
		return nil
	}
	r.written[key] = value
	return nil
}
