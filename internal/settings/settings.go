package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Settings is the subset of the assistant's settings.json the resolver uses.
type Settings struct {
	// Env maps environment variable names to their configured values.
	// Null entries are dropped while loading.
	Env map[string]string
}

type document struct {
	Env json.RawMessage `json:"env"`
}

// DefaultPath returns <home>/.claude/settings.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Load reads and parses the settings file at path. It reports false when the
// file is missing, unreadable or not a JSON object; callers treat both cases
// as "no settings".
func Load(path string) (Settings, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, false
	}
	return Parse(data)
}

// Parse decodes a settings document. See Load for the result semantics.
func Parse(data []byte) (Settings, bool) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, false
	}

	var raw map[string]any
	if len(doc.Env) == 0 || json.Unmarshal(doc.Env, &raw) != nil {
		// env missing, null or not an object
		return Settings{}, true
	}

	env := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := stringify(value); ok {
			env[key] = s
		}
	}
	return Settings{Env: env}, true
}

// Value returns the configured value for key when it is non-empty.
func (s Settings) Value(key string) (string, bool) {
	v, ok := s.Env[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Keys returns the env keys in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return formatNumber(v), true
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}

// formatNumber renders v the way JSON-speaking tools print numbers: plain
// decimals, switching to exponent form below 1e-6 and from 1e21 upwards.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
