package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/credresolver/internal/credentials"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatEnv  = "env"
)

// Report describes a successful resolution for display.
type Report struct {
	APIKey        string `json:"api_key" yaml:"api_key"`
	APIKeySource  string `json:"api_key_source" yaml:"api_key_source"`
	BaseURL       string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	BaseURLSource string `json:"base_url_source" yaml:"base_url_source"`
	CustomBaseURL bool   `json:"custom_base_url" yaml:"custom_base_url"`
	SettingsPath  string `json:"settings_path,omitempty" yaml:"settings_path,omitempty"`
}

// New builds a Report from resolved credentials. The API key is kept in full;
// writers other than the env writer mask it.
func New(creds credentials.Credentials, settingsPath string) Report {
	return Report{
		APIKey:        creds.APIKey,
		APIKeySource:  creds.APIKeySource.String(),
		BaseURL:       creds.BaseURL,
		BaseURLSource: creds.BaseURLSource.String(),
		CustomBaseURL: creds.IsCustomEndpoint(),
		SettingsPath:  settingsPath,
	}
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, r Report) error
}

// IsFormat reports whether format names a supported writer.
func IsFormat(format string) bool {
	_, err := GetWriter(format)
	return err == nil
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case FormatText:
		return TextWriter{}, nil
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatYAML:
		return YAMLWriter{}, nil
	case FormatEnv:
		return EnvWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// MaskKey hides all but the first 7 and last 4 characters of key. Keys of 12
// characters or fewer are fully masked. Characters are counted as runes.
func MaskKey(key string) string {
	runes := []rune(key)
	if len(runes) <= 12 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:7]) + strings.Repeat("*", len(runes)-11) + string(runes[len(runes)-4:])
}

func masked(r Report) Report {
	r.APIKey = MaskKey(r.APIKey)
	return r
}

// TextWriter outputs aligned key/value lines.
type TextWriter struct{}

func (TextWriter) Write(w io.Writer, r Report) error {
	r = masked(r)
	baseURL := r.BaseURL
	if baseURL == "" {
		baseURL = "(default)"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "API key:\t%s\t(%s)\n", r.APIKey, r.APIKeySource)
	fmt.Fprintf(tw, "Base URL:\t%s\t(%s)\n", baseURL, r.BaseURLSource)
	fmt.Fprintf(tw, "Custom endpoint:\t%t\t\n", r.CustomBaseURL)
	if r.SettingsPath != "" {
		fmt.Fprintf(tw, "Settings file:\t%s\t\n", r.SettingsPath)
	}
	return tw.Flush()
}

// JSONWriter outputs the report as indented JSON.
type JSONWriter struct{}

func (JSONWriter) Write(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(masked(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// YAMLWriter outputs the report as YAML.
type YAMLWriter struct{}

func (YAMLWriter) Write(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(masked(r)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// EnvWriter outputs shell export statements carrying the unmasked key, for
// use with eval.
type EnvWriter struct{}

func (EnvWriter) Write(w io.Writer, r Report) error {
	lines := []string{
		exportLine(credentials.EnvAPIKey, r.APIKey),
		exportLine(credentials.EnvAuthToken, r.APIKey),
	}
	if r.BaseURL != "" {
		lines = append(lines, exportLine(credentials.EnvBaseURL, r.BaseURL))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func exportLine(key, value string) string {
	return "export " + key + "=" + shellQuote(value)
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
