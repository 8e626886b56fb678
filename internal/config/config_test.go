package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvSettingsPath, EnvFormat, EnvLogLevel, EnvLogEncoding, EnvExport} {
		t.Setenv(key, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credresolver.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func ptr(s string) *string {
	return &s
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if want := filepath.Join(home, ".claude", "settings.json"); cfg.SettingsPath != want {
		t.Fatalf("expected settings path %s, got %s", want, cfg.SettingsPath)
	}
	if cfg.Format != "text" {
		t.Fatalf("expected text format, got %s", cfg.Format)
	}
	if cfg.LogLevel != defaultLogLevel || cfg.LogEncoding != defaultLogEncoding {
		t.Fatalf("unexpected log config: %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if !cfg.Export {
		t.Fatalf("expected export enabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSettingsPath, "/tmp/custom.json")
	t.Setenv(EnvFormat, "JSON")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogEncoding, "json")
	t.Setenv(EnvExport, "false")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.SettingsPath != "/tmp/custom.json" {
		t.Fatalf("unexpected settings path: %s", cfg.SettingsPath)
	}
	if cfg.Format != "json" || cfg.LogLevel != "debug" || cfg.LogEncoding != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Export {
		t.Fatalf("expected export disabled")
	}
}

func TestLoadIgnoresInvalidExportEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSettingsPath, "/tmp/s.json")
	t.Setenv(EnvExport, "sometimes")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Export {
		t.Fatalf("expected default export to survive invalid env value")
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvSettingsPath, "/from/env.json")

	path := writeYAML(t, `
settings_path: /from/yaml.json
format: yaml
log:
  level: error
  encoding: json
export: false
`)

	cfg, err := Load(&CLIOverrides{
		ConfigFile: path,
		Format:     ptr("env"),
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Format != "env" {
		t.Fatalf("expected CLI format to win, got %s", cfg.Format)
	}
	if cfg.LogLevel != "error" || cfg.LogEncoding != "json" {
		t.Fatalf("expected YAML log config to beat env, got %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if cfg.SettingsPath != "/from/yaml.json" {
		t.Fatalf("expected YAML settings path, got %s", cfg.SettingsPath)
	}
	if cfg.Export {
		t.Fatalf("expected YAML export=false to apply")
	}
}

func TestLoadCLIOverrides(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(&CLIOverrides{
		SettingsPath: ptr("~/alt/settings.json"),
		LogLevel:     ptr("debug"),
		LogEncoding:  ptr("json"),
		NoExport:     true,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if want := filepath.Join(home, "alt", "settings.json"); cfg.SettingsPath != want {
		t.Fatalf("expected %s, got %s", want, cfg.SettingsPath)
	}
	if cfg.LogLevel != "debug" || cfg.LogEncoding != "json" || cfg.Export {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides *CLIOverrides
		wantErr   string
	}{
		{name: "format", overrides: &CLIOverrides{Format: ptr("xml")}, wantErr: "format"},
		{name: "level", overrides: &CLIOverrides{LogLevel: ptr("loud")}, wantErr: "log level"},
		{name: "encoding", overrides: &CLIOverrides{LogEncoding: ptr("logfmt")}, wantErr: "log encoding"},
		{name: "missing file", overrides: &CLIOverrides{ConfigFile: "/nonexistent/credresolver.yaml"}, wantErr: "load YAML config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvSettingsPath, "/tmp/s.json")

			_, err := Load(tt.overrides)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "format: [unclosed")

	if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"~":                    home,
		"~/x.json":             filepath.Join(home, "x.json"),
		"/abs/x.json":          "/abs/x.json",
		"relative/x.json":      "relative/x.json",
		"~other/settings.json": "~other/settings.json",
	}
	for in, want := range tests {
		if got := expandHome(in); got != want {
			t.Fatalf("expandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
