package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/credresolver/internal/logging"
	"github.com/eugenenazirov/credresolver/internal/report"
	"github.com/eugenenazirov/credresolver/internal/settings"
)

const (
	defaultLogLevel    = "info"
	defaultLogEncoding = logging.EncodingConsole
)

// Environment variables read by applyEnvConfig.
const (
	EnvSettingsPath = "CREDRESOLVER_SETTINGS"
	EnvFormat       = "CREDRESOLVER_FORMAT"
	EnvLogLevel     = "CREDRESOLVER_LOG_LEVEL"
	EnvLogEncoding  = "CREDRESOLVER_LOG_ENCODING"
	EnvExport       = "CREDRESOLVER_EXPORT"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	SettingsPath string
	Format       string
	LogLevel     string
	LogEncoding  string
	Export       bool
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	SettingsPath string  `yaml:"settings_path"`
	Format       string  `yaml:"format"`
	Log          yamlLog `yaml:"log"`
	Export       *bool   `yaml:"export"`
}

// yamlLog represents the log section in YAML.
type yamlLog struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile   string
	SettingsPath *string
	Format       *string
	LogLevel     *string
	LogEncoding  *string
	NoExport     bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if cfg.SettingsPath == "" {
		path, err := settings.DefaultPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve settings path: %w", err)
		}
		cfg.SettingsPath = path
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values. SettingsPath is filled
// in by Load once every source has had a chance to set it.
func defaultConfig() Config {
	return Config{
		Format:      report.FormatText,
		LogLevel:    defaultLogLevel,
		LogEncoding: defaultLogEncoding,
		Export:      true,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.SettingsPath != "" {
		cfg.SettingsPath = expandHome(yamlCfg.SettingsPath)
	}

	if yamlCfg.Format != "" {
		cfg.Format = yamlCfg.Format
	}

	if yamlCfg.Log.Level != "" {
		cfg.LogLevel = yamlCfg.Log.Level
	}

	if yamlCfg.Log.Encoding != "" {
		cfg.LogEncoding = yamlCfg.Log.Encoding
	}

	if yamlCfg.Export != nil {
		cfg.Export = *yamlCfg.Export
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if path := strings.TrimSpace(os.Getenv(EnvSettingsPath)); path != "" {
		cfg.SettingsPath = expandHome(path)
	}

	if format := strings.TrimSpace(os.Getenv(EnvFormat)); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	if encoding := strings.TrimSpace(os.Getenv(EnvLogEncoding)); encoding != "" {
		cfg.LogEncoding = strings.ToLower(encoding)
	}

	if export := strings.TrimSpace(os.Getenv(EnvExport)); export != "" {
		if value, err := strconv.ParseBool(export); err == nil {
			cfg.Export = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.SettingsPath != nil && *overrides.SettingsPath != "" {
		cfg.SettingsPath = expandHome(*overrides.SettingsPath)
	}

	if overrides.Format != nil && *overrides.Format != "" {
		cfg.Format = *overrides.Format
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.LogEncoding != nil && *overrides.LogEncoding != "" {
		cfg.LogEncoding = *overrides.LogEncoding
	}

	if overrides.NoExport {
		cfg.Export = false
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if !report.IsFormat(cfg.Format) {
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", cfg.LogLevel)
	}
	switch cfg.LogEncoding {
	case logging.EncodingJSON, logging.EncodingConsole:
	default:
		return fmt.Errorf("unsupported log encoding %q", cfg.LogEncoding)
	}
	return nil
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + strings.TrimPrefix(path, "~")
}
