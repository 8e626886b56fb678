package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/credresolver/internal/application"
	"github.com/eugenenazirov/credresolver/internal/config"
	"github.com/eugenenazirov/credresolver/internal/credentials"
	"github.com/eugenenazirov/credresolver/internal/environ"
	"github.com/eugenenazirov/credresolver/internal/logging"
)

const version = "0.1.0"

// Exit codes.
const (
	exitOK            = 0
	exitNotConfigured = 1
	exitUsage         = 2
	exitRuntime       = 3
)

func main() {
	os.Exit(run(os.Args[1:], environ.OS{}, os.Stdout, os.Stderr))
}

func run(args []string, env environ.Environment, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("credresolver", "Resolve Anthropic API credentials from the environment and ~/.claude/settings.json")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)
	kingpinApp.Version(version)

	// --help and --version stop parsing through Terminate; keep control here
	// so run still returns an exit code.
	terminated, termStatus := false, exitOK
	kingpinApp.Terminate(func(status int) {
		if !terminated {
			terminated, termStatus = true, status
		}
	})

	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	settingsPath := kingpinApp.Flag("settings", "Path to settings.json (default ~/.claude/settings.json)").String()
	format := kingpinApp.Flag("format", "Output format: text, json, yaml or env").Short('f').String()
	logLevel := kingpinApp.Flag("log-level", "Log level: debug, info, warn or error").String()
	logEncoding := kingpinApp.Flag("log-encoding", "Log encoding: console or json").String()
	noExport := kingpinApp.Flag("no-export", "Do not seed or export environment variables").Bool()

	_, err := kingpinApp.Parse(args)
	if terminated {
		if termStatus != 0 {
			return exitUsage
		}
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "credresolver: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Load(&config.CLIOverrides{
		ConfigFile:   *configFile,
		SettingsPath: settingsPath,
		Format:       format,
		LogLevel:     logLevel,
		LogEncoding:  logEncoding,
		NoExport:     *noExport,
	})
	if err != nil {
		fmt.Fprintf(stderr, "credresolver: failed to load configuration: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(stderr, "credresolver: failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, env, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitUsage
	}

	if err := app.Run(stdout); err != nil {
		if errors.Is(err, credentials.ErrAPIKeyNotConfigured) {
			fmt.Fprintf(stderr, "credresolver: %v\n", err)
			return exitNotConfigured
		}
		logger.Error("failed to resolve credentials", zap.Error(err))
		return exitRuntime
	}

	return exitOK
}
