package application

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/credresolver/internal/config"
	"github.com/eugenenazirov/credresolver/internal/credentials"
	"github.com/eugenenazirov/credresolver/internal/environ"
	"github.com/eugenenazirov/credresolver/internal/report"
)

// App encapsulates the resolver and the report writer selected by config.
type App struct {
	cfg      config.Config
	resolver *credentials.Resolver
	writer   report.Writer
	logger   *zap.Logger
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, env environ.Environment, logger *zap.Logger) (*App, error) {
	writer, err := report.GetWriter(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to select report writer: %w", err)
	}

	resolver := credentials.NewResolver(env,
		credentials.WithLogger(logger),
		credentials.WithSettingsPath(cfg.SettingsPath),
		credentials.WithExport(cfg.Export),
	)

	return &App{
		cfg:      cfg,
		resolver: resolver,
		writer:   writer,
		logger:   logger,
	}, nil
}

// Run resolves credentials and writes the report to w. A missing API key is
// returned unwrapped so callers can match credentials.ErrAPIKeyNotConfigured.
func (a *App) Run(w io.Writer) error {
	creds, err := a.resolver.Setup()
	if err != nil {
		return err
	}

	a.logger.Info("credentials resolved",
		zap.Stringer("api_key_source", creds.APIKeySource),
		zap.Stringer("base_url_source", creds.BaseURLSource),
		zap.Bool("custom_base_url", creds.IsCustomEndpoint()),
	)

	if err := a.writer.Write(w, report.New(creds, a.cfg.SettingsPath)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
