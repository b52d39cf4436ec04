package cli

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/devbush/social2csv/internal/adapters/csvfile"
	"github.com/devbush/social2csv/internal/adapters/postgres"
	"github.com/devbush/social2csv/internal/adapters/youtube"
	"github.com/devbush/social2csv/internal/application"
	"github.com/devbush/social2csv/internal/config"
	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config   *config.Config
	Log      *logrus.Entry
	DB       *sql.DB
	Registry *application.Registry
}

// NewApp creates and wires up all dependencies
func NewApp(cfg *config.Config, log *logrus.Entry) (*App, error) {
	timeout, err := cfg.APITimeout()
	if err != nil {
		return nil, err
	}
	window, err := cfg.ContentWindow()
	if err != nil {
		return nil, err
	}

	db, err := postgres.Connect(postgres.ConfigFromEnv(), log)
	if err != nil {
		return nil, err
	}

	// Sinks: CSV always, the relational sink when enabled.
	sinks := []ports.RecordSink{
		csvfile.NewSink(cfg.Sinks.ProfileCSV, cfg.Sinks.ContentCSV),
	}
	if cfg.Sinks.Postgres {
		sinks = append(sinks, postgres.NewSink(db))
	}
	var sink ports.RecordSink = sinks[0]
	if len(sinks) > 1 {
		sink = application.NewFanoutSink(sinks...)
	}

	source := postgres.NewSource(db)
	client := youtube.NewClient(config.APIKey(), youtube.Options{
		Timeout:  timeout,
		MaxItems: cfg.MaxItemsPerAccount,
	}, log)
	fetcher := application.NewFetcher(client, window, log)

	registry := application.NewRegistry()
	registry.Register(domain.PlatformYouTube,
		application.NewImporter(domain.PlatformYouTube, source, fetcher, sink, log))

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Registry: registry,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	return a.DB.Close()
}
