package app

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/mobli/pkg/mobli"
	"github.com/aussiebroadwan/mobli/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application holds the logger and SDK client shared by the CLI commands.
type Application struct {
	cfg    Config
	logger *slog.Logger
	client *mobli.Client
}

// Options carries host collaborators that do not come from the environment.
type Options struct {
	Dialog    mobli.Dialog
	LogOutput io.Writer
}

// New builds the logger and the Mobli client from cfg.
func New(cfg Config, opts Options) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "mobli",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  opts.LogOutput,
		}),
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	client, err := mobli.NewClient(cfg.ClientID, cfg.ClientSecret, mobli.ClientConfig{
		APIBaseURL:  cfg.APIBaseURL,
		AuthBaseURL: cfg.AuthBaseURL,
		Timeout:     cfg.HTTPTimeout,
		Dialog:      opts.Dialog,
		Logger:      app.logger,
		Dispatcher: mobli.DispatcherConfig{
			Workers:   cfg.Workers,
			QueueSize: cfg.QueueSize,
			RateLimit: limit,
			Burst:     cfg.RateBurst,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mobli client: %w", err)
	}
	app.client = client

	if cfg.AccessToken != "" {
		client.Session().SetAccessToken(cfg.AccessToken)
	}

	app.logger.Debug("mobli client ready",
		"api_base_url", cfg.APIBaseURL,
		"auth_base_url", cfg.AuthBaseURL,
		"workers", cfg.Workers,
	)

	return app, nil
}

// Client returns the configured SDK client.
func (app *Application) Client() *mobli.Client { return app.client }

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// Close drains outstanding asynchronous requests.
func (app *Application) Close() {
	app.client.Close()
	app.logger.Debug("mobli client closed")
}
