// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/mirvosit/mc-control-bot/internal/bootstrap"
	"github.com/mirvosit/mc-control-bot/internal/config"
	"github.com/mirvosit/mc-control-bot/internal/server"
	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/command/builtin"
	"github.com/mirvosit/mc-control-bot/pkg/common"
	"github.com/mirvosit/mc-control-bot/pkg/controlloop"
	"github.com/mirvosit/mc-control-bot/pkg/display"
	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
	"github.com/mirvosit/mc-control-bot/pkg/power"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/mirvosit/mc-control-bot/pkg/state"
	"github.com/sirupsen/logrus"
)

const connectRetries = 5

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error

	telegram   *chat.Telegram
	notifier   *chat.Notifier
	dispatcher *command.Dispatcher
	loop       *controlloop.Loop

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Telemetry (so every later scope is traced)
// 2. Texts catalog, hosting API client and game status prober
// 3. Chat transport (retried with backoff)
// 4. Session state, live display, control loop and command dispatcher
// 5. Health and metrics servers
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if err := app.initTelemetry(ctx); err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	texts, err := app.loadTexts()
	if err != nil {
		return nil, fmt.Errorf("failed to load panel texts: %w", err)
	}

	client, err := power.NewClient(power.ClientConfig{
		BaseURL:  cfg.PlayAPIBase,
		APIKey:   cfg.PlayAPIKey,
		ServerID: cfg.ServerID,
		Timeout:  cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hosting API client: %w", err)
	}

	prober, err := mcstatus.NewProber(mcstatus.Config{
		Address:   cfg.MCHost,
		QueryPort: cfg.MCQueryPort,
		Timeout:   cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create status prober: %w", err)
	}

	if err := app.initTelegram(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect chat transport: %w", err)
	}

	events := eventlog.New(eventlog.DefaultCapacity)
	session := state.NewSession(cfg.AutoUpdate, state.NewIdleTracker(cfg.IdleThreshold))
	renderer := render.NewRenderer(texts, cfg.MCHost)
	controller := power.NewController(client, events)
	app.notifier = chat.NewNotifier(app.telegram, cfg.NotifyTTL, cfg.RequestTimeout)

	app.loop = bootstrap.InitControlLoop(cfg, controlloop.Dependencies{
		Prober:   prober,
		Power:    controller,
		Panel:    client,
		Session:  session,
		Display:  display.NewLive(app.telegram, session, cfg.RequestTimeout),
		Renderer: renderer,
		Events:   events,
	})

	app.dispatcher, _, err = bootstrap.InitDispatcher(cfg, &builtin.Dependencies{
		Power:    controller,
		Prober:   prober,
		Notifier: app.notifier,
		Renderer: renderer,
		Events:   events,
		Session:  session,
		Display:  app.loop,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init command dispatcher: %w", err)
	}

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

func (a *App) initTelemetry(ctx context.Context) error {
	if !a.cfg.OtelEnabled {
		logrus.Info("telemetry disabled")
		return nil
	}

	shutdown, err := server.SetupTelemetry(ctx, common.TracerConfig{
		ServiceName:    a.cfg.ServiceName,
		Environment:    a.cfg.Environment,
		ZipkinEndpoint: a.cfg.ZipkinEndpoint,
	})
	if err != nil {
		return err
	}
	a.shutdownTelemetry = shutdown
	return nil
}

func (a *App) loadTexts() (*render.Texts, error) {
	if a.cfg.PanelTextsPath == "" {
		return render.DefaultTexts(), nil
	}

	texts, err := render.LoadTexts(a.cfg.PanelTextsPath)
	if err != nil {
		return nil, err
	}
	logrus.Infof("loaded panel texts from %s", a.cfg.PanelTextsPath)
	return texts, nil
}

func (a *App) initTelegram(ctx context.Context) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectRetries), ctx)

	return backoff.Retry(
		func() error {
			telegram, err := chat.NewTelegram(chat.TelegramConfig{
				Token:          a.cfg.BotToken,
				RequestTimeout: a.cfg.RequestTimeout,
			})
			if err != nil {
				logrus.Warnf("bot API connection failed: %v, retrying...", err)
				return err
			}
			a.telegram = telegram
			return nil
		},
		b,
	)
}
