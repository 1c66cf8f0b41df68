// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/internal/bootstrap"
	"github.com/AccelByte/extend-invite-rewards/internal/config"
	"github.com/AccelByte/extend-invite-rewards/internal/server"
	actionBuiltin "github.com/AccelByte/extend-invite-rewards/pkg/action/builtin"
	"github.com/AccelByte/extend-invite-rewards/pkg/handler"
	"github.com/AccelByte/extend-invite-rewards/pkg/ledger"
	"github.com/AccelByte/extend-invite-rewards/pkg/metrics"
	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

const metricsEndpoint = "/metrics"

// App wires the Discord gateway, the rewards pipeline and the servers.
type App struct {
	cfg               *config.Config
	session           *discordgo.Session
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	statusServer      *server.StatusServer
	shutdownTelemetry func(context.Context) error

	// cancel stops the gateway handlers.
	cancel context.CancelFunc
}

// New creates the application. ctx bounds the lifetime of the gateway handlers.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	ctx, cancel := context.WithCancel(ctx)
	app := &App{cfg: cfg, cancel: cancel}

	pipelineConfig, err := pipeline.LoadConfig(cfg.ConfigPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load pipeline config from %s: %w", cfg.ConfigPath, err)
	}
	logrus.Infof("loaded pipeline configuration from %s", cfg.ConfigPath)

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = handler.Intents()
	app.session = session

	platform := service.NewDiscord(session)
	credits := ledger.NewMemory()

	tracker := bootstrap.InitInviteTracker(platform, cfg.ExternalCallTimeout)
	processor := bootstrap.InitSignalProcessor(platform, cfg.RoleSet())

	ruleEngine, ruleRegistry, err := bootstrap.InitRuleEngine(pipelineConfig, cfg.Thresholds())
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to init rule engine: %w", err)
	}

	deps := &actionBuiltin.Dependencies{
		Roles:            platform,
		Notifier:         platform,
		RoleSet:          cfg.RoleSet(),
		RewardsChannelID: cfg.ChannelRewards,
		WelcomeChannelID: cfg.ChannelWelcome,
	}

	actionExecutor, actionRegistry, err := bootstrap.InitActionExecutor(pipelineConfig, deps, cfg.ExternalCallTimeout)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to init action executor: %w", err)
	}

	if err := pipeline.ValidateWiring(ruleRegistry, actionRegistry, pipelineConfig); err != nil {
		cancel()
		return nil, fmt.Errorf("pipeline wiring validation failed: %w", err)
	}
	logrus.Info("pipeline wiring validation passed")

	manager := bootstrap.InitPipeline(pipeline.ManagerConfig{
		Tracker:      tracker,
		Ledger:       credits,
		Processor:    processor,
		Engine:       ruleEngine,
		Executor:     actionExecutor,
		Notifier:     platform,
		LogChannelID: cfg.ChannelLogs,
		CallTimeout:  cfg.ExternalCallTimeout,
	}, pipelineConfig)

	commands := handler.NewCommands(manager, platform, platform, cfg.Thresholds(), cfg.CommandPrefix)
	handler.NewGateway(ctx, manager, commands).Register(session)
	logrus.Info("registered gateway handlers: ready, member join and commands")

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort)
	if err := app.grpcServer.Setup(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, metricsEndpoint, metrics.All()...)
	if err := app.metricsServer.Setup(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	app.statusServer = server.NewStatusServer(cfg.Port, cfg.ServiceName, platform, credits)
	if err := app.statusServer.Setup(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup status server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// openSession connects to the Discord gateway, retrying with exponential backoff.
func (a *App) openSession(ctx context.Context) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), a.cfg.DiscordConnectRetries),
		ctx,
	)

	return backoff.RetryNotify(
		a.session.Open,
		b,
		func(err error, next time.Duration) {
			logrus.Warnf("Discord connection failed: %v, retrying in %s...", err, next)
		},
	)
}
