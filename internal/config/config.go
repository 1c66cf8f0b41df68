// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"time"

	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Discord configuration
	DiscordToken          string `env:"DISCORD_TOKEN,required,notEmpty"`
	DiscordConnectRetries uint64 `env:"DISCORD_CONNECT_RETRIES" envDefault:"5"`
	CommandPrefix         string `env:"COMMAND_PREFIX" envDefault:"!"`

	// Tier roles, granted by the rewards pipeline
	RoleInitiate string `env:"ROLE_INITIATE,required,notEmpty"`
	RoleGold     string `env:"ROLE_GOLD,required,notEmpty"`
	RolePlatinum string `env:"ROLE_PLATINUM,required,notEmpty"`

	// Channels. Logs and welcome are optional.
	ChannelRewards string `env:"CHANNEL_REWARDS,required,notEmpty"`
	ChannelLogs    string `env:"CHANNEL_LOGS"`
	ChannelWelcome string `env:"CHANNEL_WELCOME"`

	// Promotion thresholds
	InvitesGold     int `env:"INVITES_GOLD" envDefault:"5"`
	InvitesPlatinum int `env:"INVITES_PLATINUM" envDefault:"10"`

	// Server configuration
	Port        int    `env:"PORT" envDefault:"3000"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ExtendInviteRewards"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Pipeline configuration
	ConfigPath          string        `env:"CONFIG_PATH" envDefault:"config/pipeline.yaml"`
	ExternalCallTimeout time.Duration `env:"EXTERNAL_CALL_TIMEOUT" envDefault:"10s"`

	// Telemetry configuration. The collector URL is read from ZIPKIN_ENDPOINT
	// by the tracer provider itself.
	OtelEnabled bool `env:"OTEL_ENABLED" envDefault:"true"`
}

// Thresholds returns the promotion thresholds.
func (c *Config) Thresholds() rank.Thresholds {
	return rank.Thresholds{
		Gold:     c.InvitesGold,
		Platinum: c.InvitesPlatinum,
	}
}

// RoleSet returns the configured tier roles.
func (c *Config) RoleSet() rank.RoleSet {
	return rank.RoleSet{
		Initiate: c.RoleInitiate,
		Gold:     c.RoleGold,
		Platinum: c.RolePlatinum,
	}
}
