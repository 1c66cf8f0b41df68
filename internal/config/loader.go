// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the Config from the process environment without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}

// Validate performs custom validation on the configuration.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	ports := []struct {
		name  string
		value int
	}{
		{"PORT", c.Port},
		{"GRPC_PORT", c.GRPCPort},
		{"METRICS_PORT", c.MetricsPort},
	}
	for _, p := range ports {
		if p.value < 1 || p.value > 65535 {
			errs = append(errs, fmt.Errorf("invalid %s: %d (must be 1-65535)", p.name, p.value))
		}
	}

	if c.DiscordToken == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}

	if err := c.Thresholds().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("invalid INVITES_GOLD/INVITES_PLATINUM: %w", err))
	}

	snowflakes := []struct {
		name     string
		value    string
		optional bool
	}{
		{"ROLE_INITIATE", c.RoleInitiate, false},
		{"ROLE_GOLD", c.RoleGold, false},
		{"ROLE_PLATINUM", c.RolePlatinum, false},
		{"CHANNEL_REWARDS", c.ChannelRewards, false},
		{"CHANNEL_LOGS", c.ChannelLogs, true},
		{"CHANNEL_WELCOME", c.ChannelWelcome, true},
	}
	for _, s := range snowflakes {
		if s.value == "" && s.optional {
			continue
		}
		if err := validateSnowflake(s.value); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", s.name, err))
		}
	}

	if c.RoleInitiate != "" && (c.RoleInitiate == c.RoleGold || c.RoleInitiate == c.RolePlatinum) ||
		c.RoleGold != "" && c.RoleGold == c.RolePlatinum {
		errs = append(errs, errors.New("ROLE_INITIATE, ROLE_GOLD and ROLE_PLATINUM must be distinct"))
	}

	if c.ExternalCallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid EXTERNAL_CALL_TIMEOUT: %s (must be positive)", c.ExternalCallTimeout))
	}

	if c.CommandPrefix == "" {
		errs = append(errs, errors.New("COMMAND_PREFIX must not be empty"))
	}

	return errors.Join(errs...)
}

func validateSnowflake(id string) error {
	if id == "" {
		return errors.New("missing ID")
	}
	sf, err := snowflake.ParseString(id)
	if err != nil {
		return fmt.Errorf("%q is not a snowflake: %w", id, err)
	}
	if sf.Int64() <= 0 {
		return fmt.Errorf("%q is not a snowflake", id)
	}
	return nil
}
