// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Run starts the servers and the gateway session, then blocks until ctx is
// cancelled or SIGINT/SIGTERM is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}
	if err := a.statusServer.Start(ctx); err != nil {
		return err
	}

	if err := a.openSession(ctx); err != nil {
		a.Shutdown(context.Background())
		return fmt.Errorf("failed to connect to Discord: %w", err)
	}
	a.grpcServer.SetServing(true)

	logrus.Info("application started successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops the servers, then the gateway session, then telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	a.cancel()

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		logrus.Errorf("gRPC server shutdown error: %v", err)
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}
	if err := a.statusServer.Shutdown(ctx); err != nil {
		logrus.Errorf("status server shutdown error: %v", err)
	}

	if a.session != nil {
		if err := a.session.Close(); err != nil {
			logrus.Errorf("Discord session close error: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
