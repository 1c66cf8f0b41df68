// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/AccelByte/extend-invite-rewards/pkg/common"
)

// SetupTelemetry installs the global tracer provider and propagators.
// Returns a shutdown function that flushes pending spans.
func SetupTelemetry(ctx context.Context, serviceName, environment string, id int) (func(context.Context) error, error) {
	tracerProvider, err := common.NewTracerProvider(serviceName, environment, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tracerProvider)
	logrus.Infof("set tracer provider: (name: %s environment: %s id: %d)", serviceName, environment, id)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			b3.New(),
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	logrus.Infof("set text map propagator")

	shutdown := func(ctx context.Context) error {
		logrus.Info("shutting down telemetry...")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		logrus.Info("telemetry stopped")
		return nil
	}

	return shutdown, nil
}
