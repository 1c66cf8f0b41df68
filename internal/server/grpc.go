// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/AccelByte/extend-invite-rewards/pkg/common"
)

// GRPCServer serves the standard gRPC health service for orchestrator probes.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	port   int
}

// NewGRPCServer creates a new gRPC server instance.
func NewGRPCServer(port int) *GRPCServer {
	return &GRPCServer{port: port}
}

// Setup configures the gRPC server with interceptors and registers the health service.
func (s *GRPCServer) Setup() error {
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}
	streamInterceptors := []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}

	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unaryInterceptors...),
		grpc.ChainStreamInterceptor(streamInterceptors...),
	)

	// Reflection lets grpcurl inspect the server; health serves k8s probes.
	reflection.Register(s.server)
	s.health = health.NewServer()
	grpc_health_v1.RegisterHealthServer(s.server, s.health)

	logrus.Infof("gRPC reflection and health check enabled")

	return nil
}

// SetServing flips the overall health status reported to probes.
func (s *GRPCServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Start begins listening and serving gRPC requests.
func (s *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	return s.Serve(lis)
}

// Serve serves on an existing listener in the background.
func (s *GRPCServer) Serve(lis net.Listener) error {
	go func() {
		logrus.Infof("gRPC server listening on %s", lis.Addr())
		if err := s.server.Serve(lis); err != nil {
			logrus.Errorf("gRPC server failed: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the gRPC server.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down gRPC server...")
	s.health.Shutdown()
	s.server.GracefulStop()
	logrus.Info("gRPC server stopped")
	return nil
}
