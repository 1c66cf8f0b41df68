// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
)

// InterceptorLogger adapts logrus to the gRPC logging interceptor.
func InterceptorLogger(l logrus.FieldLogger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		f := make(map[string]any, len(fields)/2)
		i := logging.Fields(fields).Iterator()
		for i.Next() {
			k, v := i.At()
			f[k] = v
		}
		entry := l.WithFields(f)

		switch lvl {
		case logging.LevelDebug:
			entry.Debug(msg)
		case logging.LevelInfo:
			entry.Info(msg)
		case logging.LevelWarn:
			entry.Warn(msg)
		case logging.LevelError:
			entry.Error(msg)
		default:
			panic(fmt.Sprintf("unknown level %v", lvl))
		}
	})
}

// ParseLogLevel parses a level name, falling back to info.
func ParseLogLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
