// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-invite-rewards/pkg/action/builtin"
	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
)

// InitActionExecutor creates and initializes an action executor with actions from pipeline config.
// Every action call is bounded by callTimeout.
func InitActionExecutor(
	pipelineConfig *pipeline.Config,
	deps *actionBuiltin.Dependencies,
	callTimeout time.Duration,
) (*action.Executor, *action.Registry, error) {
	actionBuiltin.RegisterActions(deps)

	actionConfigs := pipelineConfig.ActionConfigs()

	registry := action.NewRegistry()
	if err := action.RegisterActions(registry, actionConfigs); err != nil {
		return nil, nil, fmt.Errorf("failed to register actions: %w", err)
	}

	logrus.Infof("registered %d of %d configured actions", registry.Count(), len(actionConfigs))

	executor := action.NewExecutor(registry, action.WithActionTimeout(callTimeout))
	logrus.Infof("initialized action executor")

	return executor, registry, nil
}
