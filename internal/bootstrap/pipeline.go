// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
)

// InitPipeline creates the pipeline manager. cfg.Pipeline is built from
// pipelineConfig when unset.
func InitPipeline(cfg pipeline.ManagerConfig, pipelineConfig *pipeline.Config) *pipeline.Manager {
	if cfg.Pipeline == nil {
		cfg.Pipeline = pipeline.FromConfig("invite-rewards", pipelineConfig)
	}

	logrus.Infof("configured %d rule-to-action mappings", len(cfg.Pipeline.Rules))

	manager := pipeline.NewManager(cfg)
	logrus.Infof("initialized pipeline manager")

	return manager
}
