package cron

import (
	"shopspotlight/config"
	"shopspotlight/services/directory"
	"shopspotlight/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartDirectoryResync schedules a periodic full refetch of the shop
// snapshot. Change notifications keep the snapshot fresh in the common case;
// the cron pass covers missed events after a Redis hiccup.
func StartDirectoryResync(snap *directory.Snapshot) *cron.Cron {
	logger := utils.GetLogger()

	spec := config.AppConfig.DirectoryResyncSpec
	if spec == "" {
		spec = "@every 5m"
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if err := snap.Refresh(); err != nil {
			logger.Warn("Scheduled directory resync failed", zap.Error(err))
		}
	}); err != nil {
		logger.Error("Failed to schedule directory resync", zap.Error(err))
		return c
	}

	c.Start()
	logger.Info("Directory resync scheduled", zap.String("spec", spec))
	return c
}
