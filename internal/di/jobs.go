package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/scheduler"
)

// RegisterJobs registers background jobs with the scheduler.
// The scheduler itself is started by the caller.
func RegisterJobs(container *Container, log zerolog.Logger) (*JobInstances, error) {
	instances := &JobInstances{}
	cfg := container.Config

	if cfg.UniverseRefreshSchedule == "" {
		log.Info().Msg("Universe refresh schedule not configured, skipping job registration")
		return instances, nil
	}

	refresh := scheduler.NewUniverseRefreshJob(container.UniverseService, cfg.UniverseSize, log)
	if err := container.Scheduler.AddJob(cfg.UniverseRefreshSchedule, refresh); err != nil {
		return nil, fmt.Errorf("failed to register universe refresh job: %w", err)
	}
	instances.UniverseRefresh = refresh

	return instances, nil
}
