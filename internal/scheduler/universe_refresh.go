package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// UniverseRegenerator replaces the strategy universe
type UniverseRegenerator interface {
	Regenerate(count int, seed int64) (int, error)
}

// UniverseRefreshJob regenerates the universe with a fresh clock-derived seed
type UniverseRefreshJob struct {
	universe UniverseRegenerator
	size     int
	now      func() time.Time
	log      zerolog.Logger
}

// NewUniverseRefreshJob creates a job that regenerates size strategies per run
func NewUniverseRefreshJob(universe UniverseRegenerator, size int, log zerolog.Logger) *UniverseRefreshJob {
	return &UniverseRefreshJob{
		universe: universe,
		size:     size,
		now:      time.Now,
		log:      log.With().Str("job", "universe_refresh").Logger(),
	}
}

// Name returns the job name
func (j *UniverseRefreshJob) Name() string {
	return "universe_refresh"
}

// Run executes the universe refresh job
func (j *UniverseRefreshJob) Run() error {
	seed := j.now().UnixNano()
	count, err := j.universe.Regenerate(j.size, seed)
	if err != nil {
		return fmt.Errorf("failed to refresh universe: %w", err)
	}

	j.log.Info().Int("count", count).Int64("seed", seed).Msg("Universe refreshed")
	return nil
}
