package di

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/modules/portfolio"
	"github.com/aristath/strategy-builder/internal/modules/universe"
	"github.com/aristath/strategy-builder/internal/observability"
	"github.com/aristath/strategy-builder/internal/scheduler"
)

// InitializeServices creates the infrastructure and domain services and
// generates the initial universe
func InitializeServices(container *Container, log zerolog.Logger) error {
	cfg := container.Config

	// Infrastructure
	container.EventBus = events.NewBus()
	container.EventManager = events.NewManager(container.EventBus, log)
	container.Metrics = observability.NewMetrics(cfg.MetricsNamespace)
	container.Scheduler = scheduler.New(log)
	container.Scheduler.SetErrorReporter(container.EventManager)

	// Domain services, bottom-up: universe -> allocation -> portfolio
	container.UniverseService = universe.NewService(container.EventManager, container.Metrics, log)
	container.AllocationService = allocation.NewService(
		container.UniverseService,
		container.EventManager,
		container.Metrics,
		log,
	)
	container.PortfolioService = portfolio.NewService(
		container.AllocationService,
		container.EventManager,
		container.Metrics,
		log,
	)

	seed := cfg.InitialSeed(time.Now())
	count, err := container.UniverseService.Regenerate(cfg.UniverseSize, seed)
	if err != nil {
		return fmt.Errorf("failed to generate initial universe: %w", err)
	}

	log.Info().
		Int("count", count).
		Int64("seed", seed).
		Msg("Initial universe generated")

	return nil
}
