/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the server for access to services.
 */
package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/config"
	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/modules/portfolio"
	"github.com/aristath/strategy-builder/internal/modules/universe"
	"github.com/aristath/strategy-builder/internal/observability"
	"github.com/aristath/strategy-builder/internal/scheduler"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	// Infrastructure
	EventBus     *events.Bus
	EventManager *events.Manager
	Metrics      *observability.Metrics
	Scheduler    *scheduler.Scheduler

	// Services
	UniverseService   *universe.Service
	AllocationService *allocation.Service
	PortfolioService  *portfolio.Service
}

// JobInstances holds the registered background jobs
type JobInstances struct {
	// UniverseRefresh is nil when no refresh schedule is configured
	UniverseRefresh scheduler.Job
}
