// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container
// This is the main entry point for dependency injection
// Order of operations:
// 1. Initialize services (events, metrics, scheduler, domain services)
// 2. Register jobs
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, *JobInstances, error) {
	container := &Container{
		Config: cfg,
		Log:    log,
	}

	// Step 1: Initialize services
	if err := InitializeServices(container, log); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Step 2: Register jobs
	jobs, err := RegisterJobs(container, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, jobs, nil
}
