package di

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/strategy-builder/internal/config"
	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/risk"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               8001,
		UniverseSize:       40,
		UniverseSeed:       99,
		DefaultRiskProfile: risk.Moderate,
		MetricsNamespace:   "test",
	}
}

func TestWire(t *testing.T) {
	container, jobs, err := Wire(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)
	require.NotNil(t, jobs)

	// Verify container is fully populated
	assert.NotNil(t, container.EventBus)
	assert.NotNil(t, container.EventManager)
	assert.NotNil(t, container.Metrics)
	assert.NotNil(t, container.Scheduler)
	assert.NotNil(t, container.UniverseService)
	assert.NotNil(t, container.AllocationService)
	assert.NotNil(t, container.PortfolioService)

	// Initial universe is generated from the configured seed
	assert.Equal(t, 40, container.UniverseService.Count())
	assert.Equal(t, int64(99), container.UniverseService.Seed())

	// No schedule configured
	assert.Nil(t, jobs.UniverseRefresh)
	assert.Equal(t, 0, container.Scheduler.JobCount())
}

func TestWire_RegistersRefreshJob(t *testing.T) {
	cfg := testConfig()
	cfg.UniverseRefreshSchedule = "@hourly"

	container, jobs, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)

	require.NotNil(t, jobs.UniverseRefresh)
	assert.Equal(t, "universe_refresh", jobs.UniverseRefresh.Name())
	assert.Equal(t, 1, container.Scheduler.JobCount())
}

func TestWire_BadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.UniverseRefreshSchedule = "whenever"

	_, _, err := Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestWire_NegativeUniverseSize(t *testing.T) {
	cfg := testConfig()
	cfg.UniverseSize = -5

	_, _, err := Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestWire_ServicesShareTheEventBus(t *testing.T) {
	container, _, err := Wire(testConfig(), zerolog.Nop())
	require.NoError(t, err)

	var received []events.EventType
	container.EventBus.Subscribe(events.PortfolioChanged, func(e *events.Event) {
		received = append(received, e.Type)
	})
	container.EventBus.Subscribe(events.PortfolioDeployRequested, func(e *events.Event) {
		received = append(received, e.Type)
	})

	id := container.UniverseService.Strategies()[0].ID
	_, err = container.AllocationService.Add(id)
	require.NoError(t, err)

	_, err = container.PortfolioService.RequestDeploy()
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{events.PortfolioChanged, events.PortfolioDeployRequested}, received)
}
