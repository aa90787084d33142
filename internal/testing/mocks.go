package testing

import (
	"fmt"
	"sync"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/modules/allocation"
	"github.com/aristath/strategy-builder/internal/modules/universe"
)

// MockStrategyProvider is a mock implementation of allocation.StrategyProvider for testing
type MockStrategyProvider struct {
	mu         sync.RWMutex
	strategies map[string]universe.Strategy
	err        error
}

// NewMockStrategyProvider creates a provider serving the given strategies
func NewMockStrategyProvider(strategies ...universe.Strategy) *MockStrategyProvider {
	m := &MockStrategyProvider{strategies: make(map[string]universe.Strategy, len(strategies))}
	for _, s := range strategies {
		m.strategies[s.ID] = s
	}
	return m
}

// SetError sets the error to return
func (m *MockStrategyProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetByID returns the strategy with the given id
func (m *MockStrategyProvider) GetByID(id string) (universe.Strategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return universe.Strategy{}, m.err
	}
	s, ok := m.strategies[id]
	if !ok {
		return universe.Strategy{}, fmt.Errorf("%w: %s", universe.ErrStrategyNotFound, id)
	}
	return s, nil
}

// MockSelectionProvider is a mock implementation of portfolio.SelectionProvider for testing
type MockSelectionProvider struct {
	mu    sync.RWMutex
	state allocation.PortfolioState
}

// NewMockSelectionProvider creates a selection provider returning state
func NewMockSelectionProvider(state allocation.PortfolioState) *MockSelectionProvider {
	return &MockSelectionProvider{state: state}
}

// SetState replaces the state to return
func (m *MockSelectionProvider) SetState(state allocation.PortfolioState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

// State returns the configured state
func (m *MockSelectionProvider) State() allocation.PortfolioState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// RecordedEvent is an event captured by MockEventEmitter
type RecordedEvent struct {
	Type   events.EventType
	Module string
	Data   events.EventData
}

// MockEventEmitter records emitted events for assertions
type MockEventEmitter struct {
	mu     sync.Mutex
	events []RecordedEvent
}

// NewMockEventEmitter creates an empty recording emitter
func NewMockEventEmitter() *MockEventEmitter {
	return &MockEventEmitter{}
}

// EmitTyped records the event
func (m *MockEventEmitter) EmitTyped(eventType events.EventType, module string, data events.EventData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, RecordedEvent{Type: eventType, Module: module, Data: data})
}

// Events returns a copy of the recorded events
func (m *MockEventEmitter) Events() []RecordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the recorded event types in emission order
func (m *MockEventEmitter) Types() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}
