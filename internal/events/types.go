// Package events provides event management functionality.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	ErrorOccurred EventType = "ERROR_OCCURRED"

	// Universe
	UniverseRegenerated EventType = "UNIVERSE_REGENERATED"

	// Portfolio builder
	PortfolioChanged         EventType = "PORTFOLIO_CHANGED"
	PortfolioDeployRequested EventType = "PORTFOLIO_DEPLOY_REQUESTED"
)

// AllEventTypes lists every event type a stream client can subscribe to.
var AllEventTypes = []EventType{
	ErrorOccurred,
	UniverseRegenerated,
	PortfolioChanged,
	PortfolioDeployRequested,
}

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}
