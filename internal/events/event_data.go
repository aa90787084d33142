package events

import "encoding/json"

// EventData is implemented by every typed event payload
type EventData interface {
	EventType() EventType
}

// PortfolioChangedData describes a mutation of the selected strategy set
type PortfolioChangedData struct {
	Operation       string  `json:"operation"`
	StrategyID      string  `json:"strategy_id,omitempty"`
	TotalAllocation float64 `json:"total_allocation"`
	StrategyCount   int     `json:"strategy_count"`
}

// EventType returns the event type for PortfolioChangedData
func (d *PortfolioChangedData) EventType() EventType {
	return PortfolioChanged
}

// UniverseRegeneratedData describes a freshly generated strategy universe
type UniverseRegeneratedData struct {
	Count int   `json:"count"`
	Seed  int64 `json:"seed"`
}

// EventType returns the event type for UniverseRegeneratedData
func (d *UniverseRegeneratedData) EventType() EventType {
	return UniverseRegenerated
}

// DeployRequestedData carries the portfolio summary handed to the deploy consumer
type DeployRequestedData struct {
	StrategyIDs     []string `json:"strategy_ids"`
	TotalAllocation float64  `json:"total_allocation"`
	ExpectedReturn  float64  `json:"expected_return"`
	AvgRisk         float64  `json:"avg_risk"`
}

// EventType returns the event type for DeployRequestedData
func (d *DeployRequestedData) EventType() EventType {
	return PortfolioDeployRequested
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// toMap flattens typed data into the map carried by Event.Data
func toMap(data EventData) map[string]interface{} {
	if data == nil {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return result
}
