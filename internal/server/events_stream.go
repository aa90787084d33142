package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/events"
	"github.com/aristath/strategy-builder/internal/utils"
)

// eventBufferSize bounds the per-client queue; events beyond it are dropped
const eventBufferSize = 100

// heartbeatInterval keeps idle stream connections open through proxies
var heartbeatInterval = 30 * time.Second

// EventsStreamHandler handles Server-Sent Events (SSE) streaming for all system events.
type EventsStreamHandler struct {
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler.
func NewEventsStreamHandler(eventBus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		eventBus: eventBus,
		log:      log.With().Str("component", "events_stream").Logger(),
	}
}

// parseTypesFilter turns a comma separated types query into the event types to
// subscribe to. An empty filter selects every type.
func parseTypesFilter(filter string) []events.EventType {
	names := utils.ParseCSV(filter)
	if len(names) == 0 {
		return events.AllEventTypes
	}
	types := make([]events.EventType, len(names))
	for i, name := range names {
		types[i] = events.EventType(name)
	}
	return types
}

// subscribe attaches a buffered channel to the bus for every type. The
// returned func detaches all subscriptions.
func subscribe(bus *events.Bus, types []events.EventType, log zerolog.Logger) (<-chan *events.Event, func()) {
	eventChan := make(chan *events.Event, eventBufferSize)

	handler := func(event *events.Event) {
		// Non-blocking send (drop if channel full)
		select {
		case eventChan <- event:
		default:
			log.Warn().
				Str("event_type", string(event.Type)).
				Msg("Event channel full, dropping event")
		}
	}

	unsubscribers := make([]func(), 0, len(types))
	for _, eventType := range types {
		unsubscribers = append(unsubscribers, bus.Subscribe(eventType, handler))
	}

	return eventChan, func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

// eventPayload is the wire shape shared by the SSE and websocket streams
func eventPayload(event *events.Event) map[string]interface{} {
	return map[string]interface{}{
		"type":      string(event.Type),
		"module":    event.Module,
		"timestamp": event.Timestamp.Format(time.RFC3339),
		"data":      event.Data,
	}
}

// ServeHTTP handles GET /api/events/stream requests (SSE).
// Query: types=COMMA,SEPARATED,EVENT_TYPES
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// The stream outlives the server's write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.Warn().Err(err).Msg("Failed to clear write deadline")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	typesFilter := r.URL.Query().Get("types")
	eventChan, unsubscribe := subscribe(h.eventBus, parseTypesFilter(typesFilter), h.log)
	defer unsubscribe()

	h.log.Info().Str("types_filter", typesFilter).Msg("Client connected to event stream")

	// Send initial connection message
	if err := h.send(w, flusher, map[string]interface{}{
		"type":    "connected",
		"message": "Connected to event stream",
	}); err != nil {
		h.log.Debug().Err(err).Msg("Event stream write failed")
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		var err error
		select {
		case <-r.Context().Done():
			h.log.Info().Msg("Client disconnected from event stream")
			return

		case event := <-eventChan:
			h.log.Debug().
				Str("event_type", string(event.Type)).
				Msg("Sending event to client")
			err = h.send(w, flusher, eventPayload(event))

		case <-heartbeat.C:
			err = h.send(w, flusher, map[string]interface{}{
				"type":      "heartbeat",
				"timestamp": time.Now().Format(time.RFC3339),
			})
		}

		if err != nil {
			h.log.Info().Err(err).Msg("Event stream write failed, closing")
			return
		}
	}
}

func (h *EventsStreamHandler) send(w http.ResponseWriter, flusher http.Flusher, payload map[string]interface{}) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", h.encodeEvent(payload)); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// encodeEvent encodes an event map to JSON string.
func (h *EventsStreamHandler) encodeEvent(event map[string]interface{}) string {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal event")
		return `{"error":"failed to encode event"}`
	}
	return string(data)
}
