package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/strategy-builder/internal/events"
)

const wsWriteTimeout = 10 * time.Second

// EventsWebSocketHandler streams system events over a websocket. It carries
// the same payloads as the SSE stream.
type EventsWebSocketHandler struct {
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewEventsWebSocketHandler creates a new websocket events handler.
func NewEventsWebSocketHandler(eventBus *events.Bus, log zerolog.Logger) *EventsWebSocketHandler {
	return &EventsWebSocketHandler{
		eventBus: eventBus,
		log:      log.With().Str("component", "events_ws").Logger(),
	}
}

// ServeHTTP handles GET /api/events/ws requests.
// Query: types=COMMA,SEPARATED,EVENT_TYPES
func (h *EventsWebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected shutdown")

	eventChan, unsubscribe := subscribe(h.eventBus, parseTypesFilter(r.URL.Query().Get("types")), h.log)
	defer unsubscribe()

	// The stream is write-only; CloseRead handles control frames and cancels
	// ctx once the client goes away.
	ctx := conn.CloseRead(r.Context())

	h.log.Info().Msg("Client connected to websocket event stream")

	if err := h.write(ctx, conn, map[string]interface{}{
		"type":    "connected",
		"message": "Connected to event stream",
	}); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from websocket event stream")
			conn.Close(websocket.StatusNormalClosure, "")
			return

		case event := <-eventChan:
			if err := h.write(ctx, conn, eventPayload(event)); err != nil {
				return
			}

		case <-heartbeat.C:
			if err := conn.Ping(ctx); err != nil {
				h.log.Debug().Err(err).Msg("Websocket ping failed")
				return
			}
		}
	}
}

func (h *EventsWebSocketHandler) write(ctx context.Context, conn *websocket.Conn, payload map[string]interface{}) error {
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()

	if err := wsjson.Write(writeCtx, conn, payload); err != nil {
		h.log.Debug().Err(err).Msg("Failed to write websocket message")
		return err
	}
	return nil
}
