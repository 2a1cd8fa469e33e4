package sse

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	handlerHeartbeat = 30 * time.Second
	writeDeadline    = 60 * time.Second
)

// Handler streams store change events to a connected client as
// server-sent events. Registered as a plain chi route because the
// response body never terminates.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Context().Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client, err := h.manager.Connect()
	if err != nil {
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}
	defer h.manager.Disconnect(client.ID)

	log := h.logger.With(slog.String("client_id", client.ID))

	// Greeting frame so the client knows its stream identity.
	if err := h.writeFrame(w, rc, "connected", map[string]string{"client_id": client.ID}); err != nil {
		log.Warn("greeting failed", slog.String("error", err.Error()))
		return
	}

	ticker := time.NewTicker(handlerHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case event := <-client.EventChan:
			if err := h.writeFrame(w, rc, string(event.Type), event); err != nil {
				log.Info("client went away")
				return
			}
		case <-ticker.C:
			hb := NewHeartbeatEvent()
			if err := h.writeFrame(w, rc, string(hb.Type), hb); err != nil {
				log.Info("client went away during heartbeat")
				return
			}
		case <-client.Done:
			log.Info("stream closed by manager")
			return
		case <-r.Context().Done():
			return
		}
	}
}

// writeFrame emits one SSE frame (event + data lines) and flushes it
// so the client sees the change immediately.
func (h *Handler) writeFrame(w http.ResponseWriter, rc *http.ResponseController, eventType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil {
		return err
	}
	// Not every ResponseWriter supports deadlines; a stale deadline is
	// better than a hung connection when one does.
	if err := rc.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		h.logger.Debug("set write deadline", slog.String("error", err.Error()))
	}
	return nil
}
