package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/PixelPet_Go/internal/logger"
)

// Handler streams hub events as text/event-stream.
// The optional "types" query parameter restricts the stream to the listed event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		rc := http.NewResponseController(w)
		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")

		var filter []string
		if raw := r.URL.Query().Get(FilterQueryParam); raw != "" {
			filter = strings.Split(raw, ",")
		}
		client := hub.Register(filter)
		defer hub.Unregister(client.ID)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", filter, "clients", hub.ClientCount())

		send := func(write func(io.Writer) error) bool {
			if err := write(w); err != nil {
				log.Warn(LogMsgWriteError, "client_id", client.ID, "error", err)
				return false
			}
			return rc.Flush() == nil
		}

		hello := hub.newEvent(EventTypeConnected, ConnectedPayload{ClientID: client.ID, Filters: filter})
		if !send(frameWriter(hello)) {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				log.Info(LogMsgClientDisconnected, "client_id", client.ID, "dropped", client.Dropped())
				return
			case evt, ok := <-client.Events():
				if !ok || !send(frameWriter(evt)) {
					log.Info(LogMsgClientDisconnected, "client_id", client.ID, "dropped", client.Dropped())
					return
				}
			case <-keepalive.C:
				if !send(func(w io.Writer) error {
					_, err := io.WriteString(w, ": keepalive\n\n")
					return err
				}) {
					return
				}
			}
		}
	}
}

func frameWriter(evt Event) func(io.Writer) error {
	return func(w io.Writer) error { return WriteFrame(w, evt) }
}

// WriteFrame encodes evt as one server-sent event: id, event and a single JSON data line
func WriteFrame(w io.Writer, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", evt.Type, err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data)
	return err
}
