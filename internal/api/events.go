package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/erazemk/najdeno/internal/notify"
)

// EventsHandler streams item change events over Server-Sent Events so
// views can re-fetch instead of polling.
type EventsHandler struct {
	Notifier *notify.Notifier
}

// Stream handles GET /api/events. An optional finder_email query
// parameter narrows the stream to items posted by that finder. The
// stream carries change hints only; clients re-read item state on each
// event.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	filter := notify.Filter{FinderEmail: r.URL.Query().Get("finder_email")}
	sub := h.Notifier.Subscribe(filter)
	defer h.Notifier.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: item_change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
