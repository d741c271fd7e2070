package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// handleWatchSSE streams progressive analysis events for a session over
// Server-Sent Events. The stream closes after the terminal event.
func (h *Handler) handleWatchSSE(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	events, ok := sess.Watch()
	if !ok {
		// No analysis in flight; report the current state once so a
		// late watcher still gets something to render.
		writeJSON(w, http.StatusOK, sess.View())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				fmt.Fprintf(w, "event: close\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
