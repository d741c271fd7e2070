package gateway

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Prince-Tagadiya/MediClarify/internal/analysis"
	"github.com/Prince-Tagadiya/MediClarify/internal/session"
)

// Handler wires the HTTP surface to the analysis orchestration. Sessions
// own their pipeline and chat clients; the handler only needs the
// detector, the store, and a way to mint sessions.
type Handler struct {
	store    *session.Store
	detector *analysis.CategoryDetector
	newSess  func() *session.Session
}

func New(store *session.Store, detector *analysis.CategoryDetector, newSession func() *session.Session) *Handler {
	return &Handler{
		store:    store,
		detector: detector,
		newSess:  newSession,
	}
}

// Mux returns the API routes.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/detect", h.handleDetect)
	mux.HandleFunc("POST /api/analyze", h.handleAnalyze)
	mux.HandleFunc("GET /api/watch/{id}", h.handleWatchSSE)
	mux.HandleFunc("GET /api/session/{id}", h.handleSession)
	mux.HandleFunc("POST /api/session/{id}/chat", h.handleChat)
	mux.HandleFunc("POST /api/session/{id}/reset", h.handleReset)
	mux.HandleFunc("GET /api/chat", h.handleChatWS)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
