package gateway

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Prince-Tagadiya/MediClarify/internal/analysis"
	"github.com/Prince-Tagadiya/MediClarify/internal/session"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

// documentPayload mirrors what the browser produces from a FileReader:
// the file's MIME type plus its bytes as standard base64.
type documentPayload struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

func (p documentPayload) decode() (types.Document, error) {
	if strings.TrimSpace(p.MIMEType) == "" {
		return types.Document{}, fmt.Errorf("document %q has no mimeType", p.Name)
	}
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return types.Document{}, fmt.Errorf("document %q is not valid base64: %w", p.Name, err)
	}
	if len(data) == 0 {
		return types.Document{}, fmt.Errorf("document %q is empty", p.Name)
	}
	return types.Document{Name: p.Name, MIMEType: p.MIMEType, Data: data}, nil
}

type detectRequest struct {
	Document documentPayload `json:"document"`
}

func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	var in detectRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	doc, err := in.Document.decode()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := h.detector.Detect(r.Context(), doc)
	writeJSON(w, http.StatusOK, map[string]string{"category": string(category)})
}

type analyzeRequest struct {
	Documents []documentPayload `json:"documents"`
	Notes     string            `json:"notes"`
	Category  string            `json:"category"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(in.Documents) < 1 || len(in.Documents) > 2 {
		writeError(w, http.StatusBadRequest, "provide one document, or two to compare")
		return
	}

	docs := make([]types.Document, 0, len(in.Documents))
	for _, p := range in.Documents {
		doc, err := p.decode()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	sess := h.newSess()
	h.store.Add(sess)

	err := sess.StartAnalysis(analysis.Request{
		Documents: docs,
		Notes:     in.Notes,
		Category:  types.ParseCategory(in.Category),
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"sessionId": sess.ID})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sess.View())
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply       types.ChatTurn      `json:"reply"`
	History     []types.ChatTurn    `json:"history"`
	Suggestions types.SuggestionSet `json:"suggestions,omitempty"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var in chatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(in.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, suggestions, err := sess.SendChat(r.Context(), in.Message)
	if err != nil {
		if errors.Is(err, session.ErrNoAnalysis) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:       reply,
		History:     sess.History(),
		Suggestions: suggestions,
	})
}
